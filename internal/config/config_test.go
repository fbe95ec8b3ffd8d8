package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name     string
		path     string
		expected Config
	}{
		{
			name: "no path",
			path: "",
			expected: Config{
				Prompt:      "$ ",
				HistoryFile: filepath.Join(home, ".gosh_history"),
				EnvFile:     filepath.Join(home, ".goshenv"),
				LogLevel:    "info",
				Color:       true,
			},
		},
		{
			name: "missing file",
			path: filepath.Join(home, "nope.toml"),
			expected: Config{
				Prompt:      "$ ",
				HistoryFile: filepath.Join(home, ".gosh_history"),
				EnvFile:     filepath.Join(home, ".goshenv"),
				LogLevel:    "info",
				Color:       true,
			},
		},
		{
			name: "partial file keeps defaults",
			path: writeConfig(t, "prompt = \"> \"\ncolor = false\n"),
			expected: Config{
				Prompt:      "> ",
				HistoryFile: filepath.Join(home, ".gosh_history"),
				EnvFile:     filepath.Join(home, ".goshenv"),
				LogLevel:    "info",
			},
		},
		{
			name: "tilde paths expand",
			path: writeConfig(t, "history_file = \"~/h\"\nlog_file = \"~/logs/gosh.log\"\nlog_level = \"debug\"\n"),
			expected: Config{
				Prompt:      "$ ",
				HistoryFile: filepath.Join(home, "h"),
				EnvFile:     filepath.Join(home, ".goshenv"),
				LogFile:     filepath.Join(home, "logs", "gosh.log"),
				LogLevel:    "debug",
				Color:       true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *cfg != tt.expected {
				t.Errorf("got %+v, want %+v", *cfg, tt.expected)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed", body: "prompt = \n"},
		{name: "wrong type", body: "color = \"yes\"\n"},
		{name: "unknown key", body: "promt = \"> \"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	t.Run("flag wins", func(t *testing.T) {
		t.Setenv("SHELL_CONFIG", "/from/env.toml")
		if got := Path("/from/flag.toml"); got != "/from/flag.toml" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("SHELL_CONFIG", "/from/env.toml")
		if got := Path(""); got != "/from/env.toml" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("home default", func(t *testing.T) {
		t.Setenv("SHELL_CONFIG", "")
		want := filepath.Join(home, ".config", "gosh", "config.toml")
		if got := Path(""); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".goshenv")
	body := "GOSH_TEST_KEEP=fromfile\nGOSH_TEST_NEW=added\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GOSH_TEST_KEEP", "original")
	t.Cleanup(func() { os.Unsetenv("GOSH_TEST_NEW") })

	if err := LoadEnv(path); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}

	if got := os.Getenv("GOSH_TEST_KEEP"); got != "original" {
		t.Errorf("GOSH_TEST_KEEP = %q, want original", got)
	}
	if got := os.Getenv("GOSH_TEST_NEW"); got != "added" {
		t.Errorf("GOSH_TEST_NEW = %q, want added", got)
	}

	if err := LoadEnv(filepath.Join(t.TempDir(), "missing")); err != nil {
		t.Errorf("missing env file: %v", err)
	}
}
