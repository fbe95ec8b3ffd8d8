package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds the user-tunable settings of a session.
type Config struct {
	Prompt      string `toml:"prompt"`
	HistoryFile string `toml:"history_file"`
	EnvFile     string `toml:"env_file"`
	LogFile     string `toml:"log_file"`
	LogLevel    string `toml:"log_level"`
	Color       bool   `toml:"color"`
}

// Default returns the settings used when no file overrides them. Paths
// are rooted at home; an empty home leaves them unset.
func Default(home string) *Config {
	cfg := &Config{
		Prompt:   "$ ",
		LogLevel: "info",
		Color:    true,
	}
	if home != "" {
		cfg.HistoryFile = filepath.Join(home, ".gosh_history")
		cfg.EnvFile = filepath.Join(home, ".goshenv")
	}
	return cfg
}

// Path picks the config file: the explicit flag value, then
// $SHELL_CONFIG, then ~/.config/gosh/config.toml.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if p, ok := os.LookupEnv("SHELL_CONFIG"); ok && p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gosh", "config.toml")
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	home, _ := os.UserHomeDir()
	cfg := Default(home)

	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config file %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	cfg.HistoryFile = expandHome(cfg.HistoryFile, home)
	cfg.EnvFile = expandHome(cfg.EnvFile, home)
	cfg.LogFile = expandHome(cfg.LogFile, home)

	return cfg, nil
}

// LoadEnv seeds the process environment from a dotenv file. Variables
// that are already set win. A missing file is ignored.
func LoadEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func expandHome(p, home string) string {
	if home == "" {
		return p
	}
	if p == "~" {
		return home
	}
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		return filepath.Join(home, rest)
	}
	return p
}
