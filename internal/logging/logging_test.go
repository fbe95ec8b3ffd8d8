package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn", "sess1")
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("dropped")
	logger.Warn("kept", "cmd", "ls")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d records, want 1: %q", len(lines), buf.String())
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("record is not JSON: %v", err)
	}
	if rec["msg"] != "kept" || rec["session"] != "sess1" || rec["cmd"] != "ls" {
		t.Errorf("unexpected record: %v", rec)
	}
	if _, ok := rec["source"]; !ok {
		t.Error("record has no source")
	}
}

func TestNew_BadLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "loud", "s"); err == nil {
		t.Error("expected an error")
	}
}

func TestOpen(t *testing.T) {
	t.Run("discard", func(t *testing.T) {
		logger, closer, err := Open("", "debug")
		if err != nil {
			t.Fatal(err)
		}
		logger.Debug("nowhere")
		if err := closer.Close(); err != nil {
			t.Error(err)
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "gosh.log")
		logger, closer, err := Open(path, "info")
		if err != nil {
			t.Fatal(err)
		}
		logger.Info("hello")
		if err := closer.Close(); err != nil {
			t.Fatal(err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), `"msg":"hello"`) || !strings.Contains(string(data), `"session":"`) {
			t.Errorf("log file = %q", data)
		}
	})
}
