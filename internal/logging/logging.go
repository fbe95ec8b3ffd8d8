package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rs/xid"
)

// New builds a JSON logger writing to w at the named level. Every record
// carries the session id.
func New(w io.Writer, level, session string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{AddSource: true, Level: lvl})
	return slog.New(handler).With("session", session), nil
}

// Open builds the session logger. An empty path discards all records so
// diagnostics never mix with command output.
func Open(path, level string) (*slog.Logger, io.Closer, error) {
	session := xid.New().String()

	if path == "" {
		logger, err := New(io.Discard, level, session)
		return logger, nopCloser{}, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger, err := New(f, level, session)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
