package repl

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/Neev4n/gosh/pkg/shell"
)

// Runner executes one input line.
type Runner interface {
	Execute(ctx context.Context, line string) error
}

// Session drives the read-execute loop.
type Session struct {
	runner Runner
	reader LineReader
	logger *slog.Logger
}

func NewSession(runner Runner, reader LineReader, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{runner: runner, reader: reader, logger: logger}
}

// Run reads and executes lines until exit or end of input and returns the
// process exit code.
func (s *Session) Run(ctx context.Context) int {
	s.logger.Info("session started")

	for {
		line, err := s.reader.ReadLine()
		switch {
		case errors.Is(err, ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			s.logger.Info("session ended", "reason", "eof")
			return 0
		case err != nil:
			s.logger.Error("read line", "err", err)
			return 1
		}

		if err := s.runner.Execute(ctx, line); err != nil {
			var exitErr *shell.ExitError
			if errors.As(err, &exitErr) {
				s.logger.Info("session ended", "reason", "exit", "code", exitErr.Code)
				return exitErr.Code
			}
			s.logger.Error("execute", "line", line, "err", err)
			return 1
		}

		if ctx.Err() != nil {
			s.logger.Info("session ended", "reason", ctx.Err())
			return 1
		}
	}
}
