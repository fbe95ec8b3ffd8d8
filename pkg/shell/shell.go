package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// type Shell
type Shell struct {
	IOBindings

	env        Env
	parser     Parser
	resolver   *Resolver
	executor   Executor
	redirector *StdoutRedirectionHandler
	builtins   map[Builtin]BuiltinFunc
	logger     *slog.Logger
}

type Option func(*Shell)

// WithEnv replaces the process environment the shell reads from.
func WithEnv(env Env) Option {
	return func(s *Shell) { s.env = env }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Shell) { s.logger = logger }
}

func WithExecutor(executor Executor) Option {
	return func(s *Shell) { s.executor = executor }
}

func WithFileOpener(opener FileOpener) Option {
	return func(s *Shell) { s.redirector.Opener = opener }
}

// func New
func New(bindings IOBindings, opts ...Option) *Shell {
	s := &Shell{
		IOBindings: bindings,
		env:        OSEnv{},
		parser:     NewDefaultParser(),
		redirector: &StdoutRedirectionHandler{Opener: &DefaultFileOpener{}},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.resolver = NewResolver(s.env)
	s.redirector.Env = s.env
	if s.executor == nil {
		s.executor = &DefaultExecutor{Env: s.env, Stdin: s.Stdin}
	}

	s.registerBuiltins()
	return s
}

// Execute runs one input line and writes its output. It returns an error
// matching ErrExit when the line asked the session to end; every other
// failure is reported on the shell's streams and yields nil.
func (s *Shell) Execute(ctx context.Context, line string) error {
	cmd, ok := ParseCommand(s.parser, line)
	if !ok {
		s.logger.Debug("no command", "line", line)
		return nil
	}

	out := s.Stdout
	redirected := false

	if args, spec := ExtractRedirection(cmd.Args); spec != nil {
		sink, err := s.redirector.Open(*spec)
		if err != nil {
			s.logger.Debug("redirection not applied", "target", spec.Target, "err", err)
		} else {
			defer sink.Close()
			cmd.Args = args
			out = sink
			redirected = true
		}
	}

	res, err := s.Dispatch(ctx, cmd)
	if err != nil {
		if errors.Is(err, ErrExit) {
			s.logger.Debug("exit requested", "err", err)
		}
		return err
	}

	s.route(res, out, redirected)
	return nil
}

// route prints stdout to the terminal with a newline, or verbatim to a
// redirection sink. Stderr is shown only for failed commands.
func (s *Shell) route(res CommandResult, out io.Writer, redirected bool) {
	if res.Stdout != "" {
		var err error
		if redirected {
			_, err = io.WriteString(out, res.Stdout)
		} else {
			_, err = fmt.Fprintln(out, res.Stdout)
		}
		if err != nil {
			s.logger.Warn("write stdout", "err", err)
		}
	}

	if !res.Success() && res.Stderr != "" {
		fmt.Fprintln(s.Stderr, res.Stderr)
	}
}
