package shell

import (
	"context"
)

// Dispatch runs cmd as a builtin when its name matches one exactly, else as
// the first matching program on the search path. The only error returned
// is the exit request; all failures are folded into the result.
func (s *Shell) Dispatch(ctx context.Context, cmd ParsedCommand) (CommandResult, error) {

	// check built ins
	if b, ok := LookupBuiltin(cmd.Name); ok {
		s.logger.Debug("dispatch builtin", "name", cmd.Name, "builtin", b.String())
		return s.builtins[b](cmd.Args, s)
	}

	path, ok := s.resolver.Lookup(cmd.Name)
	if !ok {
		s.logger.Debug("dispatch: not found", "name", cmd.Name)
		return errResult("%s: %v", cmd.Name, ErrNotFound), nil
	}

	s.logger.Debug("dispatch external", "name", cmd.Name, "path", path, "args", cmd.Args)

	res, err := s.executor.Execute(ctx, path, cmd.Name, cmd.Args)
	if err != nil {
		s.logger.Warn("error running command", "name", cmd.Name, "path", path, "err", err)
		return errResult("%s: %v", cmd.Name, err), nil
	}

	return res, nil
}
