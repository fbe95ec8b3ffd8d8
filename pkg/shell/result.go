package shell

import (
	"errors"
	"fmt"
	"strings"
)

// exit error
var ErrExit = errors.New("exit")

var ErrNotFound = errors.New("command not found")

// ExitError asks the caller to end the session with Code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

func (e *ExitError) Is(target error) bool {
	return target == ErrExit
}

// CommandResult is the uniform outcome of a builtin or an external program.
// Status 0 always comes with empty Stderr.
type CommandResult struct {
	Status uint8
	Stdout string
	Stderr string
}

func (r CommandResult) Success() bool {
	return r.Status == 0
}

func okResult(stdout string) CommandResult {
	return CommandResult{Stdout: stdout}
}

func errResult(format string, a ...any) CommandResult {
	return CommandResult{Status: 1, Stderr: fmt.Sprintf(format, a...)}
}

func trimNewline(s string) string {
	return strings.TrimSuffix(s, "\n")
}
