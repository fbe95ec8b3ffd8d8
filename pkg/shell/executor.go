package shell

import (
	"bytes"
	"context"
	"io"
	"os/exec"
)

type IOBindings struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultExecutor runs a program to completion and buffers both of its
// output streams.
type DefaultExecutor struct {
	Env   Env
	Stdin io.Reader
}

// Execute launches path with args. Success is judged by the captured stderr
// alone: any text there makes the status 1, whatever the exit code was.
// The returned error is set only when the process could not be started.
func (e *DefaultExecutor) Execute(ctx context.Context, path string, name string, args []string) (CommandResult, error) {

	var stdout, stderr bytes.Buffer

	externalCmd := exec.CommandContext(ctx, path, args...)
	externalCmd.Args = append([]string{name}, args...)
	externalCmd.Stdin = e.Stdin
	externalCmd.Stdout = &stdout
	externalCmd.Stderr = &stderr

	if e.Env != nil {
		externalCmd.Env = e.Env.Environ()
		if dir, err := e.Env.Getwd(); err == nil {
			externalCmd.Dir = dir
		}
	}

	if err := externalCmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return CommandResult{}, err
		}
	}

	res := CommandResult{
		Stdout: trimNewline(stdout.String()),
		Stderr: trimNewline(stderr.String()),
	}
	if res.Stderr != "" {
		res.Status = 1
	}

	return res, nil
}
