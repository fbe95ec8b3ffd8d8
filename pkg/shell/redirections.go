package shell

import (
	"fmt"
	"io"
	"os"
)

// Default file opener uses real file system in device
type DefaultFileOpener struct{}

func (fp *DefaultFileOpener) OpenWrite(name string, flag int, perm os.FileMode) (io.WriteCloser, error) {
	return os.OpenFile(name, flag, perm)
}

type RedirectionSpec struct {
	Operator string // > or 1>
	Target   string // target path
	Index    int    // position of the operator in the original args
}

// ExtractRedirection finds the first stdout redirection in args that has a
// target after it and returns args without the operator and target.
func ExtractRedirection(args []string) ([]string, *RedirectionSpec) {
	for i, arg := range args {
		if !isStdoutOperator(arg) || i+1 >= len(args) {
			continue
		}

		clean := make([]string, 0, len(args)-2)
		clean = append(clean, args[:i]...)
		clean = append(clean, args[i+2:]...)

		return clean, &RedirectionSpec{
			Operator: arg,
			Target:   args[i+1],
			Index:    i,
		}
	}

	return args, nil
}

func isStdoutOperator(arg string) bool {
	return arg == ">" || arg == "1>"
}

// StdoutRedirectionHandler truncates or creates the target file.
type StdoutRedirectionHandler struct {
	Env    Env
	Opener FileOpener
}

// Open returns the sink for redirection. Relative targets are anchored at
// the shell's working directory.
func (handler *StdoutRedirectionHandler) Open(redirection RedirectionSpec) (io.WriteCloser, error) {
	if redirection.Target == "" {
		return nil, fmt.Errorf("%s: missing redirect destination", redirection.Operator)
	}

	target := redirection.Target
	if handler.Env != nil {
		abs, err := resolvePath(handler.Env, target)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", target, err)
		}
		target = abs
	}

	file, err := handler.Opener.OpenWrite(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", redirection.Target, err)
	}

	return file, nil
}
