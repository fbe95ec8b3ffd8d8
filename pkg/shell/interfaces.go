package shell

import (
	"context"
	"io"
	"os"
)

type Executor interface {
	Execute(ctx context.Context, path string, name string, args []string) (CommandResult, error)
}

type Parser interface {
	Parse(line string) ([]string, error)
}

type FileOpener interface {
	OpenWrite(name string, flag int, perm os.FileMode) (io.WriteCloser, error)
}

// Env is the process state the shell reads on every call. Nothing read
// through it is cached, so changes between commands are always observed.
type Env interface {
	LookupEnv(key string) (string, bool)
	Environ() []string
	Getwd() (string, error)
	Chdir(dir string) error
}
