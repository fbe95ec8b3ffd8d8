package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// mapEnv is an in-memory Env. The working directory is tracked without
// touching the process, so tests can run side by side.
type mapEnv struct {
	vars map[string]string
	dir  string
}

func newMapEnv(dir string, vars map[string]string) *mapEnv {
	if vars == nil {
		vars = map[string]string{}
	}
	return &mapEnv{vars: vars, dir: dir}
}

func (e *mapEnv) LookupEnv(key string) (string, bool) {
	v, ok := e.vars[key]
	return v, ok
}

func (e *mapEnv) Environ() []string {
	env := make([]string, 0, len(e.vars))
	for k, v := range e.vars {
		env = append(env, k+"="+v)
	}
	return env
}

func (e *mapEnv) Getwd() (string, error) {
	return e.dir, nil
}

func (e *mapEnv) Chdir(dir string) error {
	target, err := anchorPath(e, dir)
	if err != nil {
		return err
	}
	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &os.PathError{Op: "chdir", Path: target, Err: os.ErrNotExist}
	}
	e.dir = filepath.Clean(target)
	return nil
}

// newTestShell builds a shell over env with its output captured.
func newTestShell(t *testing.T, env Env, opts ...Option) (*Shell, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	opts = append([]Option{WithEnv(env)}, opts...)
	s := New(IOBindings{Stdout: &stdout, Stderr: &stderr}, opts...)
	return s, &stdout, &stderr
}

// writeFile creates dir/name with the given mode and returns its path.
func writeFile(t *testing.T, dir, name string, mode os.FileMode) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), mode); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	// WriteFile is subject to umask; force the exact bits.
	if err := os.Chmod(path, mode); err != nil {
		t.Fatalf("chmod %s: %v", path, err)
	}
	return path
}

func TestOSEnv_ChdirKeepsPWD(t *testing.T) {
	dir := t.TempDir()
	// Equivalent of t.Chdir (Go 1.24+): chdir, set PWD, restore on cleanup.
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldwd) })
	t.Setenv("PWD", dir)

	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	env := OSEnv{}
	if err := env.Chdir("sub"); err != nil {
		t.Fatalf("Chdir: %v", err)
	}

	if got := os.Getenv("PWD"); got != sub {
		t.Errorf("PWD = %q, want %q", got, sub)
	}

	wd, err := env.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if wd != sub {
		t.Errorf("Getwd = %q, want %q", wd, sub)
	}

	if err := env.Chdir("missing_xyz/.."); err == nil {
		t.Error("Chdir through a missing directory succeeded")
	}
	if got := os.Getenv("PWD"); got != sub {
		t.Errorf("PWD after failed Chdir = %q, want %q", got, sub)
	}
}

func TestCdTarget(t *testing.T) {
	env := newMapEnv("/work", map[string]string{"HOME": "/home/gopher"})

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{name: "no argument goes home", args: nil, expected: "/home/gopher"},
		{name: "bare tilde", args: []string{"~"}, expected: "/home/gopher"},
		{name: "tilde slash", args: []string{"~/src"}, expected: "/home/gopher/src"},
		{name: "only first character replaced", args: []string{"~other"}, expected: "/home/gopherother"},
		{name: "literal path", args: []string{"/tmp"}, expected: "/tmp"},
		{name: "relative path", args: []string{"../x"}, expected: "../x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cdTarget(env, tt.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}

	t.Run("missing home", func(t *testing.T) {
		_, err := cdTarget(newMapEnv("/work", nil), nil)
		if err != ErrNoHome {
			t.Errorf("got %v, want %v", err, ErrNoHome)
		}
	})
}
