package shell

import (
	"errors"
	"os"
	"path/filepath"
)

var ErrNoHome = errors.New("HOME not set")

// OSEnv reads and mutates the real process environment.
type OSEnv struct{}

func (OSEnv) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (OSEnv) Environ() []string {
	return os.Environ()
}

func (OSEnv) Getwd() (string, error) {
	return os.Getwd()
}

// Chdir changes the process directory and keeps PWD in step, so Getwd
// reports the logical path rather than one with symlinks resolved.
func (e OSEnv) Chdir(dir string) error {
	target, err := anchorPath(e, dir)
	if err != nil {
		return err
	}

	if err := os.Chdir(target); err != nil {
		return err
	}

	return os.Setenv("PWD", filepath.Clean(target))
}

func homeDir(env Env) (string, error) {
	home, ok := env.LookupEnv("HOME")
	if !ok || home == "" {
		return "", ErrNoHome
	}
	return home, nil
}

// resolvePath anchors a relative path at the working directory of env.
func resolvePath(env Env, p string) (string, error) {
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}

	wd, err := env.Getwd()
	if err != nil {
		return "", err
	}

	return filepath.Join(wd, p), nil
}

// anchorPath is resolvePath without lexical cleaning, so "missing/.."
// still has to exist on disk when it is stat'ed.
func anchorPath(env Env, p string) (string, error) {
	if filepath.IsAbs(p) {
		return p, nil
	}

	wd, err := env.Getwd()
	if err != nil {
		return "", err
	}

	return wd + string(filepath.Separator) + p, nil
}
