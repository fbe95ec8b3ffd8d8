package shell

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// Builtin enumerates the commands the shell implements itself.
type Builtin int

const (
	BuiltinExit Builtin = iota + 1
	BuiltinEcho
	BuiltinType
	BuiltinPwd
	BuiltinCd
)

var builtinNames = map[string]Builtin{
	"exit": BuiltinExit,
	"echo": BuiltinEcho,
	"type": BuiltinType,
	"pwd":  BuiltinPwd,
	"cd":   BuiltinCd,
}

// LookupBuiltin maps an exact command name to its Builtin.
func LookupBuiltin(name string) (Builtin, bool) {
	b, ok := builtinNames[name]
	return b, ok
}

func (b Builtin) String() string {
	switch b {
	case BuiltinExit:
		return "exit"
	case BuiltinEcho:
		return "echo"
	case BuiltinType:
		return "type"
	case BuiltinPwd:
		return "pwd"
	case BuiltinCd:
		return "cd"
	}
	return "builtin(" + strconv.Itoa(int(b)) + ")"
}

// BuiltinFunc runs a builtin against the shell's state.
type BuiltinFunc func(args []string, s *Shell) (CommandResult, error)

func (s *Shell) registerBuiltins() {
	s.builtins = map[Builtin]BuiltinFunc{
		BuiltinExit: runExit,
		BuiltinEcho: runEcho,
		BuiltinType: runType,
		BuiltinPwd:  runPwd,
		BuiltinCd:   runCd,
	}
}

func runExit(args []string, s *Shell) (CommandResult, error) {
	code := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			// bash exits with 2 on a non-numeric argument
			n = 2
		}
		code = n
	}
	return CommandResult{}, &ExitError{Code: code}
}

func runEcho(args []string, s *Shell) (CommandResult, error) {
	return okResult(strings.Join(args, " ")), nil
}

func runType(args []string, s *Shell) (CommandResult, error) {

	if len(args) == 0 {
		return errResult("type: usage: type NAME"), nil
	}

	name := args[0]

	// check builts in
	if _, ok := LookupBuiltin(name); ok {
		return okResult(name + " is a shell builtin"), nil
	}

	if path, ok := s.resolver.Lookup(name); ok {
		return okResult(name + " is " + path), nil
	}

	return okResult(name + ": not found"), nil
}

func runPwd(args []string, s *Shell) (CommandResult, error) {
	dir, err := s.env.Getwd()
	if err != nil {
		return errResult("pwd: %v", err), nil
	}

	return okResult(dir), nil
}

func runCd(args []string, s *Shell) (CommandResult, error) {

	target, err := cdTarget(s.env, args)
	if err != nil {
		return errResult("cd: %v", err), nil
	}

	dir, err := anchorPath(s.env, target)
	if err != nil {
		return errResult("cd: %s: %v", target, err), nil
	}

	info, err := os.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		return errResult("cd: %s: No such file or directory", target), nil
	case errors.Is(err, os.ErrPermission):
		return errResult("cd: %s: Permission denied", target), nil
	case err != nil:
		return errResult("cd: %s: No such file or directory", target), nil
	}

	if err := s.env.Chdir(dir); err != nil {
		if errors.Is(err, os.ErrPermission) {
			return errResult("cd: %s: Permission denied", target), nil
		}
		return errResult("cd: %s: %v", target, err), nil
	}

	return CommandResult{}, nil
}

// cdTarget picks the directory cd should move to. Only a leading "~" is
// replaced by the home directory; "~user" forms are not expanded.
func cdTarget(env Env, args []string) (string, error) {
	if len(args) == 0 {
		return homeDir(env)
	}

	target := args[0]
	if strings.HasPrefix(target, "~") {
		home, err := homeDir(env)
		if err != nil {
			return "", err
		}
		return home + target[1:], nil
	}

	return target, nil
}
