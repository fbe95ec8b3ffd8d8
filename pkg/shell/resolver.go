package shell

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Resolver finds external programs on the search path.
type Resolver struct {
	env Env
}

func NewResolver(env Env) *Resolver {
	return &Resolver{env: env}
}

// SearchPath returns the PATH directories in order. It is read afresh on
// every call; a missing PATH yields no directories.
func (r *Resolver) SearchPath() []string {
	path, ok := r.env.LookupEnv("PATH")
	if !ok || path == "" {
		return nil
	}

	return filepath.SplitList(path)
}

// Lookup returns the first <dir>/<name> on the search path that is a
// regular file with an executable bit set. Names with a slash are checked
// as given.
func (r *Resolver) Lookup(name string) (string, bool) {
	if name == "" {
		return "", false
	}

	if strings.ContainsRune(name, '/') {
		pathToCheck, err := resolvePath(r.env, name)
		if err != nil {
			return "", false
		}
		if isExecutableFile(pathToCheck) {
			return name, true
		}
		return "", false
	}

	for _, dir := range r.SearchPath() {

		pathToCheck, err := resolvePath(r.env, filepath.Join(dir, name))
		if err != nil {
			continue
		}

		if isExecutableFile(pathToCheck) {
			return pathToCheck, true
		}
	}

	return "", false
}

// Executables lists the executable names on the search path that start
// with prefix. A name seen in an earlier directory shadows later ones.
func (r *Resolver) Executables(prefix string) []string {
	var names []string
	seen := make(map[string]struct{})

	for _, dir := range r.SearchPath() {
		dir, err := resolvePath(r.env, dir)
		if err != nil {
			continue
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			if !strings.HasPrefix(name, prefix) {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			if !isExecutableFile(filepath.Join(dir, name)) {
				continue
			}

			seen[name] = struct{}{}
			names = append(names, name)
		}
	}

	return names
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return isExecutable(info)
}

func isExecutable(info fs.FileInfo) bool {
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}
