package shell

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"
)

// completionWords are offered in command position before PATH executables.
// history is completable even though no such builtin exists.
var completionWords = []string{"echo", "exit", "cd", "pwd", "type", "history"}

// Completion is the answer to one completion request. Each candidate
// replaces Line[Start:].
type Completion struct {
	Start      int
	Candidates []string
}

// Apply returns line with the i-th candidate spliced in at Start.
func (c Completion) Apply(line string, i int) string {
	return line[:c.Start] + c.Candidates[i]
}

// Complete proposes completions for line with the cursor at byte offset
// pos. Only end-of-line requests are served; anything else returns the
// line itself as the sole candidate.
func (s *Shell) Complete(line string, pos int) Completion {
	if pos != len(line) {
		return Completion{Start: 0, Candidates: []string{line}}
	}

	words := strings.Fields(line)
	if strings.HasSuffix(line, " ") {
		words = append(words, "")
	}

	var c Completion
	switch {
	case len(words) == 1:
		prefix := words[0]
		c = Completion{
			Start:      len(line) - len(prefix),
			Candidates: s.commandCandidates(prefix),
		}
	case len(words) >= 2 && !strings.HasPrefix(words[len(words)-1], "-"):
		c = s.pathCompletion(line, words[len(words)-1])
	default:
		return Completion{Start: pos}
	}

	if len(c.Candidates) >= 2 {
		slices.Sort(c.Candidates)
	}

	s.logger.Debug("completion", "line", line, "start", c.Start, "candidates", len(c.Candidates))
	return c
}

func (s *Shell) commandCandidates(prefix string) []string {
	var candidates []string
	seen := make(map[string]struct{})

	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		candidates = append(candidates, name)
	}

	for _, word := range completionWords {
		if strings.HasPrefix(word, prefix) {
			add(word)
		}
	}
	for _, name := range s.resolver.Executables(prefix) {
		add(name)
	}

	if len(candidates) == 1 {
		candidates[0] += " "
	}

	return candidates
}

// pathCompletion treats fragment as a path. The part before its last slash
// names the directory to list; the part after is matched by prefix.
func (s *Shell) pathCompletion(line, fragment string) Completion {
	dir, base := ".", fragment
	if i := strings.LastIndex(fragment, "/"); i >= 0 {
		dir, base = fragment[:i], fragment[i+1:]
		if dir == "" {
			dir = "/"
		}
	}

	c := Completion{Start: len(line) - len(base)}

	candidates := s.listEntries(dir, base)
	switch len(candidates) {
	case 0:
		return c
	case 1:
		if !strings.HasSuffix(candidates[0], "/") {
			candidates[0] += " "
		}
	default:
		if lcp := LongestCommonPrefix(candidates); lcp != "" && lcp != base {
			candidates = []string{lcp}
		}
	}

	c.Candidates = candidates
	return c
}

// listEntries returns the entries of dir starting with prefix. Directories
// carry a trailing slash.
func (s *Shell) listEntries(dir, prefix string) []string {
	abs, err := resolvePath(s.env, dir)
	if err != nil {
		return nil
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		s.logger.Debug("completion: read dir", "dir", abs, "err", err)
		return nil
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}

		if info, err := os.Stat(filepath.Join(abs, name)); err == nil && info.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}

	return names
}

// LongestCommonPrefix returns the longest string every element of strs
// starts with. The result never ends inside a rune that is valid UTF-8 in
// the candidates; bytes of non-UTF-8 names are compared as bytes.
func LongestCommonPrefix(strs []string) string {
	if len(strs) == 0 {
		return ""
	}

	prefix := strs[0]

	for _, s := range strs[1:] {
		i := 0
		for i < len(prefix) && i < len(s) && prefix[i] == s[i] {
			i++
		}
		prefix = prefix[:i]
		if prefix == "" {
			break
		}
	}

	for len(prefix) > 0 && splitsRune(strs, len(prefix)) {
		prefix = prefix[:len(prefix)-1]
	}
	return prefix
}

// splitsRune reports whether cutting at byte n lands inside a valid
// multi-byte rune of any string in strs.
func splitsRune(strs []string, n int) bool {
	for _, s := range strs {
		if n >= len(s) {
			continue
		}
		start := n
		for start > 0 && n-start < utf8.UTFMax && !utf8.RuneStart(s[start]) {
			start--
		}
		if start == n {
			continue
		}
		r, size := utf8.DecodeRuneInString(s[start:])
		if (r != utf8.RuneError || size > 1) && start+size > n {
			return true
		}
	}
	return false
}
