package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/Neev4n/gosh/pkg/shell"
)

// Completer proposes replacements for the word under the cursor.
type Completer interface {
	Complete(line string, pos int) shell.Completion
}

// completionAdapter speaks readline's protocol: suffixes to insert after
// the cursor, plus how many runes before the cursor they share.
type completionAdapter struct {
	c Completer
}

func (a *completionAdapter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line)
	cursor := len(string(line[:pos]))

	comp := a.c.Complete(text, cursor)
	if len(comp.Candidates) == 0 || comp.Start > cursor {
		return nil, 0
	}
	if len(comp.Candidates) == 1 && comp.Apply(text, 0) == text {
		return nil, 0
	}

	typed := text[comp.Start:cursor]

	var suffixes [][]rune
	for _, cand := range comp.Candidates {
		rest, ok := strings.CutPrefix(cand, typed)
		if !ok {
			continue
		}
		suffixes = append(suffixes, []rune(rest))
	}

	return suffixes, utf8.RuneCountInString(typed)
}
