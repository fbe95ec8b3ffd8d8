package shell

import (
	"errors"
	"io"
	"strings"
	"unicode"
)

var (
	ErrUnclosedQuote      = errors.New("unclosed quote")
	ErrUnescapedCharacter = errors.New("unescaped character")
)

// ParsedCommand is one input line split into a command word and its arguments.
type ParsedCommand struct {
	Name string
	Args []string
}

type DefaultParser struct {
	newReader  func(string) io.RuneReader
	newBuilder func() *strings.Builder
}

func NewDefaultParser() *DefaultParser {
	d := &DefaultParser{
		newReader: func(s string) io.RuneReader {
			return strings.NewReader(s)
		},
		newBuilder: func() *strings.Builder {
			return &strings.Builder{}
		},
	}

	return d
}

type parseState int

const (
	stateOutside parseState = iota
	stateSingleQuote
	stateDoubleQuote
)

type tokenBuffer struct {
	builder *strings.Builder
	// quoted is set once a quote opens, so "" still yields a word.
	quoted bool
}

func newTokenBuffer(builder *strings.Builder) *tokenBuffer {
	return &tokenBuffer{
		builder: builder,
	}
}

func (tokenBuffer *tokenBuffer) isEmpty() bool {
	return tokenBuffer.builder.Len() == 0 && !tokenBuffer.quoted
}

func (tokenBuffer *tokenBuffer) markQuoted() {
	tokenBuffer.quoted = true
}

func (tokenBuffer *tokenBuffer) appendRune(r rune) {
	tokenBuffer.builder.WriteRune(r)
}

func (tokenBuffer *tokenBuffer) flushIfNotEmpty(args []string) []string {
	if !tokenBuffer.isEmpty() {
		s := tokenBuffer.builder.String()
		tokenBuffer.builder.Reset()
		tokenBuffer.quoted = false
		args = append(args, s)
	}

	return args
}

// escapableInDoubleQuotes lists the runes a backslash escapes inside "...".
// Any other escaped rune keeps its backslash; an escaped newline is dropped
// along with its backslash.
func escapableInDoubleQuotes(ch rune) bool {
	switch ch {
	case '\\', '"', '$', '`', '\n':
		return true
	}
	return false
}

func handleStateOutside(ch rune, currState parseState, tokenBuffer *tokenBuffer, isEscaping bool, args []string) (parseState, bool, []string) {

	if isEscaping {
		// backslash-newline is a line continuation
		if ch != '\n' {
			tokenBuffer.appendRune(ch)
		}
		return currState, false, args
	}

	switch {
	case unicode.IsSpace(ch):
		args = tokenBuffer.flushIfNotEmpty(args)
	case ch == '\'':
		tokenBuffer.markQuoted()
		currState = stateSingleQuote
	case ch == '"':
		tokenBuffer.markQuoted()
		currState = stateDoubleQuote
	case ch == '\\':
		isEscaping = true
	default:
		tokenBuffer.appendRune(ch)
	}

	return currState, isEscaping, args
}

func handleStateSingleQuote(ch rune, currState parseState, tokenBuffer *tokenBuffer, isEscaping bool, args []string) (parseState, bool, []string) {

	if ch == '\'' {
		currState = stateOutside
	} else {
		tokenBuffer.appendRune(ch)
	}

	return currState, isEscaping, args
}

func handleStateDoubleQuote(ch rune, currState parseState, tokenBuffer *tokenBuffer, isEscaping bool, args []string) (parseState, bool, []string) {

	if isEscaping {
		switch {
		case ch == '\n':
		case escapableInDoubleQuotes(ch):
			tokenBuffer.appendRune(ch)
		default:
			tokenBuffer.appendRune('\\')
			tokenBuffer.appendRune(ch)
		}
		return currState, false, args
	}

	switch ch {
	case '"':
		currState = stateOutside
	case '\\':
		isEscaping = true
	default:
		tokenBuffer.appendRune(ch)
	}

	return currState, isEscaping, args
}

// Parse splits line into words using POSIX quoting rules, one level deep.
func (p *DefaultParser) Parse(line string) ([]string, error) {
	runeReader := p.newReader(line)
	tokenBuffer := newTokenBuffer(p.newBuilder())

	args := []string{}

	currState := stateOutside
	isEscaping := false

	for {
		ch, _, err := runeReader.ReadRune()

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, err
		}

		switch currState {
		case stateOutside:
			currState, isEscaping, args = handleStateOutside(ch, currState, tokenBuffer, isEscaping, args)

		case stateSingleQuote:
			currState, isEscaping, args = handleStateSingleQuote(ch, currState, tokenBuffer, isEscaping, args)

		case stateDoubleQuote:
			currState, isEscaping, args = handleStateDoubleQuote(ch, currState, tokenBuffer, isEscaping, args)
		}
	}

	if currState == stateSingleQuote || currState == stateDoubleQuote {
		return nil, ErrUnclosedQuote
	}

	if isEscaping {
		return nil, ErrUnescapedCharacter
	}

	args = tokenBuffer.flushIfNotEmpty(args)

	return args, nil
}

// ParseCommand runs p over line and splits off the command word. It reports
// false when the line is blank, cannot be parsed, or names an empty command.
func ParseCommand(p Parser, line string) (ParsedCommand, bool) {
	fields, err := p.Parse(line)
	if err != nil || len(fields) == 0 || fields[0] == "" {
		return ParsedCommand{}, false
	}

	return ParsedCommand{
		Name: fields[0],
		Args: fields[1:],
	}, true
}
