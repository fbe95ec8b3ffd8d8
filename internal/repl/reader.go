package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// ErrInterrupt is returned by ReadLine when the user abandoned the line
// with Ctrl-C.
var ErrInterrupt = errors.New("interrupt")

// LineReader yields one input line per call. It returns io.EOF when the
// input is exhausted.
type LineReader interface {
	ReadLine() (string, error)
	Close() error
}

type Options struct {
	Prompt      string
	HistoryFile string
}

// NewReader picks a line editor for a terminal and a plain scanner for
// anything else.
func NewReader(in *os.File, out io.Writer, opts Options, c Completer) (LineReader, error) {
	if term.IsTerminal(int(in.Fd())) {
		return newReadlineReader(in, out, opts, c)
	}
	return NewScannerReader(in, out, opts.Prompt), nil
}

type readlineReader struct {
	rl *readline.Instance
}

func newReadlineReader(in *os.File, out io.Writer, opts Options, c Completer) (*readlineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            promptColor.Sprint(opts.Prompt),
		HistoryFile:       opts.HistoryFile,
		AutoComplete:      &completionAdapter{c: c},
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		Stdin:             in,
		Stdout:            out,
	})
	if err != nil {
		return nil, fmt.Errorf("error initializing readline: %w", err)
	}
	return &readlineReader{rl: rl}, nil
}

func (r *readlineReader) ReadLine() (string, error) {
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", ErrInterrupt
	}
	return line, err
}

func (r *readlineReader) Close() error {
	return r.rl.Close()
}

// ScannerReader reads newline-terminated lines, printing the prompt
// before each one.
type ScannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string
}

func NewScannerReader(in io.Reader, out io.Writer, prompt string) *ScannerReader {
	return &ScannerReader{
		scanner: bufio.NewScanner(in),
		out:     out,
		prompt:  prompt,
	}
}

func (r *ScannerReader) ReadLine() (string, error) {
	fmt.Fprint(r.out, r.prompt)

	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

func (r *ScannerReader) Close() error { return nil }
