package repl

import (
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	promptColor = color.New(color.FgGreen, color.Bold)
	errorColor  = color.New(color.FgRed)
)

type errorWriter struct {
	w io.Writer
	c *color.Color
}

// NewErrorWriter paints everything written through it red. Coloring
// follows color.NoColor.
func NewErrorWriter(w io.Writer) io.Writer {
	return &errorWriter{w: w, c: errorColor}
}

func (e *errorWriter) Write(p []byte) (int, error) {
	text := string(p)
	body, newline := strings.CutSuffix(text, "\n")

	out := e.c.Sprint(body)
	if newline {
		out += "\n"
	}
	if _, err := io.WriteString(e.w, out); err != nil {
		return 0, err
	}
	return len(p), nil
}
