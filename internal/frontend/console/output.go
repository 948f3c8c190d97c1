package console

import (
	"io"
	"strings"
	"sync"
)

// Output writes whole lines to the terminal. It is safe for concurrent use.
type Output struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
}

// NewOutput creates an Output on w. With color off, ANSI sequences are removed
// before writing.
func NewOutput(w io.Writer, color bool) *Output {
	return &Output{w: w, color: color}
}

// Line writes text followed by a newline. Write errors are ignored; a broken
// terminal surfaces as EOF on input.
func (o *Output) Line(text string) {
	if !o.color {
		text = StripANSI(text)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	_, _ = io.WriteString(o.w, strings.TrimRight(text, "\n")+"\n")
}

// Error writes text in red.
func (o *Output) Error(text string) {
	o.Line(Colorize(Red, text))
}
