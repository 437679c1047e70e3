package cli

import (
	"fmt"
	"io"
	"os"
)

const (
	green  = "32"
	yellow = "33"
	red    = "31"
)

// Output prints doctor reports. Status marks are colored only when stdout is
// a terminal; failures go to the error stream.
type Output struct {
	out    io.Writer
	errOut io.Writer
	color  bool
}

func NewOutput() *Output {
	return &Output{
		out:    os.Stdout,
		errOut: os.Stderr,
		color:  isTerminal(os.Stdout),
	}
}

// NewWriterOutput prints uncolored output to w.
func NewWriterOutput(w io.Writer) *Output {
	return &Output{out: w, errOut: w}
}

func (o *Output) PrintHeader(msg string) {
	fmt.Fprintf(o.out, "%s\n\n", msg)
}

func (o *Output) PrintSuccess(msg string, args ...any) {
	o.line(o.out, green, "✓", msg, args)
}

func (o *Output) PrintWarning(msg string, args ...any) {
	o.line(o.out, yellow, "⚠", msg, args)
}

func (o *Output) PrintError(msg string, args ...any) {
	o.line(o.errOut, red, "✗", msg, args)
}

func (o *Output) PrintDone(msg string) {
	fmt.Fprintf(o.out, "\n%s\n", msg)
}

func (o *Output) line(w io.Writer, color, mark, msg string, args []any) {
	if o.color {
		mark = "\033[" + color + "m" + mark + "\033[0m"
	}
	fmt.Fprintf(w, "  %s %s\n", mark, fmt.Sprintf(msg, args...))
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}
