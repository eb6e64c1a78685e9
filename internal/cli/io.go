package cli

import (
	"fmt"
	"io"
)

// IO carries a command's output streams.
type IO struct {
	Out io.Writer
	Err io.Writer
}

// NewIO creates a new IO instance.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{Out: out, Err: errOut}
}

func (o *IO) Println(a ...any) { _, _ = fmt.Fprintln(o.Out, a...) }

func (o *IO) Printf(format string, a ...any) { _, _ = fmt.Fprintf(o.Out, format, a...) }

func (o *IO) ErrPrintln(a ...any) { _, _ = fmt.Fprintln(o.Err, a...) }
