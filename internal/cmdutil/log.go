// Package cmdutil holds the small helpers every fastsplit command shares:
// stderr diagnostics, exit-code mapping and result streaming.
package cmdutil

import (
	"fmt"
	"io"
)

// Warnf writes a WARN: line to dst unless quiet is set.
func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, "WARN: "+format+"\n", a...)
}

// Infof writes an INFO: line to dst unless quiet is set.
func Infof(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, "INFO: "+format+"\n", a...)
}

// Warner binds Warnf to a destination, for callbacks that take a
// printf-style function.
func Warner(dst io.Writer, quiet bool) func(format string, a ...any) {
	return func(format string, a ...any) { Warnf(dst, quiet, format, a...) }
}
