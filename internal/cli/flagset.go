package cli

import (
	"io"

	flag "github.com/spf13/pflag"
)

// NewFlagSet returns a clean FlagSet with ContinueOnError and no output of
// its own; commands print their help themselves.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	fs.Usage = func() {}
	return fs
}
