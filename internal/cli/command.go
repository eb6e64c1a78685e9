package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"fastsplit/internal/cmdutil"
)

// Command defines a CLI command with unified help generation.
type Command struct {
	// Flags defines command-specific flags.
	Flags *flag.FlagSet

	// Usage is the freeform usage string shown after "fastsplit" in help.
	// Includes the command name and arguments/flags.
	Usage string

	// Short is a one-line description for the global help listing.
	Short string

	// Long is the full description shown in command help.
	// If empty, Short is used instead.
	Long string

	// Exec runs the command after flags are parsed.
	Exec func(ctx context.Context, o *IO, args []string) error
}

// Name returns the command name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

// HelpLine returns the short help line for the main usage display.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-28s %s", c.Usage, c.Short)
}

// PrintHelp prints the full help output for "fastsplit <cmd> --help".
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage: fastsplit", c.Usage)
	o.Println()

	desc := c.Long
	if desc == "" {
		desc = c.Short
	}
	o.Println(desc)

	if c.Flags != nil && c.Flags.HasFlags() {
		o.Println()
		o.Println("Flags:")
		o.Printf("%s", c.Flags.FlagUsages())
	}
}

// Run parses flags and executes the command. Returns the exit code.
// Parse errors print the help to stderr and exit 2; Exec errors are mapped
// by cmdutil.ExitCode.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	err := c.Flags.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o)
			return cmdutil.ExitOK
		}
		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		c.PrintHelp(&IO{Out: o.Err, Err: o.Err})
		return cmdutil.ExitUsage
	}

	if err := c.Exec(ctx, o, c.Flags.Args()); err != nil {
		if cmdutil.Reportable(err) {
			o.ErrPrintln("error:", err)
		}
		return cmdutil.ExitCode(err)
	}
	return cmdutil.ExitOK
}
