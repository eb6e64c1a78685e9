// Package app dispatches the fastsplit subcommands.
package app

import (
	"context"
	"fmt"
	"io"

	"fastsplit/internal/cli"
	"fastsplit/internal/clibase"
	"fastsplit/internal/cmdutil"
	"fastsplit/internal/splitio"
	"fastsplit/internal/version"
)

const name = "fastsplit"

func commands(p splitio.Provider) []*cli.Command {
	return []*cli.Command{
		ScanCmd(p),
		LongCmd(p),
		PlanCmd(p),
		VerifyCmd(p),
		ExamplesCmd(),
	}
}

// RunContext runs one fastsplit invocation over local files and returns
// the exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	return RunWith(ctx, argv, stdout, stderr, splitio.LocalProvider{})
}

// RunWith is RunContext over an arbitrary file provider.
func RunWith(ctx context.Context, argv []string, stdout, stderr io.Writer, p splitio.Provider) int {
	o := cli.NewIO(stdout, stderr)
	cmds := commands(p)

	if len(argv) == 0 {
		usage(stdout, cmds)
		return cmdutil.ExitOK
	}

	switch argv[0] {
	case "-h", "--help":
		usage(stdout, cmds)
		return cmdutil.ExitOK
	case "help":
		if len(argv) > 1 {
			if c := lookup(cmds, argv[1]); c != nil {
				c.PrintHelp(o)
				return cmdutil.ExitOK
			}
		}
		usage(stdout, cmds)
		return cmdutil.ExitOK
	case "-v", "--version", "version":
		o.Printf("%s version %s\n", name, version.Version)
		return cmdutil.ExitOK
	}

	c := lookup(cmds, argv[0])
	if c == nil {
		_, _ = fmt.Fprintf(stderr, "error: unknown command %q\n\n", argv[0])
		usage(stderr, cmds)
		return cmdutil.ExitUsage
	}

	code := c.Run(ctx, o, argv[1:])
	// Normalize cancellation exit code.
	if code == cmdutil.ExitOK && ctx.Err() != nil {
		return cmdutil.ExitCanceled
	}
	return code
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func lookup(cmds []*cli.Command, n string) *cli.Command {
	for _, c := range cmds {
		if c.Name() == n {
			return c
		}
	}
	return nil
}

func usage(out io.Writer, cmds []*cli.Command) {
	lines := make([]string, 0, len(cmds))
	for _, c := range cmds {
		lines = append(lines, c.HelpLine())
	}
	clibase.PrintUsage(out, name, lines)
}
