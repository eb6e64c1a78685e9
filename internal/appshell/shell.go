// Package appshell wires a command runner to the process: arguments,
// standard streams, signals and the exit code.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"fastsplit/internal/cmdutil"
)

func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	os.Exit(runMain(run, os.Args[1:], os.Stdout, os.Stderr))
}

func runMain(run func(context.Context, []string, io.Writer, io.Writer) int, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	code := run(ctx, argv, stdout, stderr)
	// Normalize cancellation exit code.
	if ctx.Err() != nil && code == cmdutil.ExitOK {
		code = cmdutil.ExitCanceled
	}
	return code
}
