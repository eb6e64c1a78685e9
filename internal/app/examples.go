package app

import (
	"context"

	"fastsplit/internal/cli"
	"fastsplit/internal/clibase"
)

func ExamplesCmd() *cli.Command {
	return &cli.Command{
		Flags: cli.NewFlagSet("examples"),
		Usage: "examples",
		Short: "Print usage examples",
		Exec: func(_ context.Context, o *cli.IO, _ []string) error {
			clibase.PrintExamples(o.Out, name)
			return nil
		},
	}
}
