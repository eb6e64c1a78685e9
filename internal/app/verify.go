package app

import (
	"context"

	"fastsplit/internal/appcore"
	"fastsplit/internal/cli"
	"fastsplit/internal/clibase"
	"fastsplit/internal/cmdutil"
	"fastsplit/internal/splitio"
)

// VerifyCmd compares a split scan against a whole-file scan.
func VerifyCmd(p splitio.Provider) *cli.Command {
	var c clibase.Common
	var long bool
	fs := cli.NewFlagSet("verify")
	clibase.Register(fs, &c)
	clibase.RegisterRun(fs, &c)
	clibase.RegisterScan(fs, &c)
	clibase.RegisterK(fs, &c)
	fs.BoolVar(&long, "long", false, "verify the long-sequence scanner")

	return &cli.Command{
		Flags: fs,
		Usage: "verify [flags] FILE...",
		Short: "Check that split scanning matches a whole-file scan",
		Long: `Scan the files twice, once cut into --split-size splits and once as whole
files, and compare digests of the output. Exits 1 on a mismatch.`,
		Exec: func(ctx context.Context, o *cli.IO, args []string) error {
			if err := clibase.Resolve(fs, &c, "", args); err != nil {
				return err
			}
			warn(o, &c, long)

			rep, err := appcore.Verify(ctx, o.Err, coreOptions(&c, "verify"), p, long)
			if err != nil {
				return err
			}
			o.Println(rep.String())
			return cmdutil.WithCode(cmdutil.ExitMismatch, rep.Err())
		},
	}
}
