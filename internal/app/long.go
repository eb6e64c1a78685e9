package app

import (
	"context"

	"fastsplit/internal/appcore"
	"fastsplit/internal/cli"
	"fastsplit/internal/clibase"
	"fastsplit/internal/splitio"
	"fastsplit/internal/writers"
	"fastsplit/pkg/api"
)

// LongCmd emits the fragments of single-sequence FASTA files.
func LongCmd(p splitio.Provider) *cli.Command {
	var c clibase.Common
	fs := cli.NewFlagSet("long")
	clibase.Register(fs, &c)
	clibase.RegisterRun(fs, &c)
	clibase.RegisterK(fs, &c)
	clibase.RegisterOutput(fs, &c, writers.FragmentFormats(), writers.FormatJSONL)

	return &cli.Command{
		Flags: fs,
		Usage: "long [flags] FILE...",
		Short: "Emit k-mer-complete fragments of one-sequence FASTA files",
		Long: `Scan files holding a single long sequence. Each split emits the raw bytes
it owns plus the k-1 bytes that follow, so every k-byte window of the file
body starts in exactly one split. Line breaks are kept in the payload: the
kmers format skips windows that span one, and tsv quotes multi-line values.`,
		Exec: func(ctx context.Context, o *cli.IO, args []string) error {
			if err := clibase.Resolve(fs, &c, "", args); err != nil {
				return err
			}
			if err := clibase.CheckFormat(&c, writers.FragmentFormats()); err != nil {
				return err
			}
			warn(o, &c, true)

			wf := appcore.NewFragmentWriterFactory(c.Format, !c.NoHeader)
			_, err := appcore.Run[api.FragmentV1](ctx, o.Out, o.Err, coreOptions(&c, "long"), p, appcore.Fragments, wf)
			return err
		},
	}
}
