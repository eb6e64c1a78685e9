package app

import (
	"context"

	"fastsplit/internal/appcore"
	"fastsplit/internal/cli"
	"fastsplit/internal/clibase"
	"fastsplit/internal/cmdutil"
	"fastsplit/internal/runutil"
	"fastsplit/internal/splitio"
	"fastsplit/internal/writers"
	"fastsplit/pkg/api"
)

// ScanCmd emits every record of multi-record FASTA/FASTQ files.
func ScanCmd(p splitio.Provider) *cli.Command {
	var c clibase.Common
	fs := cli.NewFlagSet("scan")
	clibase.Register(fs, &c)
	clibase.RegisterRun(fs, &c)
	clibase.RegisterScan(fs, &c)
	clibase.RegisterOutput(fs, &c, writers.RecordFormats(), "")

	return &cli.Command{
		Flags: fs,
		Usage: "scan [flags] FILE...",
		Short: "Emit the records of FASTA/FASTQ files, split by split",
		Long: `Cut each file into splits of --split-size bytes and scan them in parallel.
Every record is emitted exactly once, by the split holding its first byte,
in file order.`,
		Exec: func(ctx context.Context, o *cli.IO, args []string) error {
			if err := clibase.Resolve(fs, &c, "", args); err != nil {
				return err
			}
			if c.Format == "" {
				c.Format = c.ScanOptions().Format.String()
			}
			if err := clibase.CheckFormat(&c, writers.RecordFormats()); err != nil {
				return err
			}
			warn(o, &c, false)

			wf := appcore.NewRecordWriterFactory(c.Format, !c.NoHeader)
			_, err := appcore.Run[api.RecordV1](ctx, o.Out, o.Err, coreOptions(&c, "scan"), p, appcore.Records, wf)
			return err
		},
	}
}

func coreOptions(c *clibase.Common, label string) appcore.Options {
	return appcore.Options{
		Files:     c.Files,
		SplitSize: c.SplitSize,
		Threads:   c.Threads,
		Scan:      c.ScanOptions(),
		Quiet:     c.Quiet,
		Progress:  c.Progress,
		Label:     label,
		OutPath:   c.OutPath,
	}
}

func warn(o *cli.IO, c *clibase.Common, long bool) {
	for _, w := range runutil.ScanWarnings(long, c.SplitSize, c.K, c.LookAhead) {
		cmdutil.Warnf(o.Err, c.Quiet, "%s", w)
	}
}
