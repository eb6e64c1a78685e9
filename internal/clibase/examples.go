package clibase

import (
	"fmt"
	"io"
)

// PrintExamples prints a small quickstart header and body, followed by a
// one-line tip to discover full help.
func PrintExamples(out io.Writer, name string) {
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(out, "%s — quickstart\n\n", name)
	_, _ = fmt.Fprintf(out, "  # records of reads.fq, scanned in 16 MiB splits on 8 threads\n")
	_, _ = fmt.Fprintf(out, "  %s scan -i fastq --split-size 16777216 -t 8 reads.fq\n\n", name)
	_, _ = fmt.Fprintf(out, "  # every 21-mer of a genome, one per line\n")
	_, _ = fmt.Fprintf(out, "  %s long --k 21 -f kmers genome.fa\n\n", name)
	_, _ = fmt.Fprintf(out, "  # the split plan, saved as a JSON manifest\n")
	_, _ = fmt.Fprintf(out, "  %s plan --split-size 1048576 --manifest plan.json *.fa\n\n", name)
	_, _ = fmt.Fprintf(out, "  # check that split scanning matches a whole-file scan\n")
	_, _ = fmt.Fprintf(out, "  %s verify --split-size 4096 reads.fa\n", name)
	_, _ = fmt.Fprintln(out, "\nTip: run with --help for all flags.")
}
