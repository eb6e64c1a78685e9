package clibase

import (
	"fmt"
	"io"

	"fastsplit/internal/version"
)

// PrintUsage writes the top-level help: header, command list and the
// global flags. lines are the commands' help lines.
func PrintUsage(out io.Writer, name string, lines []string) {
	fmt.Fprintf(out, "%s – split-aware FASTA/FASTQ scanner\n\n", name)
	fmt.Fprintln(out, "License: MIT")
	fmt.Fprintf(out, "Version: %s\n\n", version.Version)

	fmt.Fprintf(out, "Usage: %s <command> [flags] FILE...\n", name)
	fmt.Fprintln(out, "\nCommands:")
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}

	fmt.Fprintln(out, "\nMiscellaneous:")
	fmt.Fprintln(out, "  -v, --version               Print version and exit")
	fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	fmt.Fprintf(out, "\nRun '%s <command> --help' for command flags.\n", name)
}
