// Package clibase holds the flags and help text shared by the fastsplit
// subcommands.
package clibase

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"

	"fastsplit/internal/cliutil"
	"fastsplit/internal/cmdutil"
	"fastsplit/internal/config"
	"fastsplit/internal/fastx"
)

// Common holds CLI fields shared by scan, long, plan and verify.
type Common struct {
	// Input
	ConfigPath string
	Input      string
	Files      []string

	// Scanning
	SplitSize int64
	K         int
	LookAhead int

	// Performance
	Threads int

	// Output
	Format   string
	OutPath  string
	NoHeader bool

	// Misc
	Quiet    bool
	Progress bool
}

// Register wires the flags every subcommand takes onto fs. Defaults come
// from config.Default; Resolve layers config files under explicit flags.
func Register(fs *flag.FlagSet, c *Common) {
	fs.StringVar(&c.ConfigPath, "config", "", "JSONC config file (default: ./"+config.FileName+" if present)")
	fs.Int64Var(&c.SplitSize, "split-size", config.Default().SplitSize, "bytes per split")
}

// RegisterRun adds the flags of commands that run the scanners.
func RegisterRun(fs *flag.FlagSet, c *Common) {
	d := config.Default()
	fs.IntVarP(&c.Threads, "threads", "t", d.Threads, "worker threads (0=all CPUs)")
	fs.BoolVarP(&c.Quiet, "quiet", "q", d.IsQuiet(), "suppress warnings")
	fs.BoolVar(&c.Progress, "progress", d.ShowProgress(), "show a progress bar on stderr")
}

// RegisterScan adds the scanner flags.
func RegisterScan(fs *flag.FlagSet, c *Common) {
	d := config.Default()
	fs.StringVarP(&c.Input, "input", "i", d.Input, "input format: fasta | fastq")
	fs.IntVar(&c.LookAhead, "look-ahead", d.LookAhead, "initial border buffer size in bytes")
}

// RegisterK adds --k for the long-sequence scanner.
func RegisterK(fs *flag.FlagSet, c *Common) {
	fs.IntVarP(&c.K, "k", "k", config.Default().K, "k-mer length")
}

// RegisterOutput adds --format, --out and --no-header. def is the format
// used when neither flag nor config sets one; empty means "same as input".
func RegisterOutput(fs *flag.FlagSet, c *Common, formats []string, def string) {
	help := "output: " + strings.Join(formats, " | ")
	if def == "" {
		help += " (default: input format)"
	}
	fs.StringVarP(&c.Format, "format", "f", def, help)
	fs.StringVarP(&c.OutPath, "out", "o", "", "write to this file atomically instead of stdout")
	fs.BoolVar(&c.NoHeader, "no-header", false, "suppress the header line")
}

// Resolve loads config files, lets explicitly set flags override them and
// expands the positional input paths. All failures are usage errors.
func Resolve(fs *flag.FlagSet, c *Common, workDir string, args []string) error {
	cfg, err := config.Load(config.LoadInput{WorkDir: workDir, ConfigPath: c.ConfigPath})
	if err != nil {
		return cmdutil.WithCode(cmdutil.ExitUsage, err)
	}
	apply(fs, c, cfg)

	files, err := cliutil.ExpandPositionals(args)
	if err != nil {
		return cmdutil.WithCode(cmdutil.ExitUsage, err)
	}
	c.Files = files
	return cmdutil.WithCode(cmdutil.ExitUsage, Validate(fs, c))
}

func apply(fs *flag.FlagSet, c *Common, cfg config.Config) {
	has := func(name string) bool { return fs.Lookup(name) != nil && !fs.Changed(name) }
	if has("split-size") {
		c.SplitSize = cfg.SplitSize
	}
	if has("threads") {
		c.Threads = cfg.Threads
	}
	if has("k") {
		c.K = cfg.K
	}
	if has("look-ahead") {
		c.LookAhead = cfg.LookAhead
	}
	if has("input") && cfg.Input != "" {
		c.Input = cfg.Input
	}
	if has("format") && cfg.Format != "" {
		c.Format = cfg.Format
	}
	if has("quiet") {
		c.Quiet = cfg.IsQuiet()
	}
	if has("progress") {
		c.Progress = cfg.ShowProgress()
	}
}

// Validate applies the shared CLI invariants.
func Validate(fs *flag.FlagSet, c *Common) error {
	if len(c.Files) == 0 {
		return errors.New("at least one input file is required")
	}
	if c.SplitSize <= 0 {
		return fmt.Errorf("--split-size must be > 0, got %d", c.SplitSize)
	}
	if c.Threads < 0 {
		return fmt.Errorf("--threads must be >= 0, got %d", c.Threads)
	}
	if fs.Lookup("k") != nil && c.K < 1 {
		return fmt.Errorf("--k must be >= 1, got %d", c.K)
	}
	if fs.Lookup("look-ahead") != nil && c.LookAhead < 1 {
		return fmt.Errorf("--look-ahead must be >= 1, got %d", c.LookAhead)
	}
	if fs.Lookup("input") != nil {
		if _, err := fastx.ParseFormat(c.Input); err != nil {
			return fmt.Errorf("invalid --input %q", c.Input)
		}
	}
	return nil
}

// CheckFormat validates c.Format against the formats a command can write.
func CheckFormat(c *Common, formats []string) error {
	if !slices.Contains(formats, c.Format) {
		return cmdutil.Usagef("invalid --format %q (want %s)", c.Format, strings.Join(formats, " | "))
	}
	return nil
}

// ScanOptions builds the scanner options.
func (c *Common) ScanOptions() fastx.Options {
	f, _ := fastx.ParseFormat(c.Input)
	return fastx.Options{Format: f, K: c.K, LookAheadBufferSize: c.LookAhead}
}
