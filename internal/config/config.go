// Package config loads fastsplit settings from JSONC files.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

var (
	ErrConfigInvalid      = errors.New("invalid config")
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
)

// FileName is the project config looked up in the working directory.
const FileName = ".fastsplit.json"

// Config holds the settings shared by every subcommand. Zero values in a
// file mean "not set".
type Config struct {
	SplitSize int64  `json:"split_size,omitempty"`
	Threads   int    `json:"threads,omitempty"`
	K         int    `json:"k,omitempty"`
	LookAhead int    `json:"look_ahead,omitempty"`
	Format    string `json:"format,omitempty"`
	Input     string `json:"input,omitempty"`
	Progress  *bool  `json:"progress,omitempty"`
	Quiet     *bool  `json:"quiet,omitempty"`

	// Source is the file the config was read from, empty for defaults.
	Source string `json:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	f := false
	return Config{
		SplitSize: 64 << 20,
		Threads:   0,
		K:         10,
		LookAhead: 2048,
		Input:     "fasta",
		Progress:  &f,
		Quiet:     &f,
	}
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDir    string // directory searched for FileName; os.Getwd() if empty
	ConfigPath string // --config value; must exist when set
}

// Load merges, in order of precedence (highest last): defaults, the project
// file (or the explicit --config file).
func Load(in LoadInput) (Config, error) {
	workDir := in.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
		workDir = wd
	}

	cfg := Default()

	path := in.ConfigPath
	mustExist := path != ""
	if mustExist {
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		if _, err := os.Stat(path); err != nil {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigFileNotFound, in.ConfigPath)
		}
	} else {
		path = filepath.Join(workDir, FileName)
	}

	fileCfg, loaded, err := loadFile(path, mustExist)
	if err != nil {
		return Config{}, err
	}
	if loaded {
		cfg = Merge(cfg, fileCfg)
		cfg.Source = path
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w %s: %w", ErrConfigInvalid, cfg.Source, err)
	}
	return cfg, nil
}

func loadFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}
		return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}
	return cfg, true, nil
}

// Parse decodes a JSONC document. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(std))
	dec.DisallowUnknownFields()
	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}
	return cfg, nil
}

// Merge returns base with every field set in overlay applied.
func Merge(base, overlay Config) Config {
	if overlay.SplitSize != 0 {
		base.SplitSize = overlay.SplitSize
	}
	if overlay.Threads != 0 {
		base.Threads = overlay.Threads
	}
	if overlay.K != 0 {
		base.K = overlay.K
	}
	if overlay.LookAhead != 0 {
		base.LookAhead = overlay.LookAhead
	}
	if overlay.Format != "" {
		base.Format = overlay.Format
	}
	if overlay.Input != "" {
		base.Input = overlay.Input
	}
	if overlay.Progress != nil {
		base.Progress = overlay.Progress
	}
	if overlay.Quiet != nil {
		base.Quiet = overlay.Quiet
	}
	return base
}

// Validate checks the ranges of the numeric settings.
func (c Config) Validate() error {
	switch {
	case c.SplitSize < 0:
		return fmt.Errorf("split_size must be > 0, got %d", c.SplitSize)
	case c.Threads < 0:
		return fmt.Errorf("threads must be >= 0, got %d", c.Threads)
	case c.K < 0:
		return fmt.Errorf("k must be >= 1, got %d", c.K)
	case c.LookAhead < 0:
		return fmt.Errorf("look_ahead must be >= 1, got %d", c.LookAhead)
	}
	switch c.Input {
	case "", "fasta", "fastq":
	default:
		return fmt.Errorf("input must be fasta or fastq, got %q", c.Input)
	}
	return nil
}

// ShowProgress reports whether progress bars are enabled.
func (c Config) ShowProgress() bool { return c.Progress != nil && *c.Progress }

// IsQuiet reports whether warnings are suppressed.
func (c Config) IsQuiet() bool { return c.Quiet != nil && *c.Quiet }
