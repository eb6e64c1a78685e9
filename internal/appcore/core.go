// Package appcore runs the pipeline behind every fastsplit subcommand:
// plan the splits, scan them on the worker pool, stream the results into
// a writer and report progress.
package appcore

import (
	"bufio"
	"context"
	"errors"
	"io"

	"fastsplit/internal/cmdutil"
	"fastsplit/internal/fastx"
	"fastsplit/internal/pipeline"
	"fastsplit/internal/progress"
	"fastsplit/internal/runutil"
	"fastsplit/internal/split"
	"fastsplit/internal/splitio"
	"fastsplit/internal/writers"
	"fastsplit/pkg/api"
)

type Options struct {
	Files     []string
	SplitSize int64

	Threads int
	Scan    fastx.Options

	Quiet    bool
	Progress bool
	Label    string // progress bar label
	OutPath  string // write here atomically instead of stdout
}

// Source runs the pipeline and calls visit for every produced value, in
// file order.
type Source[T any] func(ctx context.Context, cfg pipeline.Config, p splitio.Provider, splits []split.Split, visit func(T) error) error

// Records scans multi-record files.
func Records(ctx context.Context, cfg pipeline.Config, p splitio.Provider, splits []split.Split, visit func(api.RecordV1) error) error {
	return pipeline.ForEachRecord(ctx, cfg, p, splits, writers.ToAPIRecord, visit)
}

// Fragments scans single long-sequence files.
func Fragments(ctx context.Context, cfg pipeline.Config, p splitio.Provider, splits []split.Split, visit func(api.FragmentV1) error) error {
	return pipeline.ForEachFragment(ctx, cfg, p, splits, writers.ToAPIFragment, visit)
}

type WriterFactory[T any] interface {
	Start(out io.Writer, bufSize int) (chan<- T, <-chan error)
}

// Plan cuts the input files, turning a bad split size into a usage error.
func Plan(p splitio.Provider, files []string, size int64) ([]split.Split, error) {
	splits, err := pipeline.PlanFiles(p, files, size)
	if errors.Is(err, split.ErrInvalidSize) {
		return nil, cmdutil.Usagef("--split-size must be > 0, got %d", size)
	}
	return splits, err
}

// Run scans o.Files and writes every value through wf. It returns the
// number of values written.
func Run[T any](
	parent context.Context,
	stdout, stderr io.Writer,
	o Options,
	p splitio.Provider,
	src Source[T],
	wf WriterFactory[T],
) (int, error) {
	splits, err := Plan(p, o.Files, o.SplitSize)
	if err != nil {
		return 0, err
	}
	thr := runutil.EffectiveThreads(o.Threads, len(splits))

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	bar := progress.New(stderr, o.Label, len(splits), o.Progress)
	cfg := pipeline.Config{
		Threads: thr,
		Options: o.Scan,
		Warnf:   cmdutil.Warner(stderr, o.Quiet),
		OnSplit: bar.Done,
	}

	emit := func(out io.Writer) (int, error) {
		outw := bufio.NewWriter(out)
		inCh, writeErr := wf.Start(outw, thr*4)
		total, perr := cmdutil.RunStream(ctx, inCh, func(send func(T) error) error {
			return src(ctx, cfg, p, splits, send)
		})
		close(inCh)

		if werr := <-writeErr; werr != nil {
			return total, werr
		}
		if e := outw.Flush(); e != nil {
			return total, e
		}
		return total, perr
	}

	var total int
	if o.OutPath == "" {
		total, err = emit(stdout)
	} else {
		err = writers.WriteFileAtomic(o.OutPath, func(w io.Writer) error {
			var e error
			total, e = emit(w)
			return e
		})
	}
	bar.Close()

	if err == nil && parent.Err() != nil {
		err = parent.Err()
	}
	return total, err
}
