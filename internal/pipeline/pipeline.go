package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"fastsplit/internal/fastx"
	"fastsplit/internal/split"
	"fastsplit/internal/splitio"
)

// Config controls the scanning pipeline.
type Config struct {
	Threads int           // number of worker goroutines (>=1)
	Options fastx.Options // scanner options

	// Warnf receives diagnostics, such as a first split without any record
	// marker. Called from the collector goroutine only.
	Warnf func(format string, a ...any)
	// OnSplit is called once per split, in order, after its values were
	// visited.
	OnSplit func(split.Split)
}

// PlanFiles cuts every file into splits of size bytes.
func PlanFiles(p splitio.Provider, files []string, size int64) ([]split.Split, error) {
	var out []split.Split
	for _, f := range files {
		n, err := p.Size(f)
		if err != nil {
			return nil, err
		}
		ss, err := split.Plan(f, n, size)
		if err != nil {
			return nil, err
		}
		out = append(out, ss...)
	}
	return out, nil
}

// Whole returns one split per file covering the entire file.
func Whole(p splitio.Provider, files []string) ([]split.Split, error) {
	var out []split.Split
	for _, f := range files {
		n, err := p.Size(f)
		if err != nil {
			return nil, err
		}
		out = append(out, split.At(f, n)...)
	}
	return out, nil
}

// ForEachRecord scans splits with ShortScanners, converts every record with
// conv on the worker and calls visit in file order. It returns the first
// error encountered (including context cancellation).
func ForEachRecord[T any](
	ctx context.Context,
	cfg Config,
	p splitio.Provider,
	splits []split.Split,
	conv func(*fastx.Record) T,
	visit func(T) error,
) error {
	scan := func(ctx context.Context, s split.Split) (scanned[T], error) {
		sc, err := fastx.NewShortScanner(p, s, cfg.Options)
		if err != nil {
			return scanned[T]{}, err
		}
		var out scanned[T]
		for sc.Next() {
			if err := ctx.Err(); err != nil {
				_ = sc.Close()
				return out, err
			}
			out.items = append(out.items, conv(sc.Record()))
		}
		if err := sc.Err(); err != nil {
			_ = sc.Close()
			return out, fmt.Errorf("split %s: %w", s, err)
		}
		if sc.NoMarker() && s.Start == 0 {
			out.warn = fmt.Sprintf("%s: first split holds no %q; is this a %s file?",
				s.File, cfg.Options.Format.Marker(), cfg.Options.Format)
		}
		return out, sc.Close()
	}
	return run(ctx, cfg, splits, scan, visit)
}

// ForEachFragment scans splits with LongScanners and calls visit with the
// converted fragment of every split that has one, in file order. The layout
// of each file is read once, before any split is scanned.
func ForEachFragment[T any](
	ctx context.Context,
	cfg Config,
	p splitio.Provider,
	splits []split.Split,
	conv func(*fastx.PartialSequence) T,
	visit func(T) error,
) error {
	layouts, err := readLayouts(ctx, p, splits)
	if err != nil {
		return err
	}
	scan := func(ctx context.Context, s split.Split) (scanned[T], error) {
		sc, err := fastx.NewLongScannerLayout(p, s, cfg.Options, layouts[s.File])
		if err != nil {
			return scanned[T]{}, err
		}
		var out scanned[T]
		for sc.Next() {
			out.items = append(out.items, conv(sc.Sequence()))
		}
		if err := sc.Err(); err != nil {
			_ = sc.Close()
			return out, fmt.Errorf("split %s: %w", s, err)
		}
		return out, sc.Close()
	}
	return run(ctx, cfg, splits, scan, visit)
}

func readLayouts(ctx context.Context, p splitio.Provider, splits []split.Split) (map[string]fastx.Layout, error) {
	out := make(map[string]fastx.Layout)
	for _, s := range splits {
		if _, ok := out[s.File]; ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		l, err := fastx.ReadLayout(p, s.File)
		if err != nil {
			return nil, err
		}
		out[s.File] = l
	}
	return out, nil
}

// scanned is what one worker produced for one split.
type scanned[T any] struct {
	items []T
	warn  string
}

type result[T any] struct {
	seq int
	scanned[T]
}

func run[T any](
	parent context.Context,
	cfg Config,
	splits []split.Split,
	scan func(context.Context, split.Split) (scanned[T], error),
	visit func(T) error,
) error {
	threads := max(cfg.Threads, 1)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	jobs := make(chan int, threads*2)
	results := make(chan result[T], threads*2)

	// Workers
	for range threads {
		g.Go(func() error {
			for i := range jobs {
				if err := gctx.Err(); err != nil {
					return err
				}
				sc, err := scan(gctx, splits[i])
				if err != nil {
					return err
				}
				select {
				case results <- result[T]{seq: i, scanned: sc}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	// Feed work
	g.Go(func() error {
		defer close(jobs)
		for i := range splits {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	// Collector: visits in split order. On error it cancels the workers and
	// keeps draining so none of them blocks.
	var cerr error
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		pending := make(map[int]scanned[T])
		next := 0
		for r := range results {
			if cerr != nil {
				continue
			}
			pending[r.seq] = r.scanned
			for {
				sc, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				if err := deliver(cfg, splits[next], sc, visit); err != nil {
					cerr = err
					cancel()
					break
				}
				next++
			}
		}
	}()

	werr := g.Wait()
	close(results)
	<-collected

	if err := parent.Err(); err != nil {
		return err
	}
	if cerr != nil {
		return cerr
	}
	return werr
}

func deliver[T any](cfg Config, s split.Split, sc scanned[T], visit func(T) error) error {
	if sc.warn != "" && cfg.Warnf != nil {
		cfg.Warnf("%s", sc.warn)
	}
	for _, v := range sc.items {
		if err := visit(v); err != nil {
			return err
		}
	}
	if cfg.OnSplit != nil {
		cfg.OnSplit(s)
	}
	return nil
}
