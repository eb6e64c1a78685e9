package appcore

import (
	"context"
	"io"

	"fastsplit/internal/pipeline"
	"fastsplit/internal/splitio"
	"fastsplit/internal/verify"
	"fastsplit/pkg/api"
)

// Verify scans o.Files twice, split by split and whole, and compares the
// digests. long selects LongScanner instead of ShortScanner.
func Verify(ctx context.Context, stderr io.Writer, o Options, p splitio.Provider, long bool) (verify.Report, error) {
	whole, err := pipeline.Whole(p, o.Files)
	if err != nil {
		return verify.Report{}, err
	}
	splitOpts := o
	splitOpts.OutPath = ""
	wholeOpts := o
	wholeOpts.OutPath = ""
	// One whole-file split per file: the split size is the largest file.
	wholeOpts.SplitSize = 1
	for _, s := range whole {
		wholeOpts.SplitSize = max(wholeOpts.SplitSize, s.Length)
	}
	wholeOpts.Progress = false
	wholeOpts.Quiet = true

	splits, err := Plan(p, o.Files, o.SplitSize)
	if err != nil {
		return verify.Report{}, err
	}
	rep := verify.Report{Splits: len(splits), WholeSplits: len(whole)}

	if long {
		rep.Kind = "sequence"
		sd, wd := verify.NewSequenceDigest(), verify.NewSequenceDigest()
		if _, err := Run[api.FragmentV1](ctx, io.Discard, stderr, splitOpts, p, Fragments, digestWriter[api.FragmentV1]{add: sd.Add}); err != nil {
			return rep, err
		}
		if _, err := Run[api.FragmentV1](ctx, io.Discard, stderr, wholeOpts, p, Fragments, digestWriter[api.FragmentV1]{add: wd.Add}); err != nil {
			return rep, err
		}
		rep.SplitCount, rep.SplitDigest = sd.Count(), sd.Sum64()
		rep.WholeCount, rep.WholeDigest = wd.Count(), wd.Sum64()
		return rep, nil
	}

	rep.Kind = "records"
	sd, wd := verify.NewRecordDigest(), verify.NewRecordDigest()
	if _, err := Run[api.RecordV1](ctx, io.Discard, stderr, splitOpts, p, Records, digestWriter[api.RecordV1]{add: sd.Add}); err != nil {
		return rep, err
	}
	if _, err := Run[api.RecordV1](ctx, io.Discard, stderr, wholeOpts, p, Records, digestWriter[api.RecordV1]{add: wd.Add}); err != nil {
		return rep, err
	}
	rep.SplitCount, rep.SplitDigest = sd.Count(), sd.Sum64()
	rep.WholeCount, rep.WholeDigest = wd.Count(), wd.Sum64()
	return rep, nil
}
