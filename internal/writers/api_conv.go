package writers

import (
	"fastsplit/internal/fastx"
	"fastsplit/pkg/api"
)

// ToAPIRecord copies r into its wire form. The result does not share
// memory with the scanner.
func ToAPIRecord(r *fastx.Record) api.RecordV1 {
	return api.RecordV1{
		File:          r.File,
		SplitStart:    r.SplitStart,
		Offset:        r.SplitStart + int64(r.SplitOffset),
		Key:           r.Key(),
		Value:         r.Value(),
		Key2:          r.Key2(),
		Quality:       r.Quality(),
		CrossedBorder: r.CrossedBorder(),
	}
}

// ToAPIFragment copies p into its wire form.
func ToAPIFragment(p *fastx.PartialSequence) api.FragmentV1 {
	return api.FragmentV1{
		File:           p.File,
		SplitStart:     p.SplitStart,
		Offset:         p.Offset(),
		Header:         p.Header,
		HasHeader:      p.HasHeader,
		K:              p.K,
		BytesToProcess: p.BytesToProcess,
		Value:          p.Value(),
	}
}
