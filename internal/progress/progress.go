// Package progress draws a per-split progress bar on stderr.
package progress

import (
	"io"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"fastsplit/internal/split"
)

// Tracker counts finished splits. A nil or disabled Tracker does nothing.
type Tracker struct {
	p   *mpb.Progress
	bar *mpb.Bar
}

// New returns a Tracker for total splits writing to w. When enabled is
// false the Tracker is a no-op.
func New(w io.Writer, label string, total int, enabled bool) *Tracker {
	if !enabled || total <= 0 {
		return &Tracker{}
	}
	p := mpb.New(mpb.WithWidth(40), mpb.WithOutput(w))
	name := label + ": "
	bar := p.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(name, decor.WC{W: len(name), C: decor.DindentRight}),
			decor.CountersNoUnit("%d / %d splits", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WC{W: 5}),
			decor.OnComplete(decor.Name(""), " done"),
		),
	)
	return &Tracker{p: p, bar: bar}
}

// Done marks one split finished.
func (t *Tracker) Done(split.Split) {
	if t == nil || t.bar == nil {
		return
	}
	t.bar.Increment()
}

// Close stops the bar, leaving it as drawn when not all splits finished,
// and waits for the final render.
func (t *Tracker) Close() {
	if t == nil || t.p == nil {
		return
	}
	if !t.bar.Completed() {
		t.bar.Abort(false)
	}
	t.p.Wait()
}
