// Package verify checks that scanning a file split by split gives the same
// result as scanning it whole.
//
// Both sides are reduced to order-sensitive xxhash digests, so arbitrarily
// large inputs compare in constant memory.
package verify

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"fastsplit/pkg/api"
)

// ErrMismatch is returned when a split scan differs from the whole scan.
var ErrMismatch = errors.New("split scan differs from whole-file scan")

// RecordDigest hashes a sequence of records. Field boundaries are kept with
// NUL separators so shifting bytes between fields changes the digest.
type RecordDigest struct {
	h *xxhash.Digest
	n int
}

func NewRecordDigest() *RecordDigest { return &RecordDigest{h: xxhash.New()} }

// Add folds one record into the digest. Only the record's content is
// hashed, not where it was found.
func (d *RecordDigest) Add(r api.RecordV1) {
	for _, s := range [...]string{r.File, r.Key, r.Value, r.Key2, r.Quality} {
		_, _ = d.h.WriteString(s)
		_, _ = d.h.Write([]byte{0})
	}
	d.n++
}

func (d *RecordDigest) Sum64() uint64 { return d.h.Sum64() }

// Count returns the number of records added.
func (d *RecordDigest) Count() int { return d.n }

// SequenceDigest hashes the sequences rebuilt from long-sequence fragments.
// Every fragment but the last of its file is cut back by its k-1 overlap,
// so one fragment is held back until the next arrives.
type SequenceDigest struct {
	h       *xxhash.Digest
	pending *api.FragmentV1
	n       int
}

func NewSequenceDigest() *SequenceDigest { return &SequenceDigest{h: xxhash.New()} }

// Add folds in the next fragment. Fragments must arrive in file order.
func (d *SequenceDigest) Add(f api.FragmentV1) {
	if p := d.pending; p != nil {
		if p.File == f.File {
			_, _ = d.h.WriteString(p.Value[:len(p.Value)-(p.K-1)])
		} else {
			writeLast(d.h, p)
		}
	}
	d.pending = &f
	d.n++
}

func writeLast(h *xxhash.Digest, f *api.FragmentV1) {
	_, _ = h.WriteString(f.Value)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(f.File)
	_, _ = h.Write([]byte{0})
}

// Sum64 returns the digest of everything added so far, treating the held
// fragment as the last of its file. It does not change d.
func (d *SequenceDigest) Sum64() uint64 {
	h := *d.h
	if d.pending != nil {
		writeLast(&h, d.pending)
	}
	return h.Sum64()
}

func (d *SequenceDigest) Count() int { return d.n }

// Report compares the two scans of one input set.
type Report struct {
	Kind        string // "records" or "sequence"
	Splits      int
	WholeSplits int
	SplitCount  int // records or fragments seen split by split
	WholeCount  int
	SplitDigest uint64
	WholeDigest uint64
}

// OK reports whether both scans agree.
func (r Report) OK() bool { return r.SplitDigest == r.WholeDigest }

// Err returns ErrMismatch with details when the scans disagree.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	return fmt.Errorf("%w: %s digest %s over %d splits, %s over %d whole files",
		ErrMismatch, r.Kind, hex(r.SplitDigest), r.Splits, hex(r.WholeDigest), r.WholeSplits)
}

func (r Report) String() string {
	status := "OK"
	if !r.OK() {
		status = "MISMATCH"
	}
	return fmt.Sprintf("%s\t%s\tsplits=%d\tsplit_%s=%d\twhole_%s=%d\tdigest=%s",
		status, r.Kind, r.Splits, r.Kind, r.SplitCount, r.Kind, r.WholeCount, hex(r.SplitDigest))
}

func hex(v uint64) string { return strconv.FormatUint(v, 16) }
