// Package fastx scans FASTA and FASTQ files one split at a time.
//
// A split is an arbitrary byte range of a larger file. ShortScanner yields
// every record whose start marker lies inside its split, completing the last
// one from the bytes past the split if needed. LongScanner treats the file
// as one long sequence and yields a single fragment per split, extended by
// k-1 bytes so that no k-length window is lost at a split boundary.
//
// Records hold spans into the scanner's buffers; they are reused for every
// record and become invalid once the scanner advances or is closed. Use
// Clone to keep one.
package fastx

import (
	"fmt"
	"strings"
)

// Format selects the record layout a ShortScanner expects.
type Format uint8

const (
	FASTA Format = iota
	FASTQ
)

// Marker returns the byte that starts a record.
func (f Format) Marker() byte {
	if f == FASTQ {
		return '@'
	}
	return '>'
}

func (f Format) String() string {
	switch f {
	case FASTA:
		return "fasta"
	case FASTQ:
		return "fastq"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// ParseFormat maps "fasta"/"fa" and "fastq"/"fq" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "fasta", "fa", "fna":
		return FASTA, nil
	case "fastq", "fq":
		return FASTQ, nil
	}
	return 0, fmt.Errorf("%w: unknown format %q", ErrInvalidOptions, s)
}

// Span addresses bytes [Start, End] of a buffer; End is inclusive.
// A span with End == Start-1 is empty but positioned.
type Span struct {
	Start, End int
}

// Unset marks a span that has not been populated. It never indexes a buffer.
var Unset = Span{Start: -1, End: -2}

func emptyAt(i int) Span { return Span{Start: i, End: i - 1} }

// IsSet reports whether s addresses a buffer position.
func (s Span) IsSet() bool { return s.Start >= 0 }

// Len returns End-Start+1, or 0 for an unset span.
func (s Span) Len() int {
	if !s.IsSet() {
		return 0
	}
	return s.End - s.Start + 1
}

// bufferKind tags which buffer a record currently points into.
type bufferKind uint8

const (
	primaryBuffer bufferKind = iota
	borderBuffer
)

func (k bufferKind) String() string {
	if k == borderBuffer {
		return "border"
	}
	return "primary"
}

// spans is the full set of sub-fields of one record.
type spans struct {
	key, value, key2, quality Span
}

func unsetSpans() spans { return spans{key: Unset, value: Unset, key2: Unset, quality: Unset} }

func (sp spans) all() [4]Span { return [4]Span{sp.key, sp.value, sp.key2, sp.quality} }

// Record is one FASTA or FASTQ entry.
type Record struct {
	Format Format

	// File and SplitStart identify the split that produced the record.
	File       string
	SplitStart int64
	// SplitOffset is the position of the record's first key byte in the
	// split buffer.
	SplitOffset int

	kind bufferKind
	buf  []byte
	sp   spans
}

// retarget points r at buf and replaces every span in one step. Spans must
// already be expressed as offsets into buf.
func (r *Record) retarget(kind bufferKind, buf []byte, sp spans) {
	r.kind, r.buf, r.sp = kind, buf, sp
}

// rebind follows a reallocation of the border buffer. Offsets are preserved
// by the reallocation, so spans stay valid.
func (r *Record) rebind(buf []byte) {
	if r.kind == borderBuffer {
		r.buf = buf
	}
}

// Bytes returns the bytes of s without copying. The slice is only valid
// until the scanner advances.
func (r *Record) Bytes(s Span) []byte {
	if s.Len() <= 0 {
		return nil
	}
	return r.buf[s.Start : s.End+1 : s.End+1]
}

// Text copies the bytes of s into a string.
func (r *Record) Text(s Span) string { return string(r.Bytes(s)) }

// Accessors for the record's fields. The Span forms address the current
// buffer and are only valid until the next call to Next; Key, Value, Key2
// and Quality copy; the Bytes forms share the scanner's buffer. Key2 and
// Quality are empty for FASTA.
func (r *Record) KeySpan() Span     { return r.sp.key }
func (r *Record) ValueSpan() Span   { return r.sp.value }
func (r *Record) Key2Span() Span    { return r.sp.key2 }
func (r *Record) QualitySpan() Span { return r.sp.quality }

func (r *Record) Key() string     { return r.Text(r.sp.key) }
func (r *Record) Value() string   { return r.Text(r.sp.value) }
func (r *Record) Key2() string    { return r.Text(r.sp.key2) }
func (r *Record) Quality() string { return r.Text(r.sp.quality) }

func (r *Record) KeyBytes() []byte     { return r.Bytes(r.sp.key) }
func (r *Record) ValueBytes() []byte   { return r.Bytes(r.sp.value) }
func (r *Record) QualityBytes() []byte { return r.Bytes(r.sp.quality) }

// CrossedBorder reports whether the record was completed from bytes past
// the end of its split.
func (r *Record) CrossedBorder() bool { return r.kind == borderBuffer }

// Clone returns a copy that owns a compact buffer holding only its spans.
func (r *Record) Clone() *Record {
	c := &Record{
		Format:      r.Format,
		File:        r.File,
		SplitStart:  r.SplitStart,
		SplitOffset: r.SplitOffset,
		kind:        r.kind,
	}
	var n int
	for _, s := range r.sp.all() {
		n += s.Len()
	}
	buf := make([]byte, 0, n)
	place := func(s Span) Span {
		if !s.IsSet() {
			return Unset
		}
		at := len(buf)
		buf = append(buf, r.Bytes(s)...)
		return Span{Start: at, End: len(buf) - 1}
	}
	sp := spans{
		key:     place(r.sp.key),
		value:   place(r.sp.value),
		key2:    place(r.sp.key2),
		quality: place(r.sp.quality),
	}
	c.retarget(r.kind, buf, sp)
	return c
}

// String renders the record back in its file format.
func (r *Record) String() string {
	if r.Format == FASTQ {
		return "@" + r.Key() + "\n" + r.Value() + "\n+" + r.Key2() + "\n" + r.Quality()
	}
	return ">" + r.Key() + "\n" + r.Value()
}

// validSpans reports whether every set span lies within the current buffer.
func (r *Record) validSpans() bool {
	for _, s := range r.sp.all() {
		if !s.IsSet() {
			if s != Unset {
				return false
			}
			continue
		}
		if s.End < s.Start-1 || s.End >= len(r.buf) {
			return false
		}
	}
	return true
}
