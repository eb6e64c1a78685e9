package fastx

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"fastsplit/internal/split"
	"fastsplit/internal/splitio"
)

// ShortScanner yields the records of one split of a multi-record FASTA or
// FASTQ file. A record belongs to the split holding its marker byte; any
// partial record at the start of the split is left to the previous split,
// and the last record is completed from the stream past the split.
//
// Use it like bufio.Scanner:
//
//	for sc.Next() {
//		rec := sc.Record()
//	}
//	if err := sc.Err(); err != nil { ... }
type ShortScanner struct {
	opts    Options
	split   split.Split
	stream  splitio.Stream
	fileLen int64

	buf          []byte // the split's bytes
	pos          int    // next unread position in buf
	hasReadToEOF bool   // buf reaches the physical end of the file
	done         bool
	noMarker     bool

	rec    Record
	border *border
	err    error
	closed bool

	// FASTQ only: the byte before the split and bytes read past it while
	// looking for the first record.
	prev     byte
	ahead    []byte
	aheadEOF bool
}

// NewShortScanner opens s.File through p and prepares to scan its records.
// The scanner owns the stream until Close.
func NewShortScanner(p splitio.Provider, s split.Split, opts Options) (*ShortScanner, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	fileLen, err := p.Size(s.File)
	if err != nil {
		return nil, err
	}
	st, err := p.Open(s.File)
	if err != nil {
		return nil, err
	}
	sc := &ShortScanner{opts: opts, split: s, stream: st, fileLen: fileLen}
	if err := sc.init(); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("split %s: %w", s, err)
	}
	return sc, nil
}

func (s *ShortScanner) init() error {
	s.rec = Record{Format: s.opts.Format, File: s.split.File, SplitStart: s.split.Start, sp: unsetSpans()}
	s.border = newBorder(s.opts.LookAheadBufferSize, &s.rec)

	if s.split.Length <= 0 {
		s.done = true
		return nil
	}
	buf := make([]byte, s.split.Length)
	n, err := s.stream.ReadAt(buf, s.split.Start)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read: %w", err)
	}
	s.buf = buf[:n]
	s.rec.retarget(primaryBuffer, s.buf, unsetSpans())
	if n == 0 {
		s.done = true
		return nil
	}

	end := s.split.Start + int64(n)
	s.hasReadToEOF = end >= s.fileLen
	if err := splitio.SafeSeek(s.stream, end); err != nil {
		return fmt.Errorf("seek to %d: %w", end, err)
	}

	first, err := s.firstRecord()
	if err != nil {
		return err
	}
	if first < 0 {
		s.done = true
		s.noMarker = true
		return nil
	}
	s.pos = first + 1
	return nil
}

// firstRecord returns the index of the first marker byte owned by this
// split, or -1.
func (s *ShortScanner) firstRecord() (int, error) {
	if s.opts.Format == FASTQ {
		return s.syncFASTQ()
	}
	return bytes.IndexByte(s.buf, FASTA.Marker()), nil
}

// Next advances to the next record. It returns false when the split is
// exhausted or an error occurred.
func (s *ShortScanner) Next() bool {
	if s.done || s.err != nil || s.closed {
		return false
	}
	var err error
	if s.opts.Format == FASTQ {
		err = s.nextFASTQ()
	} else {
		err = s.nextFASTA()
	}
	if err != nil {
		s.err = err
		s.done = true
		return false
	}
	return true
}

func (s *ShortScanner) nextFASTA() error {
	buf := s.buf
	keyStart := s.pos
	s.rec.SplitOffset = keyStart

	nl := bytes.IndexByte(buf[keyStart:], '\n')
	if nl < 0 {
		s.pos, s.done = len(buf), true
		key := Span{keyStart, len(buf) - 1}
		if s.hasReadToEOF {
			s.rec.retarget(primaryBuffer, buf, spans{key: key, value: emptyAt(len(buf)), key2: Unset, quality: Unset})
			return nil
		}
		return s.border.extendFASTA(&s.rec, s.stream, buf, headerIncomplete, key, len(buf))
	}

	key := Span{keyStart, keyStart + nl - 1}
	valueStart := key.End + 2
	if m := bytes.IndexByte(buf[valueStart:], FASTA.Marker()); m >= 0 {
		marker := valueStart + m
		s.pos = marker + 1
		s.rec.retarget(primaryBuffer, buf, spans{
			key:     key,
			value:   Span{valueStart, dropNewline(buf, valueStart, marker-1)},
			key2:    Unset,
			quality: Unset,
		})
		return nil
	}

	s.pos, s.done = len(buf), true
	if s.hasReadToEOF {
		s.rec.retarget(primaryBuffer, buf, spans{
			key:     key,
			value:   Span{valueStart, trimNewlines(buf, valueStart, len(buf)-1)},
			key2:    Unset,
			quality: Unset,
		})
		return nil
	}
	return s.border.extendFASTA(&s.rec, s.stream, buf, payloadIncomplete, key, valueStart)
}

func (s *ShortScanner) nextFASTQ() error {
	at := s.pos - 1
	s.rec.SplitOffset = s.pos

	sp, next, st := parseFASTQ(s.buf, at, s.hasReadToEOF)
	switch st {
	case fqComplete:
		s.rec.retarget(primaryBuffer, s.buf, sp)
		for next < len(s.buf) && s.buf[next] == '\n' {
			next++
		}
		if next >= len(s.buf) {
			s.pos, s.done = len(s.buf), true
			return nil
		}
		if s.buf[next] != FASTQ.Marker() {
			return fmt.Errorf("%w: no '@' at offset %d", ErrMalformedRecord, s.split.Start+int64(next))
		}
		s.pos = next + 1
		return nil
	case fqPartial:
		s.pos, s.done = len(s.buf), true
		return s.border.extendFASTQ(&s.rec, s.stream, s.buf[at:])
	}
	return fmt.Errorf("record at offset %d: %w", s.split.Start+int64(at), st.err())
}

// Record returns the current record. It is overwritten by the next call to
// Next.
func (s *ShortScanner) Record() *Record { return &s.rec }

// Err returns the first error met while scanning.
func (s *ShortScanner) Err() error { return s.err }

// Progress returns the fraction of the split buffer consumed so far.
func (s *ShortScanner) Progress() float64 {
	if s.done {
		return 1
	}
	if len(s.buf) == 0 {
		return 0
	}
	return float64(s.pos) / float64(len(s.buf))
}

// NoMarker reports that the split held no record start at all. On the first
// split of a file this usually means the file is not in the expected format.
func (s *ShortScanner) NoMarker() bool { return s.noMarker }

// Split returns the split being scanned.
func (s *ShortScanner) Split() split.Split { return s.split }

// Close releases the stream. It is safe to call more than once.
func (s *ShortScanner) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.stream.Close()
}
