package fastx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"fastsplit/internal/split"
	"fastsplit/internal/splitio"
)

// PartialSequence is the fragment of a single long sequence owned by one
// split. It covers every k-length window that starts inside the split, so
// it extends k-1 bytes past the split's own bytes.
type PartialSequence struct {
	File       string
	SplitStart int64
	// Header is the file's header line without '>' (the file name when the
	// file has none). It is the same for every fragment of a file.
	Header string
	// HasHeader is set on the fragment whose split contained the header.
	HasHeader bool
	K         int

	// StartValue is the buffer offset of the first payload byte and
	// BytesToProcess the number of k-windows starting in this split.
	StartValue     int
	BytesToProcess int

	buf []byte
}

// Offset returns the file offset of the first payload byte.
func (p *PartialSequence) Offset() int64 { return p.SplitStart + int64(p.StartValue) }

// Bytes returns the payload: BytesToProcess+K-1 bytes from StartValue.
func (p *PartialSequence) Bytes() []byte {
	end := min(p.StartValue+p.BytesToProcess+p.K-1, len(p.buf))
	return p.buf[p.StartValue:end:end]
}

// Value copies the payload into a string.
func (p *PartialSequence) Value() string { return string(p.Bytes()) }

// Kmers calls fn for every k-window starting in this split, with the file
// offset of its first byte. It stops early when fn returns false.
func (p *PartialSequence) Kmers(fn func(off int64, kmer []byte) bool) {
	v := p.Bytes()
	for i := 0; i < p.BytesToProcess && i+p.K <= len(v); i++ {
		if !fn(p.Offset()+int64(i), v[i:i+p.K:i+p.K]) {
			return
		}
	}
}

// String renders the fragment, prefixed by the header line on the fragment
// that contained it.
func (p *PartialSequence) String() string {
	if p.HasHeader {
		return ">" + p.Header + "\n" + p.Value()
	}
	return p.Value()
}

// Clone returns a copy that owns only the payload bytes.
func (p *PartialSequence) Clone() *PartialSequence {
	c := *p
	c.buf = append([]byte(nil), p.Bytes()...)
	c.SplitStart = p.Offset()
	c.StartValue = 0
	return &c
}

// LongScanner yields the one fragment a split contributes to a file that
// holds a single long sequence.
type LongScanner struct {
	opts   Options
	split  split.Split
	stream splitio.Stream

	seq    PartialSequence
	last   bool
	done   bool
	err    error
	closed bool
}

// Layout is what every split of a long-sequence file needs to know about
// the file as a whole.
type Layout struct {
	Size int64
	// Header is the first line without '>', or the file's base name when
	// the file does not start with '>'.
	Header string
	// HeaderLen is the number of bytes of the header line, newline included.
	HeaderLen int64
	// DataEnd is one past the last byte that is not a trailing newline.
	DataEnd int64
}

// ReadLayout reads the header and the end of data of file. Scanning many
// splits of one file should read it once and use NewLongScannerLayout.
func ReadLayout(p splitio.Provider, file string) (Layout, error) {
	size, err := p.Size(file)
	if err != nil {
		return Layout{}, err
	}
	st, err := p.Open(file)
	if err != nil {
		return Layout{}, err
	}
	l, err := readLayout(st, file, size)
	if cerr := st.Close(); err == nil {
		err = cerr
	}
	return l, err
}

func readLayout(r io.ReaderAt, file string, size int64) (Layout, error) {
	header, headerLen, err := readHeader(r, size)
	if err != nil {
		return Layout{}, fmt.Errorf("%s: %w", file, err)
	}
	if header == "" && headerLen == 0 {
		header = filepath.Base(file)
	}
	dataEnd, err := lastDataByte(r, size)
	if err != nil {
		return Layout{}, fmt.Errorf("%s: %w", file, err)
	}
	return Layout{Size: size, Header: header, HeaderLen: headerLen, DataEnd: dataEnd}, nil
}

// NewLongScanner opens s.File through p and computes the split's fragment.
// It reads the file's layout itself.
func NewLongScanner(p splitio.Provider, s split.Split, opts Options) (*LongScanner, error) {
	return newLongScanner(p, s, opts, nil)
}

// NewLongScannerLayout is NewLongScanner with the file layout already read
// by ReadLayout.
func NewLongScannerLayout(p splitio.Provider, s split.Split, opts Options, l Layout) (*LongScanner, error) {
	return newLongScanner(p, s, opts, &l)
}

func newLongScanner(p splitio.Provider, s split.Split, opts Options, l *Layout) (*LongScanner, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	var size int64
	if l == nil {
		if size, err = p.Size(s.File); err != nil {
			return nil, err
		}
	}
	st, err := p.Open(s.File)
	if err != nil {
		return nil, err
	}
	if l == nil {
		read, err := readLayout(st, s.File, size)
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("split %s: %w", s, err)
		}
		l = &read
	}
	sc := &LongScanner{opts: opts, split: s, stream: st}
	if err := sc.init(*l); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("split %s: %w", s, err)
	}
	return sc, nil
}

func (s *LongScanner) init(l Layout) error {
	k := s.opts.K
	s.seq = PartialSequence{File: s.split.File, SplitStart: s.split.Start, K: k}
	if s.split.Length <= 0 {
		s.done = true
		return nil
	}

	buf := make([]byte, s.split.Length+int64(k+2))
	n1, err := readAt(s.stream, buf[:s.split.Length], s.split.Start)
	if err != nil {
		return err
	}
	if n1 == 0 {
		s.done = true
		return nil
	}
	n2, err := readAt(s.stream, buf[n1:n1+k+2], s.split.Start+int64(n1))
	if err != nil {
		return err
	}
	s.seq.buf = buf[:n1+n2]
	s.last = n2 == 0

	s.seq.Header = l.Header
	skip := int(min(max(l.HeaderLen-s.split.Start, 0), int64(n1)))
	s.seq.HasHeader = s.split.Start < l.HeaderLen
	s.seq.StartValue = skip

	own := s.split.Start + int64(n1)
	// Trailing newlines of the file that fall inside this split, and the
	// real bytes the lookahead holds.
	trailing := int(min(max(own-l.DataEnd, 0), int64(n1)))
	ahead := int(min(max(l.DataEnd-own, 0), int64(n2)))

	btp := n1 - skip - trailing
	if short := (k - 1) - ahead; short > 0 {
		// Not enough real bytes follow to complete the last windows.
		btp -= short
	}
	if btp <= 0 {
		s.done = true
		return nil
	}
	s.seq.BytesToProcess = btp
	return nil
}

// readAt is ReadAt with end of file treated as a short read.
func readAt(r io.ReaderAt, p []byte, off int64) (int, error) {
	n, err := r.ReadAt(p, off)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("read at %d: %w", off, err)
	}
	return n, nil
}

// readHeader returns the file's first line without '>' and the number of
// bytes it occupies including its newline. A file not starting with '>'
// has no header.
func readHeader(r io.ReaderAt, fileLen int64) (string, int64, error) {
	const chunk = 512
	var line []byte
	for off := int64(0); off < fileLen; off += chunk {
		b := make([]byte, min(chunk, fileLen-off))
		n, err := readAt(r, b, off)
		if err != nil {
			return "", 0, err
		}
		b = b[:n]
		if off == 0 && (n == 0 || b[0] != '>') {
			return "", 0, nil
		}
		if i := bytes.IndexByte(b, '\n'); i >= 0 {
			line = append(line, b[:i]...)
			return string(line[1:]), int64(len(line) + 1), nil
		}
		line = append(line, b...)
		if n == 0 {
			break
		}
	}
	if len(line) == 0 {
		return "", 0, nil
	}
	return string(line[1:]), int64(len(line)), nil
}

// lastDataByte returns the file offset one past the last byte that is not
// a trailing newline.
func lastDataByte(r io.ReaderAt, fileLen int64) (int64, error) {
	const chunk = 64
	end := fileLen
	for end > 0 {
		off := max(end-chunk, 0)
		b := make([]byte, end-off)
		n, err := readAt(r, b, off)
		if err != nil {
			return 0, err
		}
		for i := n - 1; i >= 0; i-- {
			if b[i] != '\n' {
				return off + int64(i) + 1, nil
			}
		}
		if n == 0 {
			break
		}
		end = off
	}
	return 0, nil
}

// Next reports whether the split has a fragment and marks it consumed.
func (s *LongScanner) Next() bool {
	if s.done || s.closed {
		return false
	}
	s.done = true
	return true
}

// Sequence returns the split's fragment.
func (s *LongScanner) Sequence() *PartialSequence { return &s.seq }

// Last reports whether the split is the last one of its file.
func (s *LongScanner) Last() bool { return s.last }

func (s *LongScanner) Err() error { return s.err }

// Progress is 0 until the fragment has been taken and 1 afterwards.
func (s *LongScanner) Progress() float64 {
	if s.done {
		return 1
	}
	return 0
}

func (s *LongScanner) Split() split.Split { return s.split }

// Close releases the stream. It is safe to call more than once.
func (s *LongScanner) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.stream.Close()
}
