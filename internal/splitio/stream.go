// Package splitio provides the seekable byte streams split scanners read from.
//
// A Stream supports positional reads (ReadAt, which never moves the stream
// position) and sequential single-byte reads from the current position. Both
// backends here are built on an io.ReaderAt: local files are memory-mapped,
// in-memory blobs emulate an object store.
package splitio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrNotFound is returned by a Provider for an unknown file.
	ErrNotFound = errors.New("splitio: file not found")
	// ErrClosed is returned when a closed Stream is used or closed again.
	ErrClosed = errors.New("splitio: stream closed")
)

// Stream is an open, seekable view of one file.
type Stream interface {
	io.ReaderAt
	io.ByteReader
	io.Seeker
	io.Closer
}

// Provider opens streams and reports physical file sizes.
type Provider interface {
	Open(name string) (Stream, error)
	Size(name string) (int64, error)
}

// byteReadBuf bounds how far a sequential reader reads ahead of ReadByte.
const byteReadBuf = 4 << 10

// sectionStream adapts an io.ReaderAt of known size to Stream.
type sectionStream struct {
	ra     io.ReaderAt
	size   int64
	pos    int64
	br     *bufio.Reader
	closer io.Closer
	closed bool

	// eofOnEnd makes Seek fail with io.EOF at or past the end of the data,
	// the way some object-store input streams do.
	eofOnEnd bool
}

func newSectionStream(ra io.ReaderAt, size int64, closer io.Closer, eofOnEnd bool) *sectionStream {
	s := &sectionStream{ra: ra, size: size, closer: closer, eofOnEnd: eofOnEnd}
	s.br = bufio.NewReaderSize(io.NewSectionReader(ra, 0, size), byteReadBuf)
	return s
}

func (s *sectionStream) ReadAt(p []byte, off int64) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	return s.ra.ReadAt(p, off)
}

func (s *sectionStream) ReadByte() (byte, error) {
	if s.closed {
		return 0, ErrClosed
	}
	c, err := s.br.ReadByte()
	if err != nil {
		return 0, err
	}
	s.pos++
	return c, nil
}

func (s *sectionStream) Seek(offset int64, whence int) (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = s.pos + offset
	case io.SeekEnd:
		abs = s.size + offset
	default:
		return s.pos, fmt.Errorf("splitio: invalid whence %d", whence)
	}
	if abs < 0 {
		return s.pos, fmt.Errorf("splitio: negative position %d", abs)
	}
	if s.eofOnEnd && abs >= s.size {
		return s.pos, io.EOF
	}
	s.pos = abs
	s.br.Reset(io.NewSectionReader(s.ra, abs, max(0, s.size-abs)))
	return abs, nil
}

func (s *sectionStream) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// EOFOnSeekToEnd reports whether seeking to the exact end of the stream
// fails with io.EOF instead of positioning at the end.
func (s *sectionStream) EOFOnSeekToEnd() bool { return s.eofOnEnd }
