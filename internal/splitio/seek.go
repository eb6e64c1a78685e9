package splitio

import (
	"errors"
	"io"
)

// eofSeeker is implemented by streams whose backend rejects a seek to the
// exact end of the data with io.EOF.
type eofSeeker interface {
	EOFOnSeekToEnd() bool
}

// SafeSeek positions s at pos. A backend that reports io.EOF when asked to
// seek to its exact end is retried one byte back; any other failure is
// returned unchanged.
func SafeSeek(s io.Seeker, pos int64) error {
	_, err := s.Seek(pos, io.SeekStart)
	if err == nil {
		return nil
	}
	if !errors.Is(err, io.EOF) {
		return err
	}
	if q, ok := s.(eofSeeker); ok && q.EOFOnSeekToEnd() && pos > 0 {
		_, err = s.Seek(pos-1, io.SeekStart)
	}
	return err
}
