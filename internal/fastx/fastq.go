package fastx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

type fqStatus uint8

const (
	fqComplete fqStatus = iota
	fqPartial
	fqTruncated
	fqMalformed
)

func (st fqStatus) err() error {
	switch st {
	case fqTruncated:
		return ErrTruncatedRecord
	case fqMalformed:
		return fmt.Errorf("%w: third line does not start with '+'", ErrMalformedRecord)
	}
	return nil
}

// parseFASTQ reads the four lines of the record whose '@' is at buf[at].
// next is the offset after the record's last newline. Without atEOF a
// record lacking its fourth newline is fqPartial; with atEOF an
// unterminated quality line is accepted.
func parseFASTQ(buf []byte, at int, atEOF bool) (sp spans, next int, st fqStatus) {
	var nl [4]int
	lines := 0
	for from := at; lines < 4; lines++ {
		i := bytes.IndexByte(buf[from:], '\n')
		if i < 0 {
			break
		}
		nl[lines] = from + i
		from += i + 1
	}
	if lines < 4 {
		if !atEOF {
			return sp, 0, fqPartial
		}
		if lines < 3 {
			return sp, 0, fqTruncated
		}
		nl[3] = len(buf)
	}
	plus := nl[1] + 1
	if buf[plus] != '+' {
		return sp, 0, fqMalformed
	}
	sp = spans{
		key:     Span{at + 1, nl[0] - 1},
		value:   Span{nl[0] + 1, nl[1] - 1},
		key2:    Span{plus + 1, nl[2] - 1},
		quality: Span{nl[2] + 1, nl[3] - 1},
	}
	return sp, min(nl[3]+1, len(buf)), fqComplete
}

// syncFASTQ finds the first record start in the split: an '@' at the start
// of a line whose third line starts with '+'. Quality lines may begin with
// '@' too, but the line two below a quality line is a sequence line.
func (s *ShortScanner) syncFASTQ() (int, error) {
	for i := 0; i < len(s.buf); i++ {
		j := bytes.IndexByte(s.buf[i:], FASTQ.Marker())
		if j < 0 {
			return -1, nil
		}
		i += j
		lineStart, err := s.lineStartAt(i)
		if err != nil {
			return -1, err
		}
		if !lineStart {
			continue
		}
		ok, err := s.plusLineFollows(i)
		if err != nil {
			return -1, err
		}
		if ok {
			return i, nil
		}
	}
	return -1, nil
}

func (s *ShortScanner) lineStartAt(i int) (bool, error) {
	if i > 0 {
		return s.buf[i-1] == '\n', nil
	}
	if s.split.Start == 0 {
		return true, nil
	}
	var one [1]byte
	if _, err := s.stream.ReadAt(one[:], s.split.Start-1); err != nil {
		return false, fmt.Errorf("read byte before split: %w", err)
	}
	s.prev = one[0]
	return s.prev == '\n', nil
}

// plusLineFollows reports whether the line two lines below buf[i] starts
// with '+'. It may look past the end of the split.
func (s *ShortScanner) plusLineFollows(i int) (bool, error) {
	j := i
	for lines := 0; lines < 2; {
		c, ok, err := s.peek(j)
		if err != nil || !ok {
			return false, err
		}
		if c == '\n' {
			lines++
		}
		j++
	}
	c, ok, err := s.peek(j)
	return ok && c == '+', err
}

// peek returns the byte at split offset i, reading past the split with
// positional reads, which leave the stream position untouched.
func (s *ShortScanner) peek(i int) (byte, bool, error) {
	if i < len(s.buf) {
		return s.buf[i], true, nil
	}
	k := i - len(s.buf)
	for k >= len(s.ahead) {
		if s.aheadEOF {
			return 0, false, nil
		}
		chunk := make([]byte, s.opts.LookAheadBufferSize)
		n, err := s.stream.ReadAt(chunk, s.split.Start+int64(len(s.buf)+len(s.ahead)))
		s.ahead = append(s.ahead, chunk[:n]...)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return 0, false, fmt.Errorf("read past split: %w", err)
			}
			s.aheadEOF = true
		} else if n == 0 {
			s.aheadEOF = true
		}
	}
	return s.ahead[k], true, nil
}
