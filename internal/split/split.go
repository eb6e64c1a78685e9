// Package split describes the byte ranges a file is cut into.
//
// Splits are produced by whatever distributes work; Plan is the simple
// fixed-size planner the fastsplit command uses. The scanners only require
// that a file's splits are adjacent, non-overlapping and cover every byte.
package split

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is returned by Plan for a non-positive split size.
var ErrInvalidSize = errors.New("split: size must be > 0")

// Split is one contiguous byte range of a file.
type Split struct {
	File   string `json:"file"`
	Index  int    `json:"index"`
	Start  int64  `json:"start"`
	Length int64  `json:"length"`
}

// End returns the offset one past the split's last byte.
func (s Split) End() int64 { return s.Start + s.Length }

func (s Split) String() string {
	return fmt.Sprintf("%s:%d+%d", s.File, s.Start, s.Length)
}

// Plan cuts a file of fileLen bytes into splits of size bytes; the last
// split takes the remainder. An empty file yields no splits.
func Plan(file string, fileLen, size int64) ([]Split, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if fileLen < 0 {
		return nil, fmt.Errorf("split: negative file length %d", fileLen)
	}
	out := make([]Split, 0, (fileLen+size-1)/size)
	for off := int64(0); off < fileLen; off += size {
		n := size
		if off+n > fileLen {
			n = fileLen - off
		}
		out = append(out, Split{File: file, Index: len(out), Start: off, Length: n})
	}
	return out, nil
}

// At cuts a file of fileLen bytes at the given offsets. Offsets outside
// (0, fileLen) and duplicates are ignored.
func At(file string, fileLen int64, cuts ...int64) []Split {
	var out []Split
	prev := int64(0)
	for _, c := range cuts {
		if c <= prev || c >= fileLen {
			continue
		}
		out = append(out, Split{File: file, Index: len(out), Start: prev, Length: c - prev})
		prev = c
	}
	if prev < fileLen {
		out = append(out, Split{File: file, Index: len(out), Start: prev, Length: fileLen - prev})
	}
	return out
}
