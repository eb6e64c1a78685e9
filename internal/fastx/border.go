package fastx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// rebinder is told when the border buffer moves to a new allocation.
type rebinder interface {
	rebind(buf []byte)
}

// border is the growable buffer a record moves into when it continues past
// the end of its split. The owner is rebound on every reallocation.
type border struct {
	data  []byte
	owner rebinder
}

func newBorder(capacity int, owner rebinder) *border {
	return &border{data: make([]byte, 0, capacity), owner: owner}
}

func (b *border) reset() { b.data = b.data[:0] }

func (b *border) len() int { return len(b.data) }

// grow makes room for n more bytes, keeping the contents.
func (b *border) grow(n int) {
	if cap(b.data)-len(b.data) >= n {
		return
	}
	nd := make([]byte, len(b.data), max(2*cap(b.data), len(b.data)+n))
	copy(nd, b.data)
	b.data = nd
	if b.owner != nil {
		b.owner.rebind(nd)
	}
}

func (b *border) write(p []byte) {
	b.grow(len(p))
	b.data = append(b.data, p...)
}

func (b *border) writeByte(c byte) {
	b.grow(1)
	b.data = append(b.data, c)
}

// readUntil appends bytes from src until stop is read or src is exhausted.
// The stop byte is not stored. found is false at end of input.
func (b *border) readUntil(src io.ByteReader, stop byte) (found bool, err error) {
	for {
		c, err := src.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, fmt.Errorf("read past split: %w", err)
		}
		if c == stop {
			return true, nil
		}
		b.writeByte(c)
	}
}

// borderMode says which part of a FASTA record is still missing.
type borderMode uint8

const (
	headerIncomplete borderMode = iota + 1
	payloadIncomplete
)

// extendFASTA completes r from src, which must be positioned at the first
// byte after primary. In headerIncomplete mode primary[key.Start:] is the
// start of the header line; in payloadIncomplete mode key is complete and
// primary[valueStart:] is the start of the payload.
func (b *border) extendFASTA(r *Record, src io.ByteReader, primary []byte, mode borderMode, key Span, valueStart int) error {
	b.reset()
	sp := unsetSpans()

	switch mode {
	case headerIncomplete:
		b.write(primary[key.Start:])
		r.retarget(borderBuffer, b.data, spans{key: Span{0, b.len() - 1}, value: Unset, key2: Unset, quality: Unset})
		nl, err := b.readUntil(src, '\n')
		if err != nil {
			return err
		}
		sp.key = Span{0, b.len() - 1}
		if !nl {
			// Header ran into end of file: no payload.
			sp.value = emptyAt(b.len())
			r.retarget(borderBuffer, b.data, sp)
			return nil
		}
	case payloadIncomplete:
		b.write(primary[key.Start : key.End+1])
		sp.key = Span{0, b.len() - 1}
		b.write(primary[valueStart:])
	default:
		return fmt.Errorf("fastx: bad border mode %d", mode)
	}

	vs := sp.key.End + 1
	r.retarget(borderBuffer, b.data, spans{key: sp.key, value: Span{vs, b.len() - 1}, key2: Unset, quality: Unset})

	marker, err := b.readUntil(src, FASTA.Marker())
	if err != nil {
		return err
	}
	if marker {
		sp.value = Span{vs, dropNewline(b.data, vs, b.len()-1)}
	} else {
		sp.value = Span{vs, trimNewlines(b.data, vs, b.len()-1)}
	}
	r.retarget(borderBuffer, b.data, sp)
	return nil
}

// extendFASTQ completes a FASTQ record whose first bytes are partial (from
// its '@' to the end of the split) by reading until its fourth line ends.
func (b *border) extendFASTQ(r *Record, src io.ByteReader, partial []byte) error {
	b.reset()
	b.write(partial)
	r.retarget(borderBuffer, b.data, unsetSpans())

	for lines := bytes.Count(partial, []byte{'\n'}); lines < 4; lines++ {
		nl, err := b.readUntil(src, '\n')
		if err != nil {
			return err
		}
		if !nl {
			break
		}
		b.writeByte('\n')
	}
	sp, _, st := parseFASTQ(b.data, 0, true)
	if err := st.err(); err != nil {
		return err
	}
	r.retarget(borderBuffer, b.data, sp)
	return nil
}

// trimNewlines moves end back over trailing newline bytes, never below
// start-1.
func trimNewlines(buf []byte, start, end int) int {
	for end >= start && buf[end] == '\n' {
		end--
	}
	return end
}

// dropNewline removes the single newline that precedes a record marker.
func dropNewline(buf []byte, start, end int) int {
	if end >= start && buf[end] == '\n' {
		end--
	}
	return end
}
