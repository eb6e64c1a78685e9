package fastx

import (
	"errors"
	"fmt"
)

const (
	// DefaultK is the overlap window used by LongScanner.
	DefaultK = 10
	// DefaultLookAheadBufferSize is the initial border buffer capacity.
	DefaultLookAheadBufferSize = 2048
)

var (
	ErrInvalidOptions = errors.New("fastx: invalid options")
	// ErrTruncatedRecord is returned when end of file cuts a FASTQ record
	// before its quality line.
	ErrTruncatedRecord = errors.New("fastx: truncated record")
	// ErrMalformedRecord is returned when a FASTQ record does not have the
	// four-line layout.
	ErrMalformedRecord = errors.New("fastx: malformed record")
)

// Options configures the scanners. Zero fields take their defaults.
type Options struct {
	Format              Format
	K                   int
	LookAheadBufferSize int
}

func (o Options) withDefaults() (Options, error) {
	if o.K == 0 {
		o.K = DefaultK
	}
	if o.LookAheadBufferSize == 0 {
		o.LookAheadBufferSize = DefaultLookAheadBufferSize
	}
	if o.K < 1 {
		return o, fmt.Errorf("%w: k must be >= 1, got %d", ErrInvalidOptions, o.K)
	}
	if o.LookAheadBufferSize < 1 {
		return o, fmt.Errorf("%w: look-ahead buffer size must be >= 1, got %d", ErrInvalidOptions, o.LookAheadBufferSize)
	}
	if o.Format != FASTA && o.Format != FASTQ {
		return o, fmt.Errorf("%w: %v", ErrInvalidOptions, o.Format)
	}
	return o, nil
}
