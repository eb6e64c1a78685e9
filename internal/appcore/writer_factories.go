package appcore

import (
	"io"

	"fastsplit/internal/writers"
	"fastsplit/pkg/api"
)

// ---------------- Record writer ----------------

type RecordWriterFactory struct {
	Format string
	Header bool
}

func NewRecordWriterFactory(format string, header bool) RecordWriterFactory {
	return RecordWriterFactory{Format: format, Header: header}
}

func (w RecordWriterFactory) Start(out io.Writer, bufSize int) (chan<- api.RecordV1, <-chan error) {
	return writers.StartRecordWriter(out, w.Format, w.Header, bufSize)
}

// ---------------- Fragment writer ----------------

type FragmentWriterFactory struct {
	Format string
	Header bool
}

func NewFragmentWriterFactory(format string, header bool) FragmentWriterFactory {
	return FragmentWriterFactory{Format: format, Header: header}
}

func (w FragmentWriterFactory) Start(out io.Writer, bufSize int) (chan<- api.FragmentV1, <-chan error) {
	return writers.StartFragmentWriter(out, w.Format, w.Header, bufSize)
}

// ---------------- Digest sinks ----------------

// digestWriter feeds values into a digest instead of an output stream.
type digestWriter[T any] struct {
	add func(T)
}

func (w digestWriter[T]) Start(_ io.Writer, bufSize int) (chan<- T, <-chan error) {
	in := make(chan T, max(bufSize, 1))
	done := make(chan error, 1)
	go func() {
		for v := range in {
			w.add(v)
		}
		done <- nil
	}()
	return in, done
}
