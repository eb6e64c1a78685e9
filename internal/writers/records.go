package writers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"syscall"

	"fastsplit/pkg/api"
)

// Output formats.
const (
	FormatFASTA = "fasta"
	FormatFASTQ = "fastq"
	FormatJSONL = "jsonl"
	FormatTSV   = "tsv"
	FormatKmers = "kmers"
)

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Useful when downstream consumers (like `head`) close early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

func init() {
	RegisterRecord(FormatFASTA, writeRecordFASTA)
	RegisterRecord(FormatFASTQ, writeRecordFASTQ)
	RegisterRecord(FormatTSV, writeRecordTSV)
	recordHeaders[FormatTSV] = "file\tsplit_start\toffset\tkey\tvalue\tkey2\tquality\n"
}

func writeRecordFASTA(w io.Writer, r api.RecordV1) error {
	_, err := fmt.Fprintf(w, ">%s\n%s\n", r.Key, r.Value)
	return err
}

func writeRecordFASTQ(w io.Writer, r api.RecordV1) error {
	if len(r.Quality) != len(r.Value) {
		return fmt.Errorf("record %q at offset %d has %d quality bytes for %d bases",
			r.Key, r.Offset, len(r.Quality), len(r.Value))
	}
	_, err := fmt.Fprintf(w, "@%s\n%s\n+%s\n%s\n", r.Key, r.Value, r.Key2, r.Quality)
	return err
}

func writeRecordTSV(w io.Writer, r api.RecordV1) error {
	_, err := fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%s\t%s\n",
		r.File, r.SplitStart, r.Offset, r.Key, tsvField(r.Value), r.Key2, r.Quality)
	return err
}

// tsvField keeps multi-line payloads on one row.
func tsvField(s string) string {
	q := strconv.Quote(s)
	if len(q) == len(s)+2 {
		return s
	}
	return q
}

// StartRecordWriter spins up a writer goroutine for records. jsonl goes
// through the JSONL encoder; everything else through the registry.
func StartRecordWriter(out io.Writer, format string, header bool, bufSize int) (chan<- api.RecordV1, <-chan error) {
	if format == FormatJSONL {
		return StartRecordJSONLWriter(out, bufSize)
	}
	return start(out, bufSize, headerFor(recordHeaders, format, header), func(w io.Writer, r api.RecordV1) error {
		return WriteRecord(format, w, r)
	})
}

func headerFor(m map[string]string, format string, enabled bool) string {
	if !enabled {
		return ""
	}
	return m[format]
}

// start runs write for every value on its own goroutine. After a failure
// the rest of the input is drained so senders never block; the error is
// reported once the input is closed.
func start[T any](out io.Writer, bufSize int, header string, write func(io.Writer, T) error) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	errCh := make(chan error, 1)

	go func() {
		bw := bufio.NewWriter(out)
		var err error
		if header != "" {
			_, err = io.WriteString(bw, header)
		}
		for v := range in {
			if err != nil {
				continue
			}
			err = write(bw, v)
		}
		if err == nil {
			err = bw.Flush()
		}
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()

	return in, errCh
}
