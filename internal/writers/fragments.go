package writers

import (
	"fmt"
	"io"
	"strings"

	"fastsplit/pkg/api"
)

func init() {
	RegisterFragment(FormatFASTA, writeFragmentFASTA)
	RegisterFragment(FormatTSV, writeFragmentTSV)
	RegisterFragment(FormatKmers, writeFragmentKmers)
	fragmentHeaders[FormatTSV] = "file\toffset\tk\tbytes_to_process\tvalue\n"
	fragmentHeaders[FormatKmers] = "file\toffset\tkmer\n"
}

// writeFragmentFASTA writes each fragment as its own record named after
// the header and the offset of its first base.
func writeFragmentFASTA(w io.Writer, f api.FragmentV1) error {
	_, err := fmt.Fprintf(w, ">%s offset=%d k=%d\n%s\n", f.Header, f.Offset, f.K, f.Value)
	return err
}

func writeFragmentTSV(w io.Writer, f api.FragmentV1) error {
	_, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n", f.File, f.Offset, f.K, f.BytesToProcess, tsvField(f.Value))
	return err
}

// writeFragmentKmers writes one row per k-window starting in the fragment.
// Windows that span a line break are skipped; offsets are file offsets.
func writeFragmentKmers(w io.Writer, f api.FragmentV1) error {
	for i := 0; i < f.BytesToProcess && i+f.K <= len(f.Value); i++ {
		if strings.IndexByte(f.Value[i:i+f.K], '\n') >= 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\t%d\t%s\n", f.File, f.Offset+int64(i), f.Value[i:i+f.K]); err != nil {
			return err
		}
	}
	return nil
}

// StartFragmentWriter spins up a writer goroutine for long-sequence
// fragments.
func StartFragmentWriter(out io.Writer, format string, header bool, bufSize int) (chan<- api.FragmentV1, <-chan error) {
	if format == FormatJSONL {
		return StartFragmentJSONLWriter(out, bufSize)
	}
	return start(out, bufSize, headerFor(fragmentHeaders, format, header), func(w io.Writer, f api.FragmentV1) error {
		return WriteFragment(format, w, f)
	})
}
