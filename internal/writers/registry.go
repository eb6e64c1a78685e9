package writers

import (
	"fmt"
	"io"
	"sort"

	"fastsplit/pkg/api"
)

// Writer registries (format → handler). Handlers write one value; header
// writers, when registered, run once before the first value.
var (
	RecordWriters   = map[string]func(w io.Writer, r api.RecordV1) error{}
	FragmentWriters = map[string]func(w io.Writer, f api.FragmentV1) error{}

	recordHeaders   = map[string]string{}
	fragmentHeaders = map[string]string{}
)

// Register helpers (idempotent last-wins).
func RegisterRecord(format string, fn func(io.Writer, api.RecordV1) error) {
	RecordWriters[format] = fn
}

func RegisterFragment(format string, fn func(io.Writer, api.FragmentV1) error) {
	FragmentWriters[format] = fn
}

// WriteRecord dispatches to the writer registered for format.
func WriteRecord(format string, w io.Writer, r api.RecordV1) error {
	fn, ok := RecordWriters[format]
	if !ok {
		return fmt.Errorf("unknown record format %q (no writer registered)", format)
	}
	return fn(w, r)
}

func WriteFragment(format string, w io.Writer, f api.FragmentV1) error {
	fn, ok := FragmentWriters[format]
	if !ok {
		return fmt.Errorf("unknown fragment format %q (no writer registered)", format)
	}
	return fn(w, f)
}

// RecordFormats lists the registered record formats plus jsonl, sorted.
func RecordFormats() []string { return formats(RecordWriters) }

func FragmentFormats() []string { return formats(FragmentWriters) }

func formats[F any](m map[string]F) []string {
	out := []string{FormatJSONL}
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
