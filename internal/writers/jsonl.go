package writers

import (
	"encoding/json"
	"io"

	"fastsplit/internal/jsonlutil"
	"fastsplit/pkg/api"
)

// StartRecordJSONLWriter streams each record as one JSON line (v1).
func StartRecordJSONLWriter(out io.Writer, bufSize int) (chan<- api.RecordV1, <-chan error) {
	return jsonlutil.Start[api.RecordV1](out, bufSize,
		func(enc *json.Encoder, r api.RecordV1) error { return enc.Encode(r) },
		IsBrokenPipe,
	)
}

// StartFragmentJSONLWriter streams each fragment as one JSON line (v1).
func StartFragmentJSONLWriter(out io.Writer, bufSize int) (chan<- api.FragmentV1, <-chan error) {
	return jsonlutil.Start[api.FragmentV1](out, bufSize,
		func(enc *json.Encoder, f api.FragmentV1) error { return enc.Encode(f) },
		IsBrokenPipe,
	)
}
