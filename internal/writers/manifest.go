package writers

import (
	"encoding/json"
	"io"

	"fastsplit/pkg/api"
)

// WriteManifest writes a split plan as indented JSON.
func WriteManifest(w io.Writer, m api.ManifestV1) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(m)
}

// WriteManifestFile writes the manifest to path atomically.
func WriteManifestFile(path string, m api.ManifestV1) error {
	return WriteFileAtomic(path, func(w io.Writer) error { return WriteManifest(w, m) })
}
