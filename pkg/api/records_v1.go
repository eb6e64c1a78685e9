// Package api holds the stable JSON wire types of fastsplit.
package api

// RecordV1 is the stable JSON/JSONL schema for one FASTA or FASTQ record.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type RecordV1 struct {
	File          string `json:"file"`
	SplitStart    int64  `json:"split_start"`
	Offset        int64  `json:"offset"` // file offset of the first key byte
	Key           string `json:"key"`
	Value         string `json:"value"`
	Key2          string `json:"key2,omitempty"`
	Quality       string `json:"quality,omitempty"`
	CrossedBorder bool   `json:"crossed_border,omitempty"`
}

// FragmentV1 is the stable schema for one split's fragment of a long
// sequence.
type FragmentV1 struct {
	File           string `json:"file"`
	SplitStart     int64  `json:"split_start"`
	Offset         int64  `json:"offset"` // file offset of the first payload byte
	Header         string `json:"header"`
	HasHeader      bool   `json:"has_header,omitempty"`
	K              int    `json:"k"`
	BytesToProcess int    `json:"bytes_to_process"`
	Value          string `json:"value"`
}

// SplitV1 is one entry of a split plan.
type SplitV1 struct {
	File   string `json:"file"`
	Index  int    `json:"index"`
	Start  int64  `json:"start"`
	Length int64  `json:"length"`
}

// ManifestV1 is the document written by "fastsplit plan --manifest".
type ManifestV1 struct {
	SplitSize int64     `json:"split_size"`
	Files     []FileV1  `json:"files"`
	Splits    []SplitV1 `json:"splits"`
}

// FileV1 describes one planned input file.
type FileV1 struct {
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	Splits int    `json:"splits"`
}
