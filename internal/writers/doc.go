// Package writers turns scanned records and fragments into serialized
// outputs.
//
// Writers own all presentation knowledge (FASTA/FASTQ/TSV/JSONL). JSONL goes
// through pkg/api (v1) for a stable wire format. Each writer runs on its own
// goroutine fed by a channel, so output never blocks the scanners directly.
package writers
