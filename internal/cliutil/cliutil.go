// Package cliutil resolves input paths given on the command line.
package cliutil

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrStdin is returned for "-": scanners need random access to their input.
var ErrStdin = errors.New("standard input is not supported; splits need a seekable file")

func hasGlobMeta(s string) bool { return strings.ContainsAny(s, "*?[") }

// ExpandPositionals expands any globs among path-like positionals. Paths
// are kept in argument order; a path named twice is scanned once.
func ExpandPositionals(posArgs []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool, len(posArgs))
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, a := range posArgs {
		if a == "-" {
			return nil, ErrStdin
		}
		if !hasGlobMeta(a) {
			add(a)
			continue
		}
		m, err := filepath.Glob(a)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %w", a, err)
		}
		if len(m) == 0 {
			return nil, fmt.Errorf("no input matched %q", a)
		}
		for _, p := range m {
			add(p)
		}
	}
	return out, nil
}
