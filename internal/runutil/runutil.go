// Package runutil resolves run-time settings that depend on the plan.
package runutil

import (
	"fmt"
	"runtime"
)

// EffectiveThreads resolves threads=0 to the CPU count and never starts
// more workers than there are splits.
func EffectiveThreads(threads, splits int) int {
	n := threads
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if splits > 0 && n > splits {
		n = splits
	}
	return max(n, 1)
}

// ScanWarnings returns warnings for settings that are legal but unlikely to
// be intended. long selects the long-sequence scanner.
func ScanWarnings(long bool, splitSize int64, k, lookAhead int) []string {
	var warns []string
	if long && splitSize < int64(k) {
		warns = append(warns, fmt.Sprintf("--split-size %d is below --k %d; most splits will emit no k-mer", splitSize, k))
	}
	if !long && splitSize > 0 && int64(lookAhead) > splitSize {
		warns = append(warns, fmt.Sprintf("--look-ahead %d exceeds --split-size %d; the border buffer is never filled", lookAhead, splitSize))
	}
	return warns
}
