// Package pipeline runs one scanner per split on a pool of workers and
// hands the results to a visit callback in split order.
//
// Workers convert each record into a caller-owned value before the scanner
// advances, so nothing downstream ever sees a scanner buffer.
package pipeline
