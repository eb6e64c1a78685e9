package cmdutil

import (
	"context"
	"errors"
	"fmt"

	"fastsplit/internal/splitio"
	"fastsplit/internal/writers"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitMismatch = 1 // verify found a difference
	ExitUsage    = 2 // bad flags, config or input paths
	ExitRuntime  = 3 // scan or output failure
	ExitCanceled = 130
)

// ExitError carries an explicit exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// Usagef returns a usage error (exit 2).
func Usagef(format string, a ...any) error {
	return &ExitError{Code: ExitUsage, Err: fmt.Errorf(format, a...)}
}

// WithCode wraps err with an explicit exit code. A nil err stays nil.
func WithCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// ExitCode maps an error returned by a command to the process exit code.
// Broken pipes are not failures: the reader simply stopped early.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if writers.IsBrokenPipe(err) {
		return ExitOK
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	switch {
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	case errors.Is(err, splitio.ErrNotFound):
		return ExitUsage
	}
	return ExitRuntime
}

// Reportable reports whether err should be printed: cancellations and
// broken pipes are silent.
func Reportable(err error) bool {
	return err != nil && !writers.IsBrokenPipe(err) && !errors.Is(err, context.Canceled)
}
