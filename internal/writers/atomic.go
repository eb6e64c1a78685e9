package writers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/natefinch/atomic"
)

// WriteFileAtomic streams fill's output into path. The file is replaced
// only once fill has succeeded; on any error path is left untouched.
func WriteFileAtomic(path string, fill func(io.Writer) error) error {
	pr, pw := io.Pipe()
	fillErr := make(chan error, 1)
	go func() {
		bw := bufio.NewWriter(pw)
		err := fill(bw)
		if err == nil {
			err = bw.Flush()
		}
		_ = pw.CloseWithError(err)
		fillErr <- err
	}()

	werr := atomic.WriteFile(path, pr)
	if werr != nil {
		// Unblock the filler.
		_ = pr.CloseWithError(werr)
	}
	ferr := <-fillErr
	if ferr != nil && (werr == nil || !errors.Is(ferr, werr)) {
		return ferr
	}
	if werr != nil {
		return fmt.Errorf("write %s: %w", path, werr)
	}
	// atomic.WriteFile creates files readable by the owner only.
	if err := os.Chmod(path, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	return nil
}
