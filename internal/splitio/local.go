package splitio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/exp/mmap"
)

// LocalProvider serves files from the local filesystem through read-only
// memory maps. Paths are used as given.
type LocalProvider struct{}

// Open maps name into memory.
func (LocalProvider) Open(name string) (Stream, error) {
	r, err := mmap.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return newSectionStream(r, int64(r.Len()), r, false), nil
}

// Size returns the physical size of name.
func (LocalProvider) Size(name string) (int64, error) {
	fi, err := os.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return 0, err
	}
	if fi.IsDir() {
		return 0, fmt.Errorf("%s is a directory", name)
	}
	return fi.Size(), nil
}
