package source

import (
	"context"
	"os"
)

// File reads lines from a local file. A leading byte order mark is dropped.
type File struct {
	Path string
}

// Lines implements Source.
func (f File) Lines(ctx context.Context, fn func(line string) error) error {
	file, err := os.Open(f.Path)
	if err != nil {
		return &FetchError{URL: f.Path, Err: err}
	}
	defer file.Close()

	return readLines(ctx, f.Path, file, fn)
}
