// Package source provides line sources: forward-only producers of the decoded
// lines of a text. Every call to Lines is one complete pass.
package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/novelstat/pkg/novel/internalerr"
)

// ErrStop may be returned by a line callback to end a pass early. Lines
// then returns nil.
var ErrStop = errors.New("stop line iteration")

// maxLineSize bounds a single line read from a stream.
const maxLineSize = 1 << 20

var bom = string([]byte{239, 187, 191}) // UTF-8 Byte Order Mark

// Source produces the lines of a text, one full pass per call.
type Source interface {
	Lines(ctx context.Context, fn func(line string) error) error
}

// FetchError reports that a source could not be read or decoded. It matches
// internalerr.ErrFetch with errors.Is.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == internalerr.ErrFetch }

// Memory is an in-memory source.
type Memory []string

// Lines implements Source.
func (m Memory) Lines(ctx context.Context, fn func(line string) error) error {
	for _, line := range m {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(line); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
	return nil
}

// Collect reads a full pass of src into memory.
func Collect(ctx context.Context, src Source) ([]string, error) {
	var lines []string
	err := src.Lines(ctx, func(line string) error {
		lines = append(lines, line)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// callbackError marks an error returned by the caller's callback so that it
// is not mistaken for a read failure.
type callbackError struct{ err error }

func (e callbackError) Error() string { return e.err.Error() }

// readLines streams r line by line into fn. Read and decode failures are
// reported as FetchError for name; errors from fn are returned unchanged.
func readLines(ctx context.Context, name string, r io.Reader, fn func(line string) error) error {
	err := scanLines(ctx, r, fn)
	if err == nil || errors.Is(err, ErrStop) {
		return nil
	}
	var cbErr callbackError
	if errors.As(err, &cbErr) {
		return cbErr.err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &FetchError{URL: name, Err: err}
}

func scanLines(ctx context.Context, r io.Reader, fn func(line string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Text()
		lineNo++
		if lineNo == 1 {
			line = strings.TrimPrefix(line, bom)
		}
		if !utf8.ValidString(line) {
			return fmt.Errorf("line %d is not valid UTF-8", lineNo)
		}
		if err := fn(line); err != nil {
			if errors.Is(err, ErrStop) {
				return err
			}
			return callbackError{err: err}
		}
	}
	return scanner.Err()
}
