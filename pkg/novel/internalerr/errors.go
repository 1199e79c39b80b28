package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidConfig        = errors.New("invalid configuration")
	ErrStoreUnavailable     = errors.New("store unavailable")
	ErrFetch                = errors.New("fetch failed")
	ErrNoCandidates         = errors.New("no candidate words")
	ErrChapterCountMismatch = errors.New("chapter count mismatch")
)
