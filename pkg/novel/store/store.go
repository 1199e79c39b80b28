package store

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/zeebo/blake3"
)

// Store caches downloaded texts so that every analysis pass after the first
// reads local lines instead of fetching the remote resource again.
type Store interface {
	Close() error

	PutText(ctx context.Context, t Text) error
	GetText(ctx context.Context, url string) (Text, bool, error)
	DeleteText(ctx context.Context, url string) error
	ListTexts(ctx context.Context) ([]TextInfo, error)
}

// Text is a cached copy of a remote line source.
type Text struct {
	ID        string // ULID
	URL       string
	FetchedAt time.Time
	Digest    string // hex blake3 of the joined lines
	Lines     []string
}

// TextInfo describes a cached text without its lines.
type TextInfo struct {
	ID        string
	URL       string
	FetchedAt time.Time
	Digest    string
	LineCount int
}

// NewText builds a Text with a fresh ID and digest.
func NewText(url string, lines []string, fetchedAt time.Time) Text {
	return Text{
		ID:        ulid.Make().String(),
		URL:       url,
		FetchedAt: fetchedAt.UTC(),
		Digest:    Digest(lines),
		Lines:     lines,
	}
}

// Info returns the metadata of t.
func (t Text) Info() TextInfo {
	return TextInfo{
		ID:        t.ID,
		URL:       t.URL,
		FetchedAt: t.FetchedAt,
		Digest:    t.Digest,
		LineCount: len(t.Lines),
	}
}

// Verify checks that the lines still match the recorded digest.
func (t Text) Verify() error {
	if got := Digest(t.Lines); got != t.Digest {
		return fmt.Errorf("text %s: digest mismatch (stored %s, computed %s)", t.URL, t.Digest, got)
	}
	return nil
}

// Digest returns the hex blake3 hash of the lines joined by newlines.
func Digest(lines []string) string {
	sum := blake3.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:])
}
