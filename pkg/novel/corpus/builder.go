// Package corpus turns a line source into the word list and chapter table
// that every analysis starts from. Each call is an independent full pass.
package corpus

import (
	"context"

	"github.com/cognicore/novelstat/pkg/novel/ingest"
	"github.com/cognicore/novelstat/pkg/novel/source"
)

// Line is one in-scope line together with the chapter it belongs to.
type Line struct {
	Text    string
	Chapter string
}

// Corpus is the result of a full pass.
type Corpus struct {
	Words    []string
	Chapters *ChapterTable
}

// Builder runs passes over line sources.
type Builder struct {
	tokenizer *ingest.Tokenizer
	markers   ingest.Markers
}

// NewBuilder creates a builder. A nil tokenizer means ingest.NewTokenizer().
func NewBuilder(tokenizer *ingest.Tokenizer, markers ingest.Markers) *Builder {
	if tokenizer == nil {
		tokenizer = ingest.NewTokenizer()
	}
	return &Builder{tokenizer: tokenizer, markers: markers}
}

// Tokenizer returns the tokenizer used for every pass.
func (b *Builder) Tokenizer() *ingest.Tokenizer { return b.tokenizer }

// Markers returns the scope markers used for every pass.
func (b *Builder) Markers() ingest.Markers { return b.markers }

// Scan calls fn for every in-scope line of src. Chapter markers are noted
// before fn sees the line, so a marker line belongs to its new chapter.
// The pass ends as soon as the body has been closed.
func (b *Builder) Scan(ctx context.Context, src source.Source, fn func(Line) error) error {
	return b.scan(ctx, src, nil, fn)
}

// scan is Scan with a hook called whenever a chapter key comes into being:
// on entering the body (the preface label) and on every chapter marker.
func (b *Builder) scan(ctx context.Context, src source.Source, onChapter func(label string, preface bool), fn func(Line) error) error {
	tracker := ingest.NewScopeTracker(b.markers)

	return src.Lines(ctx, func(raw string) error {
		wasInside := tracker.State() == ingest.Inside
		content := tracker.Observe(raw)
		if !wasInside && tracker.State() == ingest.Inside && onChapter != nil {
			onChapter(tracker.Label(), true)
		}
		if !content {
			if tracker.Done() {
				return source.ErrStop
			}
			return nil
		}

		if tracker.NoteChapterMarker(raw) && onChapter != nil {
			onChapter(tracker.Label(), false)
		}
		return fn(Line{Text: raw, Chapter: tracker.Label()})
	})
}

// WordList returns every in-scope token of src in document order.
func (b *Builder) WordList(ctx context.Context, src source.Source) ([]string, error) {
	var words []string
	err := b.Scan(ctx, src, func(l Line) error {
		words = append(words, b.tokenizer.Tokenize(l.Text)...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return words, nil
}

// ChapterTable returns per-chapter word counts for src.
func (b *Builder) ChapterTable(ctx context.Context, src source.Source) (*ChapterTable, error) {
	c, err := b.Build(ctx, src)
	if err != nil {
		return nil, err
	}
	return c.Chapters, nil
}

// Build computes the word list and the chapter table in a single pass.
func (b *Builder) Build(ctx context.Context, src source.Source) (*Corpus, error) {
	c := &Corpus{Chapters: NewChapterTable()}

	onChapter := func(label string, preface bool) {
		if preface && c.Chapters.Preface == "" {
			c.Chapters.Preface = label
		}
		c.Chapters.Ensure(label)
	}
	err := b.scan(ctx, src, onChapter, func(l Line) error {
		for _, tok := range b.tokenizer.Tokenize(l.Text) {
			c.Words = append(c.Words, tok)
			c.Chapters.Add(l.Chapter, tok)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
