package novel

import (
	"context"
	"errors"
	"fmt"

	"github.com/cognicore/novelstat/pkg/novel/chapters"
	"github.com/cognicore/novelstat/pkg/novel/freq"
	"github.com/cognicore/novelstat/pkg/novel/internalerr"
	"github.com/cognicore/novelstat/pkg/novel/quote"
)

// SummaryOptions selects the parts of a Summary.
type SummaryOptions struct {
	Top            int
	ChapterWords   []string
	Quote          string // skipped when empty
	Seed           string // skipped when empty
	SentenceLength int
}

// WordChapters is the per-chapter frequency of one word.
type WordChapters struct {
	Word     string           `json:"word"`
	Counts   []int            `json:"counts"`
	Chapters []chapters.Count `json:"chapters"`
}

// Summary is everything the report prints, in print order.
type Summary struct {
	SessionID     string         `json:"session_id"`
	TotalWords    int            `json:"total_words"`
	UniqueWords   int            `json:"unique_words"`
	Top           []freq.Entry   `json:"top"`
	Interesting   []freq.Entry   `json:"interesting"`
	Bottom        []freq.Entry   `json:"bottom"`
	ChapterWords  []WordChapters `json:"chapter_words"`
	Quote         string         `json:"quote,omitempty"`
	QuoteMatch    *quote.Match   `json:"quote_match,omitempty"`
	Seed          string         `json:"seed,omitempty"`
	Sentence      string         `json:"sentence,omitempty"`
	SentenceError string         `json:"sentence_error,omitempty"`
}

// Summary runs every analysis of the session. Fetch failures and chapter
// count mismatches abort it; a seed with no successors is recorded in
// SentenceError instead.
func (s *Session) Summary(ctx context.Context, opts SummaryOptions) (*Summary, error) {
	sum := &Summary{SessionID: s.id, Quote: opts.Quote, Seed: opts.Seed}
	var err error

	if sum.TotalWords, err = s.TotalWords(ctx); err != nil {
		return nil, fmt.Errorf("total words: %w", err)
	}
	if sum.UniqueWords, err = s.UniqueWords(ctx); err != nil {
		return nil, fmt.Errorf("unique words: %w", err)
	}
	if sum.Top, err = s.TopWords(ctx, opts.Top); err != nil {
		return nil, fmt.Errorf("top words: %w", err)
	}
	if sum.Interesting, err = s.InterestingWords(ctx, opts.Top); err != nil {
		return nil, fmt.Errorf("interesting words: %w", err)
	}
	if sum.Bottom, err = s.BottomWords(ctx, opts.Top); err != nil {
		return nil, fmt.Errorf("bottom words: %w", err)
	}

	for _, w := range opts.ChapterWords {
		counts, err := s.CountsByChapter(ctx, w)
		if err != nil {
			return nil, fmt.Errorf("chapters for %q: %w", w, err)
		}
		wc := WordChapters{Word: w, Counts: make([]int, 0, len(counts)), Chapters: counts}
		for _, c := range counts {
			wc.Counts = append(wc.Counts, c.Count)
		}
		sum.ChapterWords = append(sum.ChapterWords, wc)
	}

	if opts.Quote != "" {
		match, found, err := s.LocateQuote(ctx, opts.Quote)
		if err != nil {
			return nil, fmt.Errorf("locate quote: %w", err)
		}
		if found {
			sum.QuoteMatch = &match
		}
	}

	if opts.Seed != "" {
		sentence, err := s.Generate(ctx, opts.Seed, opts.SentenceLength)
		switch {
		case errors.Is(err, internalerr.ErrNoCandidates):
			sum.SentenceError = err.Error()
		case err != nil:
			return nil, fmt.Errorf("generate: %w", err)
		default:
			sum.Sentence = sentence
		}
	}

	return sum, nil
}
