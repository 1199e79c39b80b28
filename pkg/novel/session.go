// Package novel ties the analysis packages together into a Session: one
// analysis run over one text, with the word list, stop set and adjacency
// index computed at most once.
package novel

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/novelstat/pkg/novel/chapters"
	"github.com/cognicore/novelstat/pkg/novel/corpus"
	"github.com/cognicore/novelstat/pkg/novel/freq"
	"github.com/cognicore/novelstat/pkg/novel/generate"
	"github.com/cognicore/novelstat/pkg/novel/ingest"
	"github.com/cognicore/novelstat/pkg/novel/internalerr"
	"github.com/cognicore/novelstat/pkg/novel/quote"
	"github.com/cognicore/novelstat/pkg/novel/source"
	"github.com/cognicore/novelstat/pkg/novel/stoplist"
)

// Options configures a Session
type Options struct {
	Source     source.Source
	Stoplist   source.Source     // common-words list, optional
	ExtraStops *stoplist.StopSet // merged into the stop set, optional
	Tokenizer  *ingest.Tokenizer
	Markers    ingest.Markers // DefaultMarkers when zero
	Rand       generate.Rand  // math/rand/v2 global source when nil
}

// Session is a single analysis run. It is not safe for concurrent use.
type Session struct {
	id       string
	src      source.Source
	stopSrc  source.Source
	extra    *stoplist.StopSet
	builder  *corpus.Builder
	rand     generate.Rand
	corpus   *corpus.Corpus
	counts   map[string]int
	stops    *stoplist.StopSet
	index    *generate.Index
	stopsSet bool
}

// New creates a Session with the given dependencies
func New(opts Options) *Session {
	markers := opts.Markers
	if markers == (ingest.Markers{}) {
		markers = ingest.DefaultMarkers()
	}
	return &Session{
		id:      ulid.Make().String(),
		src:     opts.Source,
		stopSrc: opts.Stoplist,
		extra:   opts.ExtraStops,
		builder: corpus.NewBuilder(opts.Tokenizer, markers),
		rand:    opts.Rand,
	}
}

// ID identifies the session in logs and reports.
func (s *Session) ID() string { return s.id }

// Builder returns the corpus builder used by the session.
func (s *Session) Builder() *corpus.Builder { return s.builder }

// Corpus returns the word list and chapter table, reading the source on
// first use only.
func (s *Session) Corpus(ctx context.Context) (*corpus.Corpus, error) {
	if s.corpus != nil {
		return s.corpus, nil
	}
	if err := s.checkSource(); err != nil {
		return nil, err
	}
	c, err := s.builder.Build(ctx, s.src)
	if err != nil {
		return nil, err
	}
	s.corpus = c
	s.counts = freq.Count(c.Words)
	return c, nil
}

func (s *Session) checkSource() error {
	if s.src == nil {
		return fmt.Errorf("session has no source: %w", internalerr.ErrInvalidInput)
	}
	return nil
}

// normalizeWord runs a user-supplied word through the corpus tokenizer so
// that it matches the stored keys ("Dorian's" becomes "dorians").
func (s *Session) normalizeWord(word string) (string, error) {
	tokens := s.builder.Tokenizer().Tokenize(word)
	if len(tokens) != 1 {
		return "", fmt.Errorf("%q is not a single word: %w", word, internalerr.ErrInvalidInput)
	}
	return tokens[0], nil
}

// TotalWords returns the number of in-scope words.
func (s *Session) TotalWords(ctx context.Context) (int, error) {
	c, err := s.Corpus(ctx)
	if err != nil {
		return 0, err
	}
	return freq.Total(c.Words), nil
}

// UniqueWords returns the number of distinct in-scope words.
func (s *Session) UniqueWords(ctx context.Context) (int, error) {
	if _, err := s.Corpus(ctx); err != nil {
		return 0, err
	}
	return len(s.counts), nil
}

// TopWords returns the k most frequent words.
func (s *Session) TopWords(ctx context.Context, k int) ([]freq.Entry, error) {
	if _, err := s.Corpus(ctx); err != nil {
		return nil, err
	}
	return freq.TopKCounts(s.counts, k, nil), nil
}

// BottomWords returns the k least frequent words.
func (s *Session) BottomWords(ctx context.Context, k int) ([]freq.Entry, error) {
	if _, err := s.Corpus(ctx); err != nil {
		return nil, err
	}
	return freq.BottomKCounts(s.counts, k, nil), nil
}

// InterestingWords returns the k most frequent words not in the stop set.
func (s *Session) InterestingWords(ctx context.Context, k int) ([]freq.Entry, error) {
	if _, err := s.Corpus(ctx); err != nil {
		return nil, err
	}
	stops, err := s.StopSet(ctx)
	if err != nil {
		return nil, err
	}
	return freq.TopKCounts(s.counts, k, stops), nil
}

// StopSet loads the common-words list once per session.
func (s *Session) StopSet(ctx context.Context) (*stoplist.StopSet, error) {
	if s.stopsSet {
		return s.stops, nil
	}
	stops := stoplist.New(nil)
	if s.stopSrc != nil {
		loaded, err := stoplist.Load(ctx, s.stopSrc, s.builder.Tokenizer())
		if err != nil {
			return nil, err
		}
		stops = loaded
	}
	if s.extra != nil {
		stops = stops.Union(s.extra)
	}
	s.stops, s.stopsSet = stops, true
	return stops, nil
}

// FrequencyByChapter returns the count of word in each chapter holding it.
func (s *Session) FrequencyByChapter(ctx context.Context, word string) ([]int, error) {
	word, err := s.normalizeWord(word)
	if err != nil {
		return nil, err
	}
	c, err := s.Corpus(ctx)
	if err != nil {
		return nil, err
	}
	return chapters.FrequencyByChapter(c.Chapters, word)
}

// CountsByChapter is FrequencyByChapter with chapter labels.
func (s *Session) CountsByChapter(ctx context.Context, word string) ([]chapters.Count, error) {
	word, err := s.normalizeWord(word)
	if err != nil {
		return nil, err
	}
	c, err := s.Corpus(ctx)
	if err != nil {
		return nil, err
	}
	return chapters.CountsByChapter(c.Chapters, word)
}

// LocateQuote finds the chapter holding text. It runs its own pass.
func (s *Session) LocateQuote(ctx context.Context, text string) (quote.Match, bool, error) {
	if err := s.checkSource(); err != nil {
		return quote.Match{}, false, err
	}
	return quote.Locate(ctx, s.builder, s.src, text)
}

// Index returns the adjacency index, built on first use.
func (s *Session) Index(ctx context.Context) (*generate.Index, error) {
	if s.index != nil {
		return s.index, nil
	}
	if err := s.checkSource(); err != nil {
		return nil, err
	}
	ix, err := generate.BuildIndex(ctx, s.builder, s.src)
	if err != nil {
		return nil, err
	}
	s.index = ix
	return ix, nil
}

// Generate produces a random sentence of length words after seed.
func (s *Session) Generate(ctx context.Context, seed string, length int) (string, error) {
	seed, err := s.normalizeWord(seed)
	if err != nil {
		return "", err
	}
	ix, err := s.Index(ctx)
	if err != nil {
		return "", err
	}
	return generate.NewGenerator(ix, s.rand).Sentence(seed, length)
}
