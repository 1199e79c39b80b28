package generate

import (
	"context"
	"strings"

	"github.com/cognicore/novelstat/pkg/novel/corpus"
	"github.com/cognicore/novelstat/pkg/novel/source"
)

// Index maps a word to the words that immediately follow it on the same
// in-scope line, in document order and with repeats, so that a uniform
// pick over the list is weighted by bigram frequency.
type Index struct {
	next  map[string][]string
	pairs int
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{next: make(map[string][]string)}
}

// AddLine records the adjacent pairs of one line's tokens. Pairs never
// cross line boundaries.
func (ix *Index) AddLine(tokens []string) {
	for i := 0; i < len(tokens)-1; i++ {
		if tokens[i] == "" || tokens[i+1] == "" {
			continue
		}
		ix.next[tokens[i]] = append(ix.next[tokens[i]], tokens[i+1])
		ix.pairs++
	}
}

// Candidates returns the successors of word, matched case-insensitively.
func (ix *Index) Candidates(word string) []string {
	src := ix.next[strings.ToLower(word)]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Words returns the number of words with at least one successor.
func (ix *Index) Words() int { return len(ix.next) }

// Pairs returns the number of recorded adjacent pairs.
func (ix *Index) Pairs() int { return ix.pairs }

// BuildIndex builds the adjacency index of the in-scope lines of src.
func BuildIndex(ctx context.Context, b *corpus.Builder, src source.Source) (*Index, error) {
	ix := NewIndex()
	err := b.Scan(ctx, src, func(l corpus.Line) error {
		ix.AddLine(b.Tokenizer().Tokenize(l.Text))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ix, nil
}

// NextWordCandidates returns every word that immediately follows word on an
// in-scope line of src. It runs a full pass per call; build an Index to
// answer many lookups.
func NextWordCandidates(ctx context.Context, b *corpus.Builder, src source.Source, word string) ([]string, error) {
	word = strings.ToLower(word)
	var out []string
	err := b.Scan(ctx, src, func(l corpus.Line) error {
		tokens := b.Tokenizer().Tokenize(l.Text)
		for i := 0; i < len(tokens)-1; i++ {
			if tokens[i] == word {
				out = append(out, tokens[i+1])
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
