package stoplist

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cognicore/novelstat/pkg/novel/ingest"
	"github.com/cognicore/novelstat/pkg/novel/source"
)

// StopSet is an immutable set of common words. A nil *StopSet is empty.
type StopSet struct {
	stops map[string]struct{}
}

// New creates a stop set from the given words, lower-cased.
func New(words []string) *StopSet {
	stops := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		stops[w] = struct{}{}
	}
	return &StopSet{stops: stops}
}

// Load reads every line of src, tokenizes it and collects the tokens.
// The stoplist resource has no body markers, so all lines count.
func Load(ctx context.Context, src source.Source, tokenizer *ingest.Tokenizer) (*StopSet, error) {
	if tokenizer == nil {
		tokenizer = ingest.NewTokenizer()
	}
	var words []string
	err := src.Lines(ctx, func(line string) error {
		words = append(words, tokenizer.Tokenize(line)...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load stoplist: %w", err)
	}
	return New(words), nil
}

// IsStop checks if a token is a stopword
func (s *StopSet) IsStop(token string) bool {
	if s == nil {
		return false
	}
	_, ok := s.stops[token]
	return ok
}

// Len returns the number of stopwords.
func (s *StopSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.stops)
}

// All returns all stopwords, sorted.
func (s *StopSet) All() []string {
	if s == nil {
		return nil
	}
	result := make([]string, 0, len(s.stops))
	for w := range s.stops {
		result = append(result, w)
	}
	sort.Strings(result)
	return result
}

// Union returns a new set holding the words of s and other.
func (s *StopSet) Union(other *StopSet) *StopSet {
	return New(append(s.All(), other.All()...))
}
