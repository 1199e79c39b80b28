// Package generate produces random sentences by walking word adjacency.
package generate

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/cognicore/novelstat/pkg/novel/corpus"
	"github.com/cognicore/novelstat/pkg/novel/internalerr"
	"github.com/cognicore/novelstat/pkg/novel/source"
)

// DefaultLength is the number of words appended after the seed.
const DefaultLength = 20

// Rand picks a uniform index in [0, n). *rand.Rand from math/rand/v2
// satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// NoCandidatesError reports a word with no recorded successor. Generated
// holds the words produced before the walk got stuck.
type NoCandidatesError struct {
	Word      string
	Generated []string
}

func (e *NoCandidatesError) Error() string {
	return fmt.Sprintf("no word follows %q after %d words", e.Word, len(e.Generated))
}

func (e *NoCandidatesError) Is(target error) bool { return target == internalerr.ErrNoCandidates }

// Generator walks an Index.
type Generator struct {
	index *Index
	rand  Rand
}

// NewGenerator creates a generator. A nil r uses the math/rand/v2 global
// source.
func NewGenerator(index *Index, r Rand) *Generator {
	if r == nil {
		r = globalRand{}
	}
	return &Generator{index: index, rand: r}
}

// NewSeeded returns a deterministic Rand for seed.
func NewSeeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Sentence starts at start and appends length words, each a uniform pick
// among the successors of the previous word, then a terminal period.
// It fails with a *NoCandidatesError as soon as a word has no successor.
func (g *Generator) Sentence(start string, length int) (string, error) {
	words, err := g.Walk(start, length)
	if err != nil {
		return "", err
	}
	return strings.Join(words, " ") + ".", nil
}

// Walk is Sentence without the formatting: it returns the seed followed by
// the appended words.
func (g *Generator) Walk(start string, length int) ([]string, error) {
	start = strings.ToLower(strings.TrimSpace(start))
	if start == "" || strings.ContainsAny(start, " \t") {
		return nil, fmt.Errorf("seed must be a single word: %w", internalerr.ErrInvalidInput)
	}
	if length < 0 {
		return nil, fmt.Errorf("negative sentence length %d: %w", length, internalerr.ErrInvalidInput)
	}

	words := make([]string, 0, length+1)
	words = append(words, start)
	for i := 0; i < length; i++ {
		last := words[len(words)-1]
		candidates := g.index.next[last]
		if len(candidates) == 0 {
			return nil, &NoCandidatesError{Word: last, Generated: words}
		}
		words = append(words, candidates[g.rand.IntN(len(candidates))])
	}
	return words, nil
}

// GenerateSentence builds an index from src and generates one sentence.
func GenerateSentence(ctx context.Context, b *corpus.Builder, src source.Source, start string, length int, r Rand) (string, error) {
	ix, err := BuildIndex(ctx, b, src)
	if err != nil {
		return "", err
	}
	return NewGenerator(ix, r).Sentence(start, length)
}
