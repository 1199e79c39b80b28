package ingest

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultPunctuation is the literal punctuation set removed from every line.
const DefaultPunctuation = `."',-_!?`

// leadingDigits matches a digit run that starts at a word boundary.
var leadingDigits = regexp.MustCompile(`\b[0-9]+`)

// Tokenizer handles line tokenization and normalization
type Tokenizer struct {
	punct map[rune]struct{}
}

// NewTokenizer creates a tokenizer stripping DefaultPunctuation.
func NewTokenizer() *Tokenizer {
	return NewTokenizerWithPunctuation(DefaultPunctuation)
}

// NewTokenizerWithPunctuation creates a tokenizer that strips the given
// punctuation characters instead of the default set.
func NewTokenizerWithPunctuation(punct string) *Tokenizer {
	set := make(map[rune]struct{}, len(punct))
	for _, r := range punct {
		set[r] = struct{}{}
	}
	return &Tokenizer{punct: set}
}

// Tokenize splits one raw line into lower-cased word tokens in document order.
// Digit runs, control characters and punctuation are removed before the
// line is split on whitespace, so "The CAT, 1999!" yields ["the", "cat"].
// Tokens left with nothing but digits are dropped.
func (t *Tokenizer) Tokenize(line string) []string {
	line = leadingDigits.ReplaceAllString(line, "")
	line = StripControl(line)
	line = t.stripPunctuation(line)

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		// punctuation such as "_5" can shield a digit run from leadingDigits
		if allDigits(f) {
			continue
		}
		tokens = append(tokens, strings.ToLower(f))
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (t *Tokenizer) stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if _, ok := t.punct[r]; ok {
			return -1
		}
		return r
	}, s)
}

// StripControl removes every rune in the Unicode "C" (other) category:
// control, format, surrogate and private-use characters. Whitespace
// controls such as tab and CR become a plain space so that adjacent words
// stay separated.
func StripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if !unicode.In(r, unicode.C) {
			return r
		}
		if unicode.IsSpace(r) {
			return ' '
		}
		return -1
	}, s)
}
