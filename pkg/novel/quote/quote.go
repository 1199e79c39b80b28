// Package quote finds the chapter a quotation comes from.
package quote

import (
	"context"
	"fmt"
	"strings"

	"github.com/cognicore/novelstat/pkg/novel/chapters"
	"github.com/cognicore/novelstat/pkg/novel/corpus"
	"github.com/cognicore/novelstat/pkg/novel/ingest"
	"github.com/cognicore/novelstat/pkg/novel/internalerr"
	"github.com/cognicore/novelstat/pkg/novel/source"
)

// Match is the location of a quote.
type Match struct {
	Chapter int    `json:"chapter"` // 0 when the label has no number, e.g. the preface
	Label   string `json:"label"`
}

// Locate scans the in-scope lines of src for quote. A line holding the
// first word of the quote opens a window made of that line and the next
// one; the quote is found if it is a substring of the window. Quotes that
// span more than two lines are not found.
//
// The boolean result is false when the quote does not occur.
func Locate(ctx context.Context, b *corpus.Builder, src source.Source, quote string) (Match, bool, error) {
	quote = strings.TrimSpace(quote)
	fields := strings.Fields(quote)
	if len(fields) == 0 {
		return Match{}, false, fmt.Errorf("empty quote: %w", internalerr.ErrInvalidInput)
	}
	first := fields[0]

	var (
		match   Match
		found   bool
		pending string
	)
	err := b.Scan(ctx, src, func(l corpus.Line) error {
		text := strings.TrimSpace(ingest.StripControl(l.Text))

		if pending != "" {
			window := pending + " " + text
			pending = ""
			if strings.Contains(window, quote) {
				match, found = matchFor(l.Chapter), true
				return source.ErrStop
			}
		}

		if strings.Contains(text, first) {
			if strings.Contains(text, quote) {
				match, found = matchFor(l.Chapter), true
				return source.ErrStop
			}
			pending = text
		}
		return nil
	})
	if err != nil {
		return Match{}, false, err
	}
	return match, found, nil
}

func matchFor(label string) Match {
	n, err := chapters.ParseNumber(label)
	if err != nil {
		n = 0
	}
	return Match{Chapter: n, Label: label}
}
