package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cognicore/novelstat/pkg/novel"
	"github.com/cognicore/novelstat/pkg/novel/freq"
)

// WriteJSON writes the summary as indented JSON.
func WriteJSON(w io.Writer, sum *novel.Summary) error {
	out, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// WriteText writes the summary in console order: counts, the three word
// rankings, per-chapter frequencies, the quote location and the sentence.
func WriteText(w io.Writer, sum *novel.Summary) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Total words in novel: %d\n", sum.TotalWords)
	fmt.Fprintf(&b, "Number of unique words in novel: %d\n", sum.UniqueWords)

	writeEntries(&b, fmt.Sprintf("%d most frequent words", len(sum.Top)), sum.Top)
	writeEntries(&b, fmt.Sprintf("%d most frequent interesting words", len(sum.Interesting)), sum.Interesting)
	writeEntries(&b, fmt.Sprintf("%d least frequent words", len(sum.Bottom)), sum.Bottom)

	for _, wc := range sum.ChapterWords {
		fmt.Fprintf(&b, "\nFrequency of %q by chapter: %s\n", wc.Word, Ints(wc.Counts))
	}

	if sum.Quote != "" {
		if sum.QuoteMatch != nil {
			fmt.Fprintf(&b, "\nQuote %q is in chapter %d\n", sum.Quote, sum.QuoteMatch.Chapter)
		} else {
			fmt.Fprintf(&b, "\nQuote %q not found\n", sum.Quote)
		}
	}

	if sum.Seed != "" {
		if sum.SentenceError != "" {
			fmt.Fprintf(&b, "\nNo sentence from %q: %s\n", sum.Seed, sum.SentenceError)
		} else {
			fmt.Fprintf(&b, "\nGenerated sentence: %s\n", sum.Sentence)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteEntries writes a titled, numbered word ranking.
func WriteEntries(w io.Writer, title string, entries []freq.Entry) error {
	var b strings.Builder
	writeEntries(&b, title, entries)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeEntries(b *strings.Builder, title string, entries []freq.Entry) {
	fmt.Fprintf(b, "\n%s:\n", title)
	if len(entries) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	width := 0
	for _, e := range entries {
		width = max(width, len(e.Word))
	}
	for i, e := range entries {
		fmt.Fprintf(b, "%3d. %-*s %d\n", i+1, width, e.Word, e.Count)
	}
}

// Ints formats a count sequence as "[1, 2, 3]".
func Ints(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
