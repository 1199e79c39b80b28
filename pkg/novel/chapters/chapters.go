package chapters

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cognicore/novelstat/pkg/novel/corpus"
	"github.com/cognicore/novelstat/pkg/novel/internalerr"
)

// MismatchError reports that the number of chapters seen disagrees with the
// number in the last chapter label.
type MismatchError struct {
	Label    string
	Declared int
	Counted  int
	Err      error // set when the label carries no number
}

func (e *MismatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("chapter count: last label %q: %v", e.Label, e.Err)
	}
	return fmt.Sprintf("chapter count: last label %q declares %d chapters, counted %d", e.Label, e.Declared, e.Counted)
}

func (e *MismatchError) Unwrap() error { return e.Err }

func (e *MismatchError) Is(target error) bool { return target == internalerr.ErrChapterCountMismatch }

// Count is the number of occurrences of a word in one chapter.
type Count struct {
	Chapter string `json:"chapter"`
	Number  int    `json:"number"`
	Count   int    `json:"count"`
}

// FrequencyByChapter returns the count of word in every chapter holding it,
// in chapter order. Chapters without the word contribute no entry, and the
// preface is not a chapter.
//
// The chapter count is validated first: the number in the last chapter
// label must equal the number of chapters in the table.
func FrequencyByChapter(table *corpus.ChapterTable, word string) ([]int, error) {
	counts, err := CountsByChapter(table, word)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(counts))
	for _, c := range counts {
		out = append(out, c.Count)
	}
	return out, nil
}

// CountsByChapter is FrequencyByChapter with the chapter labels and numbers
// kept alongside the counts.
func CountsByChapter(table *corpus.ChapterTable, word string) ([]Count, error) {
	if err := Validate(table); err != nil {
		return nil, err
	}

	word = strings.ToLower(word)
	var out []Count
	for i, label := range table.Chapters() {
		n := table.Count(label, word)
		if n == 0 {
			continue
		}
		number, err := ParseNumber(label)
		if err != nil {
			number = i + 1
		}
		out = append(out, Count{Chapter: label, Number: number, Count: n})
	}
	return out, nil
}

// Validate checks the chapter count against the last chapter label.
// A table without chapters is valid.
func Validate(table *corpus.ChapterTable) error {
	labels := table.Chapters()
	if len(labels) == 0 {
		return nil
	}
	last := labels[len(labels)-1]
	declared, err := ParseNumber(last)
	if err != nil {
		return &MismatchError{Label: last, Counted: len(labels), Err: err}
	}
	if declared != len(labels) {
		return &MismatchError{Label: last, Declared: declared, Counted: len(labels)}
	}
	return nil
}

// ParseNumber extracts the chapter number from a label such as "CHAPTER 3"
// or "CHAPTER XIV. THE END". The first arabic or roman numeral wins.
func ParseNumber(label string) (int, error) {
	for _, field := range strings.Fields(label) {
		f := strings.Trim(field, ".:,;-_()[]")
		if f == "" || strings.EqualFold(f, "chapter") {
			continue
		}
		if n, err := strconv.Atoi(f); err == nil && n >= 0 {
			return n, nil
		}
		if n, ok := parseRoman(f); ok {
			return n, nil
		}
	}
	return 0, fmt.Errorf("no chapter number in %q: %w", label, internalerr.ErrInvalidInput)
}

var romanValues = map[rune]int{'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000}

func parseRoman(s string) (int, bool) {
	s = strings.ToUpper(s)
	total := 0
	prev := 0
	for i := len(s) - 1; i >= 0; i-- {
		v, ok := romanValues[rune(s[i])]
		if !ok {
			return 0, false
		}
		if v < prev {
			total -= v
		} else {
			total += v
			prev = v
		}
	}
	if total <= 0 || toRoman(total) != s {
		return 0, false
	}
	return total, true
}

func toRoman(n int) string {
	values := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	symbols := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}
	var b strings.Builder
	for i, v := range values {
		for n >= v {
			b.WriteString(symbols[i])
			n -= v
		}
	}
	return b.String()
}
