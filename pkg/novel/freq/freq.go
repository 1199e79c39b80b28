// Package freq ranks words by how often they occur.
package freq

import "container/heap"

// Entry is a word with its occurrence count.
type Entry struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Excluder reports words that must be left out of a ranking.
// *stoplist.StopSet satisfies it.
type Excluder interface {
	IsStop(word string) bool
}

// Count builds the frequency table of words.
func Count(words []string) map[string]int {
	counts := make(map[string]int)
	for _, w := range words {
		counts[w]++
	}
	return counts
}

// Total returns the number of words.
func Total(words []string) int { return len(words) }

// Unique returns the number of distinct words.
func Unique(words []string) int { return len(Count(words)) }

// TopK returns the k most frequent words, highest count first. Equal counts
// are ordered by ascending word. Words matched by exclude are skipped; fewer
// than k entries are returned when the table runs out.
func TopK(words []string, k int, exclude Excluder) []Entry {
	return TopKCounts(Count(words), k, exclude)
}

// BottomK returns the k least frequent words, lowest count first, with the
// same tie-break and exclusion rules as TopK.
func BottomK(words []string, k int, exclude Excluder) []Entry {
	return BottomKCounts(Count(words), k, exclude)
}

// TopKCounts is TopK over an existing frequency table.
func TopKCounts(counts map[string]int, k int, exclude Excluder) []Entry {
	return selectK(counts, k, exclude, func(a, b Entry) bool {
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Word < b.Word
	})
}

// BottomKCounts is BottomK over an existing frequency table.
func BottomKCounts(counts map[string]int, k int, exclude Excluder) []Entry {
	return selectK(counts, k, exclude, func(a, b Entry) bool {
		if a.Count != b.Count {
			return a.Count < b.Count
		}
		return a.Word < b.Word
	})
}

func selectK(counts map[string]int, k int, exclude Excluder, less func(a, b Entry) bool) []Entry {
	if k <= 0 || len(counts) == 0 {
		return []Entry{}
	}

	h := &entryHeap{less: less, entries: make([]Entry, 0, len(counts))}
	for w, c := range counts {
		h.entries = append(h.entries, Entry{Word: w, Count: c})
	}
	heap.Init(h)

	out := make([]Entry, 0, min(k, len(counts)))
	for h.Len() > 0 && len(out) < k {
		e := heap.Pop(h).(Entry)
		if exclude != nil && exclude.IsStop(e.Word) {
			continue
		}
		out = append(out, e)
	}
	return out
}

type entryHeap struct {
	entries []Entry
	less    func(a, b Entry) bool
}

func (h *entryHeap) Len() int           { return len(h.entries) }
func (h *entryHeap) Less(i, j int) bool { return h.less(h.entries[i], h.entries[j]) }
func (h *entryHeap) Swap(i, j int)      { h.entries[i], h.entries[j] = h.entries[j], h.entries[i] }
func (h *entryHeap) Push(x any)         { h.entries = append(h.entries, x.(Entry)) }
func (h *entryHeap) Pop() any {
	old := h.entries
	n := len(old)
	e := old[n-1]
	h.entries = old[:n-1]
	return e
}
