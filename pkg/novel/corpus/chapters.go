package corpus

// ChapterTable holds per-chapter word counts. Labels keep the order in which
// chapters were first encountered; the preface label, when present, is first.
type ChapterTable struct {
	Preface string
	labels  []string
	counts  map[string]map[string]int
}

// NewChapterTable creates an empty table.
func NewChapterTable() *ChapterTable {
	return &ChapterTable{counts: make(map[string]map[string]int)}
}

// Ensure adds label with no counts if it is not already present.
func (c *ChapterTable) Ensure(label string) {
	if _, ok := c.counts[label]; ok {
		return
	}
	c.labels = append(c.labels, label)
	c.counts[label] = make(map[string]int)
}

// Add tallies one occurrence of word in the chapter label.
func (c *ChapterTable) Add(label, word string) {
	c.Ensure(label)
	c.counts[label][word]++
}

// Labels returns all labels in encounter order, preface included.
func (c *ChapterTable) Labels() []string {
	out := make([]string, len(c.labels))
	copy(out, c.labels)
	return out
}

// Chapters returns the labels in encounter order without the preface.
func (c *ChapterTable) Chapters() []string {
	out := make([]string, 0, len(c.labels))
	for _, l := range c.labels {
		if c.Preface != "" && l == c.Preface {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Count returns how often word occurs in chapter label.
func (c *ChapterTable) Count(label, word string) int {
	return c.counts[label][word]
}

// Words returns a copy of the counts for label.
func (c *ChapterTable) Words(label string) map[string]int {
	src := c.counts[label]
	out := make(map[string]int, len(src))
	for w, n := range src {
		out[w] = n
	}
	return out
}

// Has reports whether label is a key of the table.
func (c *ChapterTable) Has(label string) bool {
	_, ok := c.counts[label]
	return ok
}

// Len returns the number of labels, preface included.
func (c *ChapterTable) Len() int { return len(c.labels) }
