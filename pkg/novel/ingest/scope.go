package ingest

import "strings"

// Markers are the substrings that delimit the body of a text and its chapters.
type Markers struct {
	Preface string `yaml:"preface"`
	End     string `yaml:"end"`
	Chapter string `yaml:"chapter"`
}

// DefaultMarkers returns the markers used by Project Gutenberg novels.
func DefaultMarkers() Markers {
	return Markers{
		Preface: "THE PREFACE",
		End:     "End of Project",
		Chapter: "CHAPTER",
	}
}

// State is the scope of the tracker: outside or inside the body text.
type State int

const (
	Outside State = iota
	Inside
)

func (s State) String() string {
	if s == Inside {
		return "INSIDE"
	}
	return "OUTSIDE"
}

// ScopeTracker is a two-state machine driven by marker lines. It also
// remembers the label of the most recent chapter marker.
//
// A tracker covers exactly one pass over a source; create a new one for
// every pass.
type ScopeTracker struct {
	markers Markers
	state   State
	closed  bool
	label   string
}

// NewScopeTracker creates a tracker in the Outside state.
func NewScopeTracker(m Markers) *ScopeTracker {
	return &ScopeTracker{markers: m, state: Outside}
}

// Observe feeds one raw line to the tracker and reports whether the line is
// body content. Marker lines are boundaries: the preface line switches the
// tracker Inside for the lines that follow it and the end line switches it
// back Outside; neither is content.
//
// The preface check runs before the end check, so a line carrying both
// markers leaves the tracker Outside. Once the body has been closed the
// tracker never reopens.
func (s *ScopeTracker) Observe(line string) bool {
	before := s.state

	if !s.closed && strings.Contains(line, s.markers.Preface) {
		if s.state == Outside {
			s.label = cleanLabel(line)
		}
		s.state = Inside
	}
	if strings.Contains(line, s.markers.End) {
		if s.state == Inside {
			s.closed = true
		}
		s.state = Outside
	}

	return before == Inside && s.state == Inside
}

// NoteChapterMarker makes the line the current chapter label if it contains
// the chapter marker. It reports whether the label changed.
func (s *ScopeTracker) NoteChapterMarker(line string) bool {
	cleaned := cleanLabel(line)
	if !strings.Contains(cleaned, s.markers.Chapter) {
		return false
	}
	s.label = cleaned
	return true
}

// State returns the current scope.
func (s *ScopeTracker) State() State { return s.state }

// Label returns the current chapter label. Before the first chapter marker
// this is the preface line.
func (s *ScopeTracker) Label() string { return s.label }

// Done reports whether the body has been closed. No further line can be
// in scope once Done returns true.
func (s *ScopeTracker) Done() bool { return s.closed }

func cleanLabel(line string) string {
	return strings.TrimSpace(StripControl(line))
}
