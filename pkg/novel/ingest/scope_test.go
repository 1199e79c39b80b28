package ingest

import "testing"

func TestScopeTrackerTransitions(t *testing.T) {
	tracker := NewScopeTracker(DefaultMarkers())

	if tracker.State() != Outside {
		t.Fatal("Tracker should start Outside")
	}

	if tracker.Observe("Title: The Picture of Dorian Gray") {
		t.Error("Header line should not be content")
	}
	if tracker.State() != Outside {
		t.Error("Should stay Outside before the preface")
	}

	if tracker.Observe("THE PREFACE") {
		t.Error("Preface marker line should not be content")
	}
	if tracker.State() != Inside {
		t.Error("Should be Inside right after the preface line")
	}

	if !tracker.Observe("The artist is the creator of beautiful things.") {
		t.Error("Body line should be content")
	}

	if tracker.Observe("End of Project Gutenberg's The Picture of Dorian Gray") {
		t.Error("End marker line should not be content")
	}
	if tracker.State() != Outside || !tracker.Done() {
		t.Error("Should be Outside and done after the end line")
	}

	// never reopens
	tracker.Observe("THE PREFACE")
	if tracker.State() != Outside {
		t.Error("Tracker must not reopen after the end marker")
	}
	if tracker.Observe("more text") {
		t.Error("Nothing after the end marker is content")
	}
}

func TestScopeTrackerBothMarkersOnOneLine(t *testing.T) {
	tracker := NewScopeTracker(DefaultMarkers())

	if tracker.Observe("THE PREFACE ... End of Project") {
		t.Error("Line with both markers should not be content")
	}
	if tracker.State() != Outside {
		t.Error("End marker should win when both are present")
	}
}

func TestScopeTrackerChapterLabel(t *testing.T) {
	tracker := NewScopeTracker(DefaultMarkers())

	tracker.Observe("THE PREFACE\r\n")
	if tracker.Label() != "THE PREFACE" {
		t.Errorf("Label should be the preface line, got %q", tracker.Label())
	}

	if tracker.NoteChapterMarker("just text") {
		t.Error("Plain text should not change the label")
	}
	if !tracker.NoteChapterMarker("  CHAPTER 3\r\n") {
		t.Fatal("Chapter line should change the label")
	}
	if tracker.Label() != "CHAPTER 3" {
		t.Errorf("Expected label %q, got %q", "CHAPTER 3", tracker.Label())
	}
}

func TestScopeTrackerCustomMarkers(t *testing.T) {
	tracker := NewScopeTracker(Markers{Preface: "*** START", End: "*** END", Chapter: "Chapter"})

	tracker.Observe("*** START OF THE PROJECT GUTENBERG EBOOK")
	if !tracker.Observe("Chapter I") {
		t.Error("Line after custom start marker should be content")
	}
	if !tracker.NoteChapterMarker("Chapter I") {
		t.Error("Custom chapter marker should be recognised")
	}
	tracker.Observe("*** END OF THE PROJECT GUTENBERG EBOOK")
	if !tracker.Done() {
		t.Error("Custom end marker should close the body")
	}
}
