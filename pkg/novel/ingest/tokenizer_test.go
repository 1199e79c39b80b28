package ingest

import (
	"strings"
	"testing"
)

func TestTokenizerBasic(t *testing.T) {
	tokenizer := NewTokenizer()

	tokens := tokenizer.Tokenize("the cat sat. The CAT ran.")
	expected := []string{"the", "cat", "sat", "the", "cat", "ran"}

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d: %v", len(expected), len(tokens), tokens)
	}
	for i := range expected {
		if tokens[i] != expected[i] {
			t.Errorf("Token %d: expected %q, got %q", i, expected[i], tokens[i])
		}
	}
}

func TestTokenizerDigitsAndPunctuationOnly(t *testing.T) {
	tokenizer := NewTokenizer()

	for _, line := range []string{"1890", "12, 34!", "-- 7 ... ?", "_5", "1_000", "   ", ""} {
		if tokens := tokenizer.Tokenize(line); len(tokens) != 0 {
			t.Errorf("Line %q should produce no tokens, got %v", line, tokens)
		}
	}
}

func TestTokenizerDigitRuns(t *testing.T) {
	tokenizer := NewTokenizer()

	tokens := tokenizer.Tokenize("chapter 12 and 1st abc123")
	joined := strings.Join(tokens, " ")

	// leading digit runs go, digits inside a word stay
	if joined != "chapter and st abc123" {
		t.Errorf("Unexpected tokens %q", joined)
	}
}

func TestTokenizerUnderscoreBeforeDigits(t *testing.T) {
	tokenizer := NewTokenizer()

	tokens := tokenizer.Tokenize("page _5 of 1_000 abc_123")
	joined := strings.Join(tokens, " ")

	if joined != "page of abc123" {
		t.Errorf("Unexpected tokens %q", joined)
	}
}

func TestTokenizerPunctuation(t *testing.T) {
	tokenizer := NewTokenizer()

	tokens := tokenizer.Tokenize(`"Well," said Lord_Henry--"it's true!"`)
	expected := []string{"well", "said", "lordhenryits", "true"}

	if strings.Join(tokens, "|") != strings.Join(expected, "|") {
		t.Errorf("Expected %v, got %v", expected, tokens)
	}
}

func TestTokenizerControlCharacters(t *testing.T) {
	tokenizer := NewTokenizer()

	tokens := tokenizer.Tokenize("hello\u200bworld\x07 again\r\n")
	if len(tokens) != 2 || tokens[0] != "helloworld" || tokens[1] != "again" {
		t.Errorf("Control characters should be stripped, got %v", tokens)
	}

	tokens = tokenizer.Tokenize("tab\tseparated")
	if len(tokens) != 2 {
		t.Errorf("Tab should still separate words, got %v", tokens)
	}
}

func TestTokenizerCaseNormalization(t *testing.T) {
	tokenizer := NewTokenizer()

	for _, tok := range tokenizer.Tokenize("DORIAN Gray BASIL Hallward") {
		if tok != strings.ToLower(tok) {
			t.Errorf("Token %s should be lowercased", tok)
		}
	}
}

func TestTokenizerCustomPunctuation(t *testing.T) {
	tokenizer := NewTokenizerWithPunctuation(";")

	tokens := tokenizer.Tokenize("one; two.")
	if len(tokens) != 2 || tokens[0] != "one" || tokens[1] != "two." {
		t.Errorf("Only ';' should be stripped, got %v", tokens)
	}
}

func TestStripControl(t *testing.T) {
	if got := StripControl("CHAPTER 3\r"); got != "CHAPTER 3 " {
		t.Errorf("Expected trailing CR to become a space, got %q", got)
	}
	if got := StripControl("a\u0000b"); got != "ab" {
		t.Errorf("Expected NUL to be removed, got %q", got)
	}
}
