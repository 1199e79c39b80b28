package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/novelstat/pkg/novel/internalerr"
)

const tinyNovel = `The Project Gutenberg EBook of a Tiny Novel
THE PREFACE
The artist is the creator of beautiful things.
CHAPTER 1
Dorian looked at the portrait. The portrait smiled.
CHAPTER 2
Basil painted the portrait of Dorian.
The only way to get rid of a temptation
is to yield to it.
CHAPTER 3
Dorian Dorian Dorian.
End of Project Gutenberg's Tiny Novel
license text that must be ignored ignored ignored
`

func writeNovel(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "novel.txt")
	if err := os.WriteFile(path, []byte(tinyNovel), 0o644); err != nil {
		t.Fatalf("write novel: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestWordsCommand(t *testing.T) {
	path := writeNovel(t)

	out, err := run(t, "--file", path, "--stoplist-url=", "words", "--top", "2")
	if err != nil {
		t.Fatalf("words: %v", err)
	}
	if !strings.Contains(out, "Total words in novel: ") {
		t.Errorf("missing total line:\n%s", out)
	}
	if !strings.Contains(out, "2 most frequent words:") {
		t.Errorf("missing top ranking:\n%s", out)
	}
	if strings.Contains(out, "ignored") {
		t.Errorf("license text leaked into counts:\n%s", out)
	}
}

func TestChaptersCommand(t *testing.T) {
	path := writeNovel(t)

	out, err := run(t, "--file", path, "--stoplist-url=", "chapters", "dorian", "basil")
	if err != nil {
		t.Fatalf("chapters: %v", err)
	}
	if !strings.Contains(out, "dorian: [1, 1, 3]") {
		t.Errorf("unexpected dorian counts:\n%s", out)
	}
	if !strings.Contains(out, "basil: [1]") {
		t.Errorf("unexpected basil counts:\n%s", out)
	}
}

func TestQuoteCommand(t *testing.T) {
	path := writeNovel(t)

	out, err := run(t, "--file", path, "--stoplist-url=", "quote", "The only way to get rid of a temptation is to yield to it.")
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if !strings.Contains(out, "is in chapter 2 (CHAPTER 2)") {
		t.Errorf("quote not located in chapter 2:\n%s", out)
	}

	out, err = run(t, "--file", path, "--stoplist-url=", "quote", "not in this book")
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if !strings.Contains(out, "not found") {
		t.Errorf("expected not found:\n%s", out)
	}
}

func TestGenerateCommand(t *testing.T) {
	path := writeNovel(t)

	out, err := run(t, "--file", path, "--stoplist-url=", "generate", "dorian", "--length", "2", "--seed", "7")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	sentence := strings.TrimSpace(out)
	if !strings.HasPrefix(sentence, "dorian ") || !strings.HasSuffix(sentence, ".") {
		t.Fatalf("unexpected sentence %q", sentence)
	}
	if words := strings.Fields(strings.TrimSuffix(sentence, ".")); len(words) != 3 {
		t.Errorf("expected seed plus 2 words, got %q", sentence)
	}

	again, err := run(t, "--file", path, "--stoplist-url=", "generate", "dorian", "--length", "2", "--seed", "7")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if again != out {
		t.Errorf("same seed gave %q then %q", out, again)
	}
}

func TestGenerateUnknownWord(t *testing.T) {
	path := writeNovel(t)

	_, err := run(t, "--file", path, "--stoplist-url=", "generate", "zebra")
	if !errors.Is(err, internalerr.ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
}

func TestQueryWordsAreTokenized(t *testing.T) {
	path := writeNovel(t)

	out, err := run(t, "--file", path, "--stoplist-url=", "chapters", "Dorian.")
	if err != nil {
		t.Fatalf("chapters: %v", err)
	}
	if !strings.Contains(out, "Dorian.: [1, 1, 3]") {
		t.Errorf("punctuated word should match dorian:\n%s", out)
	}

	_, err = run(t, "--file", path, "--stoplist-url=", "generate", "two words")
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestReportCommandJSON(t *testing.T) {
	path := writeNovel(t)

	out, err := run(t, "--file", path, "--stoplist-url=", "report", "--json", "--top", "3", "--words", "dorian", "--seed-word", "basil", "--length", "1")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	for _, want := range []string{`"total_words"`, `"chapter_words"`, `"quote_match"`, `"sentence": "basil painted`} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %s:\n%s", want, out)
		}
	}
}

func TestFetchRequiresCache(t *testing.T) {
	_, err := run(t, "--url", "http://127.0.0.1:1/novel.txt", "fetch")
	if err == nil || !strings.Contains(err.Error(), "needs a cache") {
		t.Fatalf("expected cache error, got %v", err)
	}
}

func TestFetchThenReadOffline(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(tinyNovel))
	}))
	url := srv.URL + "/novel.txt"
	cache := filepath.Join(t.TempDir(), "cache.db")

	out, err := run(t, "--url", url, "--stoplist-url=", "--cache", cache, "fetch")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !strings.Contains(out, url+": 13 lines") {
		t.Errorf("unexpected fetch output:\n%s", out)
	}
	srv.Close()

	out, err = run(t, "--url", url, "--stoplist-url=", "--cache", cache, "chapters", "dorian")
	if err != nil {
		t.Fatalf("chapters from cache: %v", err)
	}
	if !strings.Contains(out, "dorian: [1, 1, 3]") {
		t.Errorf("unexpected cached counts:\n%s", out)
	}
	if requests != 1 {
		t.Errorf("expected 1 request, got %d", requests)
	}
}

func TestInvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "novelstat.yaml")
	if err := os.WriteFile(cfgPath, []byte("report:\n  top: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := run(t, "--config", cfgPath, "words")
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
