package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/cognicore/novelstat/pkg/novel/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu    sync.RWMutex
	texts map[string]store.Text
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{texts: make(map[string]store.Text)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// PutText inserts or replaces a text, keyed by URL.
func (s *Store) PutText(ctx context.Context, t store.Text) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.URL == "" {
		return nil
	}
	s.texts[t.URL] = copyText(t)
	return nil
}

// GetText returns a text by URL.
func (s *Store) GetText(ctx context.Context, url string) (store.Text, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.texts[url]
	if !ok {
		return store.Text{}, false, nil
	}
	return copyText(t), true, nil
}

// DeleteText removes a text by URL.
func (s *Store) DeleteText(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.texts, url)
	return nil
}

// ListTexts returns metadata for every cached text, oldest first.
func (s *Store) ListTexts(ctx context.Context) ([]store.TextInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.TextInfo, 0, len(s.texts))
	for _, t := range s.texts {
		out = append(out, t.Info())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FetchedAt.Equal(out[j].FetchedAt) {
			return out[i].URL < out[j].URL
		}
		return out[i].FetchedAt.Before(out[j].FetchedAt)
	})
	return out, nil
}

func copyText(t store.Text) store.Text {
	lines := make([]string, len(t.Lines))
	copy(lines, t.Lines)
	t.Lines = lines
	return t
}
