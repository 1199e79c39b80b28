package source

import (
	"context"
	"fmt"
	"time"

	"github.com/cognicore/novelstat/pkg/novel/internalerr"
	"github.com/cognicore/novelstat/pkg/novel/store"
)

// Cached serves passes from a text store, fetching Upstream only when the
// store has no valid copy of URL.
type Cached struct {
	Store    store.Store
	Upstream Source
	URL      string
	Now      func() time.Time // time.Now when nil
}

// Lines implements Source.
func (c *Cached) Lines(ctx context.Context, fn func(line string) error) error {
	text, err := c.load(ctx, false)
	if err != nil {
		return err
	}
	return Memory(text.Lines).Lines(ctx, fn)
}

// Warm makes sure the store holds a copy of URL and returns its metadata.
// With refresh set the upstream is fetched even when a copy exists.
func (c *Cached) Warm(ctx context.Context, refresh bool) (store.TextInfo, error) {
	text, err := c.load(ctx, refresh)
	if err != nil {
		return store.TextInfo{}, err
	}
	return text.Info(), nil
}

func (c *Cached) load(ctx context.Context, refresh bool) (store.Text, error) {
	if !refresh {
		text, found, err := c.Store.GetText(ctx, c.URL)
		if err != nil {
			return store.Text{}, fmt.Errorf("read cache for %s: %w: %v", c.URL, internalerr.ErrStoreUnavailable, err)
		}
		// a copy that fails its digest is fetched again
		if found && text.Verify() == nil {
			return text, nil
		}
	}

	lines, err := Collect(ctx, c.Upstream)
	if err != nil {
		return store.Text{}, err
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	text := store.NewText(c.URL, lines, now())
	if err := c.Store.PutText(ctx, text); err != nil {
		return store.Text{}, fmt.Errorf("write cache for %s: %w: %v", c.URL, internalerr.ErrStoreUnavailable, err)
	}
	return text, nil
}
