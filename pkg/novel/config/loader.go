package config

import (
	"context"
	"fmt"

	"github.com/cognicore/novelstat/pkg/novel/ingest"
	"github.com/cognicore/novelstat/pkg/novel/source"
	"github.com/cognicore/novelstat/pkg/novel/stoplist"
	"github.com/cognicore/novelstat/pkg/novel/store"
	"github.com/cognicore/novelstat/pkg/novel/store/memstore"
	"github.com/cognicore/novelstat/pkg/novel/store/sqlite"
)

// Loader builds analysis components from a Config
type Loader struct {
	Config *Config
}

// Components holds everything an analysis session needs
type Components struct {
	Tokenizer  *ingest.Tokenizer
	Markers    ingest.Markers
	Source     source.Source
	Stoplist   source.Source     // nil when no stoplist URL is configured
	ExtraStops *stoplist.StopSet // from stoplist_path, may be nil
	Store      store.Store       // in-memory unless cache_path is set
	Cached     []*source.Cached  // cache-backed sources, for warming
}

// Close releases the text cache, if any.
func (c *Components) Close() error {
	if c.Store == nil {
		return nil
	}
	return c.Store.Close()
}

// Load opens the cache and constructs sources and the tokenizer. Without a
// cache path, downloads are kept in memory so that every URL is fetched at
// most once per run.
func (l *Loader) Load(ctx context.Context) (*Components, error) {
	cfg := l.Config
	if cfg == nil {
		d := Default()
		cfg = &d
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	comp := &Components{
		Tokenizer: ingest.NewTokenizerWithPunctuation(cfg.Punctuation),
		Markers:   cfg.Markers,
	}

	if cfg.CachePath != "" {
		st, err := sqlite.OpenSQLite(ctx, cfg.CachePath)
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		comp.Store = st
	} else {
		comp.Store = memstore.New()
	}

	if cfg.SourcePath != "" {
		comp.Source = source.File{Path: cfg.SourcePath}
	} else {
		comp.Source = comp.cache(cfg.SourceURL, source.HTTP{URL: cfg.SourceURL})
	}

	if cfg.StoplistURL != "" {
		comp.Stoplist = comp.cache(cfg.StoplistURL, source.HTTP{URL: cfg.StoplistURL})
	}

	if cfg.StoplistPath != "" {
		sl, err := LoadStoplist(cfg.StoplistPath)
		if err != nil {
			comp.Close()
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		comp.ExtraStops = stoplist.New(sl.Terms)
	}

	return comp, nil
}

func (c *Components) cache(url string, upstream source.Source) source.Source {
	cached := &source.Cached{Store: c.Store, Upstream: upstream, URL: url}
	c.Cached = append(c.Cached, cached)
	return cached
}
