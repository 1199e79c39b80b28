package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/novelstat/pkg/novel/source"
	"github.com/cognicore/novelstat/pkg/novel/store/memstore"
)

func TestLoaderDefaults(t *testing.T) {
	loader := Loader{}

	comp, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Default loader should succeed: %v", err)
	}
	defer comp.Close()

	if comp.Tokenizer == nil {
		t.Error("Should have tokenizer")
	}
	cached, ok := comp.Source.(*source.Cached)
	if !ok {
		t.Fatalf("Default source should be cache-backed, got %T", comp.Source)
	}
	if _, ok := cached.Upstream.(source.HTTP); !ok {
		t.Errorf("Default upstream should be HTTP, got %T", cached.Upstream)
	}
	if comp.Stoplist == nil {
		t.Error("Default config has a stoplist URL")
	}
	if _, ok := comp.Store.(*memstore.Store); !ok {
		t.Errorf("Default cache should be in memory, got %T", comp.Store)
	}
}

func TestLoaderLocalFile(t *testing.T) {
	cfg := Default()
	cfg.SourcePath = "/tmp/book.txt"
	cfg.StoplistURL = ""

	comp, err := (&Loader{Config: &cfg}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f, ok := comp.Source.(source.File); !ok || f.Path != "/tmp/book.txt" {
		t.Errorf("Expected file source, got %#v", comp.Source)
	}
	if comp.Stoplist != nil {
		t.Error("No stoplist source expected")
	}
	if len(comp.Cached) != 0 {
		t.Errorf("Local files are not cached, got %d cached sources", len(comp.Cached))
	}
}

func TestLoaderWithCache(t *testing.T) {
	cfg := Default()
	cfg.CachePath = filepath.Join(t.TempDir(), "cache.db")

	comp, err := (&Loader{Config: &cfg}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer comp.Close()

	if comp.Store == nil {
		t.Fatal("Cache store should be open")
	}
	if _, ok := comp.Source.(*source.Cached); !ok {
		t.Errorf("Source should be cache-backed, got %T", comp.Source)
	}
	if len(comp.Cached) != 2 {
		t.Errorf("Expected source and stoplist to be cached, got %d", len(comp.Cached))
	}
}

func TestLoaderStoplistFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stoplist.yaml")
	os.WriteFile(path, []byte("terms: [The, of]\n"), 0644)

	cfg := Default()
	cfg.StoplistPath = path

	comp, err := (&Loader{Config: &cfg}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !comp.ExtraStops.IsStop("the") || !comp.ExtraStops.IsStop("of") {
		t.Errorf("Expected extra stops from file, got %v", comp.ExtraStops.All())
	}
}

func TestLoaderNonExistentStoplist(t *testing.T) {
	cfg := Default()
	cfg.StoplistPath = "/nonexistent/stoplist.yaml"

	if _, err := (&Loader{Config: &cfg}).Load(context.Background()); err == nil {
		t.Error("Should error on nonexistent stoplist")
	}
}

func TestLoaderInvalidConfig(t *testing.T) {
	cfg := Default()
	cfg.Markers.Chapter = ""

	if _, err := (&Loader{Config: &cfg}).Load(context.Background()); err == nil {
		t.Error("Invalid config should be rejected")
	}
}
