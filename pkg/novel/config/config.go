package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/novelstat/pkg/novel/generate"
	"github.com/cognicore/novelstat/pkg/novel/ingest"
	"github.com/cognicore/novelstat/pkg/novel/internalerr"
)

const (
	// DefaultSourceURL is The Picture of Dorian Gray on GITenberg.
	DefaultSourceURL = "https://raw.githubusercontent.com/GITenberg/The-Picture-of-Dorian-Gray_174/master/174.txt"
	// DefaultStoplistURL is a list of the 1000 most common English words.
	DefaultStoplistURL = "https://gist.githubusercontent.com/deekayen/4148741/raw/98d35708fa344717d8eee15d11987de6c8e26d7d/1-1000.txt"
)

// Config is the analyzer configuration, usually read from novelstat.yaml.
type Config struct {
	SourceURL    string         `yaml:"source_url"`
	SourcePath   string         `yaml:"source_path"`
	StoplistURL  string         `yaml:"stoplist_url"`
	StoplistPath string         `yaml:"stoplist_path"`
	CachePath    string         `yaml:"cache_path"`
	Punctuation  string         `yaml:"punctuation"`
	Markers      ingest.Markers `yaml:"markers"`
	Report       Report         `yaml:"report"`
}

// Report selects what the report command prints.
type Report struct {
	Top            int      `yaml:"top"`
	ChapterWords   []string `yaml:"chapter_words"`
	Quote          string   `yaml:"quote"`
	Seed           string   `yaml:"seed"`
	SentenceLength int      `yaml:"sentence_length"`
	RandomSeed     uint64   `yaml:"random_seed"` // 0 picks a random seed
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SourceURL:   DefaultSourceURL,
		StoplistURL: DefaultStoplistURL,
		Punctuation: ingest.DefaultPunctuation,
		Markers:     ingest.DefaultMarkers(),
		Report: Report{
			Top:            20,
			ChapterWords:   []string{"dorian", "love"},
			Quote:          "The only way to get rid of a temptation is to yield to it.",
			Seed:           "the",
			SentenceLength: generate.DefaultLength,
		},
	}
}

// Load reads a YAML config file. Fields missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values no analysis can use.
func (c *Config) Validate() error {
	var problems []string
	if c.SourceURL == "" && c.SourcePath == "" {
		problems = append(problems, "one of source_url or source_path is required")
	}
	if c.Markers.Preface == "" || c.Markers.End == "" || c.Markers.Chapter == "" {
		problems = append(problems, "markers must not be empty")
	}
	if c.Report.Top < 0 {
		problems = append(problems, "report.top must not be negative")
	}
	if c.Report.SentenceLength < 0 {
		problems = append(problems, "report.sentence_length must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", internalerr.ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}
