package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognicore/novelstat/internal/report"
	"github.com/cognicore/novelstat/pkg/novel"
	"github.com/cognicore/novelstat/pkg/novel/config"
	"github.com/cognicore/novelstat/pkg/novel/generate"
)

const version = "0.1.0"

// globalFlags are shared by every subcommand and override the config file.
type globalFlags struct {
	configPath  string
	url         string
	path        string
	stoplistURL string
	cachePath   string
	verbose     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "novelstat",
		Short: "Word statistics for Project Gutenberg novels",
		Long: `novelstat reads a Project Gutenberg plain-text novel and reports on it:
  - total and unique word counts
  - most frequent, most frequent interesting, and least frequent words
  - per-chapter frequency of chosen words
  - the chapter containing a quote
  - a random sentence built from adjacent word pairs

The novel defaults to The Picture of Dorian Gray.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetFlags(log.LstdFlags)
			if g.verbose {
				log.SetOutput(cmd.ErrOrStderr())
			} else {
				log.SetOutput(io.Discard)
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "YAML config file")
	pf.StringVar(&g.url, "url", "", "novel URL (overrides source_url)")
	pf.StringVar(&g.path, "file", "", "local novel file (overrides source_path)")
	pf.StringVar(&g.stoplistURL, "stoplist-url", "", "common-words list URL, empty to disable")
	pf.StringVar(&g.cachePath, "cache", "", "SQLite text cache path")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "log progress to stderr")

	rootCmd.AddCommand(reportCmd(g))
	rootCmd.AddCommand(wordsCmd(g))
	rootCmd.AddCommand(chaptersCmd(g))
	rootCmd.AddCommand(quoteCmd(g))
	rootCmd.AddCommand(generateCmd(g))
	rootCmd.AddCommand(fetchCmd(g))

	return rootCmd
}

// config reads the config file and applies flags the user set explicitly.
func (g *globalFlags) config(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.SourceURL = g.url
		cfg.SourcePath = ""
	}
	if flags.Changed("file") {
		cfg.SourcePath = g.path
	}
	if flags.Changed("stoplist-url") {
		cfg.StoplistURL = g.stoplistURL
	}
	if flags.Changed("cache") {
		cfg.CachePath = g.cachePath
	}
	if f := flags.Lookup("seed"); f != nil && f.Changed {
		cfg.Report.RandomSeed, _ = flags.GetUint64("seed")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// open builds a Session from the config. The returned cleanup closes the
// text cache.
func (g *globalFlags) open(ctx context.Context, cmd *cobra.Command) (*novel.Session, *config.Config, func(), error) {
	cfg, err := g.config(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	comp, err := (&config.Loader{Config: cfg}).Load(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	opts := novel.Options{
		Source:     comp.Source,
		Stoplist:   comp.Stoplist,
		ExtraStops: comp.ExtraStops,
		Tokenizer:  comp.Tokenizer,
		Markers:    comp.Markers,
	}
	if cfg.Report.RandomSeed != 0 {
		opts.Rand = generate.NewSeeded(cfg.Report.RandomSeed)
	}

	sess := novel.New(opts)
	log.Printf("session %s: source=%s", sess.ID(), describeSource(cfg))

	cleanup := func() {
		if err := comp.Close(); err != nil {
			log.Printf("close cache: %v", err)
		}
	}
	return sess, cfg, cleanup, nil
}

func describeSource(cfg *config.Config) string {
	if cfg.SourcePath != "" {
		return cfg.SourcePath
	}
	return cfg.SourceURL
}

func reportCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the full analysis",
		Long: `Print every analysis in order: counts, word rankings, per-chapter
frequencies, the quote location and a generated sentence.

Example:
  novelstat report
  novelstat report --top 10 --words dorian,love --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			ctx := cmd.Context()
			sess, cfg, cleanup, err := g.open(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if cmd.Flags().Changed("top") {
				cfg.Report.Top, _ = cmd.Flags().GetInt("top")
			}
			if cmd.Flags().Changed("words") {
				cfg.Report.ChapterWords, _ = cmd.Flags().GetStringSlice("words")
			}
			if cmd.Flags().Changed("quote") {
				cfg.Report.Quote, _ = cmd.Flags().GetString("quote")
			}
			if cmd.Flags().Changed("seed-word") {
				cfg.Report.Seed, _ = cmd.Flags().GetString("seed-word")
			}
			if cmd.Flags().Changed("length") {
				cfg.Report.SentenceLength, _ = cmd.Flags().GetInt("length")
			}

			sum, err := sess.Summary(ctx, novel.SummaryOptions{
				Top:            cfg.Report.Top,
				ChapterWords:   cfg.Report.ChapterWords,
				Quote:          cfg.Report.Quote,
				Seed:           cfg.Report.Seed,
				SentenceLength: cfg.Report.SentenceLength,
			})
			if err != nil {
				return err
			}

			if asJSON {
				return report.WriteJSON(cmd.OutOrStdout(), sum)
			}
			return report.WriteText(cmd.OutOrStdout(), sum)
		},
	}

	cmd.Flags().Bool("json", false, "write the report as JSON")
	cmd.Flags().Int("top", 0, "size of each word ranking")
	cmd.Flags().StringSlice("words", nil, "words to count per chapter")
	cmd.Flags().String("quote", "", "quote to locate")
	cmd.Flags().String("seed-word", "", "first word of the generated sentence")
	cmd.Flags().Int("length", 0, "words to generate after the seed")

	return cmd
}

func wordsCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Print word counts and rankings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, cfg, cleanup, err := g.open(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			k := cfg.Report.Top
			if cmd.Flags().Changed("top") {
				k, _ = cmd.Flags().GetInt("top")
			}

			total, err := sess.TotalWords(ctx)
			if err != nil {
				return err
			}
			unique, err := sess.UniqueWords(ctx)
			if err != nil {
				return err
			}
			top, err := sess.TopWords(ctx, k)
			if err != nil {
				return err
			}
			interesting, err := sess.InterestingWords(ctx, k)
			if err != nil {
				return err
			}
			bottom, err := sess.BottomWords(ctx, k)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total words in novel: %d\n", total)
			fmt.Fprintf(out, "Number of unique words in novel: %d\n", unique)
			if err := report.WriteEntries(out, fmt.Sprintf("%d most frequent words", len(top)), top); err != nil {
				return err
			}
			if err := report.WriteEntries(out, fmt.Sprintf("%d most frequent interesting words", len(interesting)), interesting); err != nil {
				return err
			}
			return report.WriteEntries(out, fmt.Sprintf("%d least frequent words", len(bottom)), bottom)
		},
	}

	cmd.Flags().Int("top", 0, "size of each word ranking")
	return cmd
}

func chaptersCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chapters WORD...",
		Short: "Print how often words occur in each chapter",
		Long: `Print the per-chapter frequency of each word. Only chapters where the
word occurs are listed; the preface is never counted.

Example:
  novelstat chapters dorian love
  novelstat chapters --detail basil`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, _ := cmd.Flags().GetBool("detail")

			ctx := cmd.Context()
			sess, _, cleanup, err := g.open(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			for _, word := range args {
				if !detail {
					counts, err := sess.FrequencyByChapter(ctx, word)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%s: %s\n", word, report.Ints(counts))
					continue
				}

				counts, err := sess.CountsByChapter(ctx, word)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s:\n", word)
				for _, c := range counts {
					fmt.Fprintf(out, "  %-14s %d\n", c.Chapter, c.Count)
				}
			}
			return nil
		},
	}

	cmd.Flags().Bool("detail", false, "list chapter labels with each count")
	return cmd
}

func quoteCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "quote TEXT",
		Short: "Find the chapter containing a quote",
		Long: `Find the chapter containing a quote. The quote must appear verbatim,
either within one line or across two consecutive lines.

Example:
  novelstat quote "The only way to get rid of a temptation is to yield to it."`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")

			ctx := cmd.Context()
			sess, _, cleanup, err := g.open(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			m, found, err := sess.LocateQuote(ctx, text)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !found {
				fmt.Fprintf(out, "Quote %q not found\n", text)
				return nil
			}
			fmt.Fprintf(out, "Quote %q is in chapter %d (%s)\n", text, m.Chapter, m.Label)
			return nil
		},
	}
}

func generateCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate SEED",
		Short: "Generate a sentence from adjacent word pairs",
		Long: `Generate a sentence that starts with SEED. Each following word is
picked at random among the words that directly follow the previous one
somewhere in the novel.

Example:
  novelstat generate the
  novelstat generate dorian --length 12 --seed 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			length, _ := cmd.Flags().GetInt("length")

			ctx := cmd.Context()
			sess, cfg, cleanup, err := g.open(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if !cmd.Flags().Changed("length") {
				length = cfg.Report.SentenceLength
			}

			sentence, err := sess.Generate(ctx, args[0], length)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sentence)
			return nil
		},
	}

	cmd.Flags().Int("length", generate.DefaultLength, "words to generate after the seed")
	cmd.Flags().Uint64("seed", 0, "random seed for reproducible output, 0 picks one")
	return cmd
}

func fetchCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the novel and stoplist into the text cache",
		Long: `Download the novel and the common-words list into the SQLite text
cache so later runs work offline. Requires --cache or cache_path.

Example:
  novelstat fetch --cache novelstat.db
  novelstat fetch --cache novelstat.db --refresh`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			refresh, _ := cmd.Flags().GetBool("refresh")

			cfg, err := g.config(cmd)
			if err != nil {
				return err
			}
			if cfg.CachePath == "" {
				return fmt.Errorf("fetch needs a cache: set --cache or cache_path")
			}

			ctx := cmd.Context()
			comp, err := (&config.Loader{Config: cfg}).Load(ctx)
			if err != nil {
				return err
			}
			defer comp.Close()

			out := cmd.OutOrStdout()
			if len(comp.Cached) == 0 {
				fmt.Fprintln(out, "Nothing to fetch: the novel is a local file and no stoplist URL is set")
				return nil
			}
			for _, c := range comp.Cached {
				info, err := c.Warm(ctx, refresh)
				if err != nil {
					return err
				}
				log.Printf("cached %s as %s", info.URL, info.ID)
				fmt.Fprintf(out, "%s: %d lines, fetched %s\n", info.URL, info.LineCount, info.FetchedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}

	cmd.Flags().Bool("refresh", false, "download again even when cached")
	return cmd
}
