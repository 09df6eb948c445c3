package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/robertmeta/medium-posts/config"
	"github.com/robertmeta/medium-posts/feed"
	"github.com/robertmeta/medium-posts/ingest"
	"github.com/robertmeta/medium-posts/logger"
	"github.com/robertmeta/medium-posts/model"
	"github.com/robertmeta/medium-posts/site"
	"github.com/urfave/cli/v2"
)

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitUsageError   = 2
	ExitDataError    = 3
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitGeneralError)
	}
}

func newApp() *cli.App {
	buildFlags := []cli.Flag{
		&cli.BoolFlag{
			Name:  "skip-invalid",
			Usage: "Skip entries that cannot be converted instead of failing the run",
		},
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "Read the feed from a local file instead of fetching it",
		},
	}

	return &cli.App{
		Name:    "medium-posts",
		Usage:   "Materialize a Medium publication feed as site content documents",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "publication",
				Aliases: []string{"p"},
				Usage:   "Medium publication identifier",
				EnvVars: []string{"MEDIUM_PUBLICATION"},
			},
			&cli.StringFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   "Site source directory",
				EnvVars: []string{"SITE_SOURCE"},
			},
			&cli.StringFlag{
				Name:    "feed-base-url",
				Usage:   "Feed endpoint the publication is appended to",
				EnvVars: []string{"MEDIUM_FEED_BASE_URL"},
			},
			&cli.StringFlag{
				Name:    "user-agent",
				Usage:   "User-Agent header for feed requests",
				EnvVars: []string{"MEDIUM_USER_AGENT"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Fetch the feed and write one document per entry into the site source",
				Flags:  buildFlags,
				Action: runIngest,
			},
			{
				Name:   "list",
				Usage:  "Fetch the feed and print the documents without writing them",
				Flags:  buildFlags,
				Action: listDocuments,
			},
		},
	}
}

// loadConfig starts from the environment (and .env) and applies non-empty global flags on top.
func loadConfig(c *cli.Context) *config.Config {
	cfg := config.Load()
	override(c, "publication", &cfg.Publication)
	override(c, "source", &cfg.SourceDir)
	override(c, "feed-base-url", &cfg.FeedBaseURL)
	override(c, "user-agent", &cfg.UserAgent)
	return cfg
}

func override(c *cli.Context, name string, dst *string) {
	if v := c.String(name); v != "" {
		*dst = v
	}
}

// fileSource serves entries from a local feed file, ignoring the URL.
type fileSource struct {
	path    string
	fetcher *feed.Fetcher
}

func (s *fileSource) Fetch(_ context.Context, _ string) ([]*model.FeedEntry, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed file: %w", err)
	}
	defer file.Close()

	return s.fetcher.ParseReader(file)
}

func newPipeline(c *cli.Context, cfg *config.Config) (*ingest.Pipeline, *slog.Logger) {
	log := logger.New(os.Stderr, c.String("log-level"))
	fetcher := feed.NewFetcher(feed.WithUserAgent(cfg.UserAgent))

	var source ingest.Source = fetcher
	if path := c.String("file"); path != "" {
		source = &fileSource{path: path, fetcher: fetcher}
	}
	return ingest.New(source, log), log
}

type skippedEntry struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Error string `json:"error"`
}

// buildCollection runs the pipeline into a fresh collection. With skip-invalid,
// entries that fail conversion are reported instead of aborting the run.
func buildCollection(c *cli.Context, p *ingest.Pipeline, cfg *config.Config) (*model.Collection, []skippedEntry, error) {
	coll := model.NewCollection(model.CollectionName)

	if !c.Bool("skip-invalid") {
		if err := p.Ingest(c.Context, cfg, coll); err != nil {
			return nil, nil, err
		}
		return coll, nil, nil
	}

	results, err := p.Collect(c.Context, cfg)
	if err != nil {
		return nil, nil, err
	}

	skipped := []skippedEntry{}
	for i, res := range results {
		if res.Err != nil {
			skipped = append(skipped, skippedEntry{Index: i, Title: res.Entry.Title, Error: res.Err.Error()})
			continue
		}
		coll.Append(res.Document)
	}
	return coll, skipped, nil
}

// exitCode maps pipeline error kinds to process exit codes.
func exitCode(err error) int {
	var cfgErr *config.ConfigError
	var fetchErr *ingest.FetchError
	var extractErr *ingest.ExtractionError

	switch {
	case errors.As(err, &cfgErr):
		return ExitUsageError
	case errors.As(err, &fetchErr), errors.As(err, &extractErr):
		return ExitDataError
	default:
		return ExitGeneralError
	}
}

func outputJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func runIngest(c *cli.Context) error {
	cfg := loadConfig(c)
	p, log := newPipeline(c, cfg)

	coll, skipped, err := buildCollection(c, p, cfg)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to ingest feed: %v", err), exitCode(err))
	}

	written, err := site.NewWriter(cfg.SourceDir).Write(coll)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to write documents: %v", err), ExitDataError)
	}
	log.Info("documents written", "count", len(written), "source", cfg.SourceDir)

	return outputJSON(map[string]interface{}{
		"success":    true,
		"collection": coll.Name,
		"count":      coll.Len(),
		"written":    written,
		"skipped":    skipped,
	})
}

func listDocuments(c *cli.Context) error {
	cfg := loadConfig(c)
	p, _ := newPipeline(c, cfg)

	coll, skipped, err := buildCollection(c, p, cfg)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to ingest feed: %v", err), exitCode(err))
	}

	return outputJSON(map[string]interface{}{
		"collection": coll.Name,
		"count":      coll.Len(),
		"documents":  coll.Docs(),
		"skipped":    skipped,
	})
}
