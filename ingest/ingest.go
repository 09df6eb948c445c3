// Package ingest turns a Medium publication feed into site content documents.
//
// A run fetches the feed once and derives one document per entry, in feed
// order. Build and Ingest are all-or-nothing: the first entry that cannot be
// converted fails the whole batch and nothing is handed to the collection.
// Collect is the per-entry alternative that reports failures alongside the
// documents that could be built.
package ingest

import (
	"context"
	"log/slog"

	"github.com/robertmeta/medium-posts/config"
	"github.com/robertmeta/medium-posts/model"
)

// Source fetches the entries of a feed.
type Source interface {
	Fetch(ctx context.Context, url string) ([]*model.FeedEntry, error)
}

// Pipeline is the feed ingestion pipeline.
type Pipeline struct {
	source Source
	log    *slog.Logger
}

// Result is the outcome of converting a single entry.
type Result struct {
	Entry    *model.FeedEntry `json:"-"`
	Document *model.Document  `json:"document,omitempty"`
	Err      error            `json:"-"`
}

// New creates a Pipeline reading from source.
func New(source Source, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{source: source, log: log}
}

// Ingest builds the documents for cfg's publication and appends them to coll.
// coll is left untouched when any step fails.
func (p *Pipeline) Ingest(ctx context.Context, cfg *config.Config, coll *model.Collection) error {
	docs, err := p.Build(ctx, cfg)
	if err != nil {
		return err
	}
	coll.Append(docs...)
	p.log.Info("collection populated", "collection", coll.Name, "added", len(docs), "total", coll.Len())
	return nil
}

// Build fetches the feed and converts every entry, stopping at the first failure.
func (p *Pipeline) Build(ctx context.Context, cfg *config.Config) ([]*model.Document, error) {
	entries, err := p.fetch(ctx, cfg)
	if err != nil {
		return nil, err
	}

	docs := make([]*model.Document, 0, len(entries))
	for i, entry := range entries {
		doc, err := p.document(i, entry)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Collect fetches the feed and converts every entry independently.
// Configuration and fetch failures still fail the call.
func (p *Pipeline) Collect(ctx context.Context, cfg *config.Config) ([]Result, error) {
	entries, err := p.fetch(ctx, cfg)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(entries))
	for i, entry := range entries {
		doc, err := p.document(i, entry)
		if err != nil {
			p.log.Warn("skipping entry", "index", i, "title", entry.Title, "err", err)
		}
		results = append(results, Result{Entry: entry, Document: doc, Err: err})
	}
	return results, nil
}

func (p *Pipeline) fetch(ctx context.Context, cfg *config.Config) ([]*model.FeedEntry, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	url := cfg.FeedURL()
	p.log.Debug("fetching feed", "url", url)

	entries, err := p.source.Fetch(ctx, url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	p.log.Info("feed fetched", "url", url, "entries", len(entries))
	return entries, nil
}

func (p *Pipeline) document(i int, entry *model.FeedEntry) (*model.Document, error) {
	p.log.Info("entry", "title", entry.Title, "url", entry.Link)

	src, ok, err := FirstImage(entry.Content)
	if err != nil {
		return nil, &ExtractionError{Index: i, Title: entry.Title, Field: "title_image", Err: err}
	}
	if !ok {
		return nil, &ExtractionError{Index: i, Title: entry.Title, Field: "title_image", Err: ErrNoImage}
	}
	if src == "" {
		p.log.Warn("first image has no src", "title", entry.Title)
	}
	p.log.Debug("title image", "title", entry.Title, "src", src)

	if entry.Published.IsZero() {
		return nil, &ExtractionError{Index: i, Title: entry.Title, Field: "date", Err: ErrNoDate}
	}

	return &model.Document{
		Path:        model.DocumentPath(entry.Title),
		Layout:      model.Layout,
		Title:       entry.Title,
		TitleImage:  src,
		FeedContent: entry.Content,
		OriginalURL: entry.Link,
		Date:        entry.Published,
	}, nil
}
