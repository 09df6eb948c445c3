// Package feed provides RSS/Atom feed fetching and parsing for medium-posts.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/mmcdole/gofeed"
	"github.com/robertmeta/medium-posts/model"
)

// Fetcher handles fetching and parsing the publication feed.
type Fetcher struct {
	parser *gofeed.Parser
}

// Option configures a Fetcher.
type Option func(*gofeed.Parser)

// WithHTTPClient sets the client used for feed requests.
func WithHTTPClient(c *http.Client) Option {
	return func(p *gofeed.Parser) {
		p.Client = c
	}
}

// WithUserAgent overrides the User-Agent header sent with feed requests.
func WithUserAgent(ua string) Option {
	return func(p *gofeed.Parser) {
		if ua != "" {
			p.UserAgent = ua
		}
	}
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	parser := gofeed.NewParser()
	for _, opt := range opts {
		opt(parser)
	}
	return &Fetcher{
		parser: parser,
	}
}

// Fetch retrieves and parses a feed from a URL.
// Non-2xx responses surface as *gofeed.HTTPError inside the returned error.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]*model.FeedEntry, error) {
	parsedFeed, err := f.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed from %s: %w", url, err)
	}

	return convert(parsedFeed), nil
}

// Parse parses feed content from a string.
func (f *Fetcher) Parse(content string) ([]*model.FeedEntry, error) {
	if content == "" {
		return nil, fmt.Errorf("feed content is empty")
	}

	parsedFeed, err := f.parser.ParseString(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	return convert(parsedFeed), nil
}

// ParseReader parses feed content from a reader, e.g. a local feed file.
func (f *Fetcher) ParseReader(r io.Reader) ([]*model.FeedEntry, error) {
	parsedFeed, err := f.parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	return convert(parsedFeed), nil
}

// convert keeps feed order.
func convert(gf *gofeed.Feed) []*model.FeedEntry {
	entries := make([]*model.FeedEntry, 0, len(gf.Items))
	for _, item := range gf.Items {
		entries = append(entries, convertItem(item))
	}
	return entries
}

// convertItem converts a gofeed.Item to a model.FeedEntry.
func convertItem(item *gofeed.Item) *model.FeedEntry {
	entry := &model.FeedEntry{
		GUID:  item.GUID,
		Title: item.Title,
		Link:  item.Link,
	}

	if entry.GUID == "" {
		entry.GUID = item.Link
	}

	// Medium ships the full post in content:encoded
	if item.Content != "" {
		entry.Content = item.Content
	} else if item.Description != "" {
		entry.Content = item.Description
	}

	// Left zero when the entry carries no date at all
	if item.PublishedParsed != nil {
		entry.Published = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		entry.Published = *item.UpdatedParsed
	}

	return entry
}
