// Package model defines the core data structures for medium-posts.
package model

import (
	"strings"
	"time"
)

const (
	// CollectionName is the site collection (and source subdirectory) documents land in.
	CollectionName = "medium_posts"
	// Layout is the layout identifier every generated document carries.
	Layout = "medium_post"
	// DocumentExt is appended to every derived document path.
	DocumentExt = ".md"
)

// FeedEntry represents a single entry of the publication feed.
type FeedEntry struct {
	GUID      string    `json:"guid"`
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Content   string    `json:"content"`
	Published time.Time `json:"published"`
}

// Document is a content document handed to the site generator.
type Document struct {
	Path        string    `json:"path" yaml:"-"`
	Layout      string    `json:"layout" yaml:"layout"`
	Title       string    `json:"title" yaml:"title"`
	TitleImage  string    `json:"title_image" yaml:"title_image"`
	FeedContent string    `json:"feed_content" yaml:"feed_content"`
	OriginalURL string    `json:"original_url" yaml:"original_url"`
	Date        time.Time `json:"date" yaml:"date"`
}

// DocumentPath derives a document's path from its title: spaces become
// hyphens and the result lives under the collection directory.
func DocumentPath(title string) string {
	return CollectionName + "/" + strings.ReplaceAll(title, " ", "-") + DocumentExt
}

// Collection is a named, ordered sequence of documents.
type Collection struct {
	Name string
	docs []*Document
}

// NewCollection creates an empty collection.
func NewCollection(name string) *Collection {
	return &Collection{Name: name}
}

// Append adds documents to the end of the collection, in order.
func (c *Collection) Append(docs ...*Document) {
	c.docs = append(c.docs, docs...)
}

// Docs returns the documents in insertion order.
func (c *Collection) Docs() []*Document {
	return c.docs
}

// Len returns the number of documents.
func (c *Collection) Len() int {
	return len(c.docs)
}

// Lookup returns the last appended document with the given path.
func (c *Collection) Lookup(path string) (*Document, bool) {
	for i := len(c.docs) - 1; i >= 0; i-- {
		if c.docs[i].Path == path {
			return c.docs[i], true
		}
	}
	return nil, false
}
