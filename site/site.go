// Package site materializes a document collection inside a static site's source tree.
package site

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/robertmeta/medium-posts/model"
	"gopkg.in/yaml.v3"
)

const frontMatterDelim = "---\n"

// Render produces the document file: YAML front matter and an empty body.
func Render(doc *model.Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(frontMatterDelim)

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode front matter for %s: %w", doc.Path, err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode front matter for %s: %w", doc.Path, err)
	}

	buf.WriteString(frontMatterDelim)
	return buf.Bytes(), nil
}

// Writer writes documents under a site source directory.
type Writer struct {
	Root string
}

// NewWriter creates a Writer rooted at the site source directory.
func NewWriter(root string) *Writer {
	return &Writer{Root: root}
}

// Write renders every document in collection order and writes it to Root/<path>.
// Existing files are overwritten, so a later document with the same path wins.
// It returns the written file paths in order.
func (w *Writer) Write(coll *model.Collection) ([]string, error) {
	var written []string
	for _, doc := range coll.Docs() {
		target, err := w.resolve(doc.Path)
		if err != nil {
			return written, err
		}

		data, err := Render(doc)
		if err != nil {
			return written, err
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return written, fmt.Errorf("failed to create directory for %s: %w", doc.Path, err)
		}
		if err := os.WriteFile(target, data, 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", target, err)
		}
		written = append(written, target)
	}
	return written, nil
}

// resolve maps a slash-separated document path into Root, refusing paths that escape it.
func (w *Writer) resolve(docPath string) (string, error) {
	root := w.Root
	if root == "" {
		root = "."
	}

	target := filepath.Join(root, filepath.FromSlash(docPath))
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", docPath, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("document path %s escapes source directory %s", docPath, root)
	}
	return target, nil
}
