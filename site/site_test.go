package site

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/robertmeta/medium-posts/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func helloWorldDoc() *model.Document {
	return &model.Document{
		Path:        "medium_posts/Hello-World.md",
		Layout:      model.Layout,
		Title:       "Hello World",
		TitleImage:  "https://img/1.png",
		FeedContent: "<p><img src='https://img/1.png'/>body</p>",
		OriginalURL: "https://medium.com/@x/hello-world",
		Date:        time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// frontMatter extracts and decodes the YAML between the delimiters.
func frontMatter(t *testing.T, data []byte) map[string]interface{} {
	t.Helper()
	require.True(t, bytes.HasPrefix(data, []byte("---\n")))
	require.True(t, bytes.HasSuffix(data, []byte("---\n")))

	body := bytes.TrimSuffix(bytes.TrimPrefix(data, []byte("---\n")), []byte("---\n"))
	var fm map[string]interface{}
	require.NoError(t, yaml.Unmarshal(body, &fm))
	return fm
}

func TestRender_FrontMatter(t *testing.T) {
	data, err := Render(helloWorldDoc())
	require.NoError(t, err)

	fm := frontMatter(t, data)
	assert.Len(t, fm, 6)
	assert.Equal(t, "medium_post", fm["layout"])
	assert.Equal(t, "Hello World", fm["title"])
	assert.Equal(t, "https://img/1.png", fm["title_image"])
	assert.Equal(t, "<p><img src='https://img/1.png'/>body</p>", fm["feed_content"])
	assert.Equal(t, "https://medium.com/@x/hello-world", fm["original_url"])
	assert.NotContains(t, fm, "path")

	// Typed decoding gives the timestamp back
	var doc model.Document
	body := bytes.TrimSuffix(bytes.TrimPrefix(data, []byte("---\n")), []byte("---\n"))
	require.NoError(t, yaml.Unmarshal(body, &doc))
	assert.True(t, doc.Date.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestWriter_WritesCollection(t *testing.T) {
	root := t.TempDir()

	second := helloWorldDoc()
	second.Title = "Second Post"
	second.Path = model.DocumentPath(second.Title)

	coll := model.NewCollection(model.CollectionName)
	coll.Append(helloWorldDoc(), second)

	written, err := NewWriter(root).Write(coll)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(root, "medium_posts", "Hello-World.md"),
		filepath.Join(root, "medium_posts", "Second-Post.md"),
	}, written)

	data, err := os.ReadFile(written[1])
	require.NoError(t, err)
	assert.Equal(t, "Second Post", frontMatter(t, data)["title"])
}

func TestWriter_DuplicatePathLastWins(t *testing.T) {
	root := t.TempDir()

	first := helloWorldDoc()
	last := helloWorldDoc()
	last.OriginalURL = "https://medium.com/@x/hello-world-again"

	coll := model.NewCollection(model.CollectionName)
	coll.Append(first, last)

	written, err := NewWriter(root).Write(coll)
	require.NoError(t, err)
	assert.Len(t, written, 2)

	entries, err := os.ReadDir(filepath.Join(root, "medium_posts"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(root, "medium_posts", "Hello-World.md"))
	require.NoError(t, err)
	assert.Equal(t, "https://medium.com/@x/hello-world-again", frontMatter(t, data)["original_url"])
}

func TestWriter_RejectsEscapingPath(t *testing.T) {
	root := t.TempDir()

	doc := helloWorldDoc()
	doc.Path = model.DocumentPath("../../etc/passwd")

	coll := model.NewCollection(model.CollectionName)
	coll.Append(doc)

	written, err := NewWriter(root).Write(coll)
	assert.Error(t, err)
	assert.Empty(t, written)
}

func TestWriter_TitleWithSlashCreatesSubdirectory(t *testing.T) {
	root := t.TempDir()

	doc := helloWorldDoc()
	doc.Path = model.DocumentPath("Go/Rust comparison")

	coll := model.NewCollection(model.CollectionName)
	coll.Append(doc)

	written, err := NewWriter(root).Write(coll)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "medium_posts", "Go", "Rust-comparison.md")}, written)
}
