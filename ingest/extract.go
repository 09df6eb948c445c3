package ingest

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FirstImage returns the src of the first img element in body, in document order.
// ok is false when body contains no img element at all. An img without a src
// attribute yields ok=true and an empty src.
func FirstImage(body string) (src string, ok bool, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("failed to parse entry content: %w", err)
	}

	img := doc.Find("img").First()
	if img.Length() == 0 {
		return "", false, nil
	}

	src, _ = img.Attr("src")
	return src, true, nil
}
