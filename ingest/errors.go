package ingest

import (
	"errors"
	"fmt"
)

// ErrNoImage is wrapped by an ExtractionError when an entry body has no img element.
var ErrNoImage = errors.New("entry content has no img element")

// ErrNoDate is wrapped by an ExtractionError when an entry carries no publish date.
var ErrNoDate = errors.New("entry has no publish date")

// FetchError reports a failed feed request: network failure, non-2xx status or
// an unparseable feed envelope.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ExtractionError reports an entry that could not be turned into a document.
type ExtractionError struct {
	Index int
	Title string
	Field string
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("entry %d (%q): %s: %v", e.Index, e.Title, e.Field, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
