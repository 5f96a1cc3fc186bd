package reader

import "fmt"

// InvalidURLError reports input that is not a fetchable absolute URL. No
// fetch is attempted when this is returned.
type InvalidURLError struct {
	URL    string
	Reason string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid url %q: %s", e.URL, e.Reason)
}

// ExtractionError reports that content was fetched but no usable text could
// be extracted from it.
type ExtractionError struct {
	URL string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting content from %s: %v", e.URL, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// RenderError reports that extraction succeeded but Markdown conversion
// failed. No partial Markdown is returned.
type RenderError struct {
	URL string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering markdown for %s: %v", e.URL, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
