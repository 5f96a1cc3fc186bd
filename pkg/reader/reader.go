// Package reader wires the conversion pipeline together: URL normalization,
// the fetch strategy chain, sanitization, article extraction and Markdown
// rendering. One call to Convert yields exactly one Result or a typed error.
package reader

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/urlmark/urlmark/internal/logger"
	"github.com/urlmark/urlmark/pkg/extractor"
	"github.com/urlmark/urlmark/pkg/fetcher"
	"github.com/urlmark/urlmark/pkg/normalizer"
	"github.com/urlmark/urlmark/pkg/renderer"
	"github.com/urlmark/urlmark/pkg/sanitizer"
)

// Result is the externally visible conversion output.
type Result struct {
	SourceURL string            `json:"source_url"`
	FinalURL  string            `json:"final_url"`
	Title     string            `json:"title"`
	WordCount int               `json:"word_count"`
	Metadata  map[string]string `json:"metadata"`
	Markdown  string            `json:"markdown"`
}

// Config configures the pipeline stages.
type Config struct {
	Fetch    fetcher.Config
	Sanitize sanitizer.Config
	Extract  extractor.Config
}

// Chain is the fetch dependency of the Reader, satisfied by *fetcher.Chain
// and replaceable in tests.
type Chain interface {
	Fetch(ctx context.Context, target normalizer.Result) (fetcher.Document, string, []fetcher.Attempt, error)
}

// Reader converts URLs into Markdown.
type Reader struct {
	chain     Chain
	sanitizer *sanitizer.Sanitizer
	extractor *extractor.Extractor
	renderer  *renderer.Renderer
}

// New creates a Reader with the standard strategy chain.
func New(cfg Config) *Reader {
	return NewWithChain(fetcher.NewChain(cfg.Fetch), cfg)
}

// NewWithChain creates a Reader around an explicit chain.
func NewWithChain(chain Chain, cfg Config) *Reader {
	return &Reader{
		chain:     chain,
		sanitizer: sanitizer.New(cfg.Sanitize),
		extractor: extractor.New(cfg.Extract),
		renderer:  renderer.New(),
	}
}

// Convert runs the full pipeline for rawURL.
func (r *Reader) Convert(ctx context.Context, rawURL string) (*Result, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	target := normalizer.Normalize(rawURL)
	if target.Rule != normalizer.RuleNone {
		logger.Debug("url rewritten", "source", rawURL, "target", target.URL, "rule", target.Rule)
	}

	doc, strategy, attempts, err := r.chain.Fetch(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	logger.Info("content fetched",
		"url", rawURL, "strategy", strategy, "attempts", len(attempts))

	metadata := map[string]string{
		"normalizer": string(target.Rule),
		"renderer":   strategy,
	}

	if doc.PreRendered {
		return r.assemblePreRendered(rawURL, doc, metadata)
	}

	sanitized, err := r.sanitizer.Sanitize(doc.HTML)
	if err != nil {
		// Parse failures degrade; the extractor works on the raw input.
		sanitized = doc.HTML
	}

	article, err := r.extractor.Extract(sanitized, doc.FinalURL)
	if err != nil {
		return nil, &ExtractionError{URL: rawURL, Err: err}
	}

	markdown, err := r.renderer.Render(article.BodyHTML)
	if err != nil {
		return nil, &RenderError{URL: rawURL, Err: err}
	}
	if markdown == "" {
		return nil, &ExtractionError{URL: rawURL, Err: extractor.ErrNoContent}
	}

	return &Result{
		SourceURL: rawURL,
		FinalURL:  doc.FinalURL,
		Title:     article.Title,
		WordCount: article.WordCount,
		Metadata:  metadata,
		Markdown:  markdown,
	}, nil
}

// assemblePreRendered packages a reader snapshot whose body is already
// extracted text.
func (r *Reader) assemblePreRendered(rawURL string, doc fetcher.Document, metadata map[string]string) (*Result, error) {
	markdown := renderer.Tidy(doc.HTML)
	if markdown == "" {
		return nil, &ExtractionError{URL: rawURL, Err: extractor.ErrNoContent}
	}
	return &Result{
		SourceURL: rawURL,
		FinalURL:  doc.FinalURL,
		Title:     snapshotTitle(markdown),
		WordCount: len(strings.Fields(markdown)),
		Metadata:  metadata,
		Markdown:  markdown,
	}, nil
}

// snapshotTitle pulls a title out of reader-service output, which prefixes
// snapshots with a "Title:" line, or falls back to the first heading.
func snapshotTitle(markdown string) string {
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if after, ok := strings.CutPrefix(line, "Title:"); ok {
			return strings.TrimSpace(after)
		}
		if after, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(after)
		}
	}
	return ""
}

func validateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return &InvalidURLError{URL: rawURL, Reason: err.Error()}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &InvalidURLError{URL: rawURL, Reason: "scheme must be http or https"}
	}
	if parsed.Host == "" {
		return &InvalidURLError{URL: rawURL, Reason: "missing host"}
	}
	return nil
}
