// Package fetcher retrieves page content through an ordered chain of
// strategies: a direct HTTP fetch, the public Notion rendering proxy, and a
// reader-snapshot fallback. Strategies run strictly in order and the chain
// stops at the first one that yields sufficient content.
package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/urlmark/urlmark/pkg/normalizer"
)

// Document is the content a strategy produced.
type Document struct {
	// HTML is the retrieved (or proxy-normalized) markup.
	HTML string
	// FinalURL is the URL after redirects and rewrites.
	FinalURL string
	// StatusCode is the upstream HTTP status, 0 when not applicable.
	StatusCode int
	// PreRendered marks reader snapshots whose body is already extracted
	// text; such documents bypass sanitization and extraction.
	PreRendered bool
}

// Outcome is the tagged result of one strategy run.
type Outcome struct {
	doc    *Document
	reason string
	err    error
}

// Sufficient wraps a document that passed the sufficiency check.
func Sufficient(doc Document) Outcome { return Outcome{doc: &doc} }

// Insufficient records a completed fetch whose content is not usable.
func Insufficient(reason string) Outcome { return Outcome{reason: reason} }

// Failed records a fetch that did not complete.
func Failed(err error) Outcome { return Outcome{err: err} }

// Strategy is one retrieval method in the chain.
type Strategy interface {
	// Name identifies the strategy in attempt records and result metadata.
	Name() string

	// Applies reports whether the strategy can handle the target at all.
	Applies(target normalizer.Result) bool

	// Fetch retrieves the target and judges the result.
	Fetch(ctx context.Context, target normalizer.Result) Outcome
}

// Attempt is the audit record of one strategy, kept for error diagnostics
// and surfaced on chain exhaustion.
type Attempt struct {
	Strategy string `json:"strategy"`
	URL      string `json:"url"`
	Status   int    `json:"status,omitempty"`
	OK       bool   `json:"ok"`
	Reason   string `json:"reason,omitempty"`
}

// ExhaustedError reports that every strategy failed or produced insufficient
// content. Attempts preserves the order in which strategies ran.
type ExhaustedError struct {
	Attempts []Attempt
}

func (e *ExhaustedError) Error() string {
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = a.Strategy + ": " + a.Reason
	}
	return "all fetch strategies exhausted (" + strings.Join(parts, "; ") + ")"
}

// Config holds the shared settings for all strategies. The HTTP client is
// injected so tests can point strategies at local servers.
type Config struct {
	// UserAgent sent on every outbound request.
	UserAgent string
	// Timeout bounds the direct fetch.
	Timeout time.Duration
	// ProxyTimeout bounds the Notion proxy and reader snapshot fetches.
	ProxyTimeout time.Duration
	// MinTextChars is the sufficiency threshold: a document needs at least
	// this many characters of visible text to stop the chain.
	MinTextChars int
	// NotionAPIBase is the Notion rendering proxy endpoint.
	NotionAPIBase string
	// JinaBase is the reader snapshot endpoint.
	JinaBase string
	// Client is used by the proxy strategies.
	Client *http.Client
}

// DefaultConfig returns production settings for the chain.
func DefaultConfig() Config {
	return Config{
		UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 13_5) " +
			"AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.5 Safari/605.1.15",
		Timeout:       15 * time.Second,
		ProxyTimeout:  20 * time.Second,
		MinTextChars:  140,
		NotionAPIBase: "https://notion-api.splitbee.io",
		JinaBase:      "https://r.jina.ai",
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.UserAgent == "" {
		c.UserAgent = defaults.UserAgent
	}
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
	if c.ProxyTimeout == 0 {
		c.ProxyTimeout = defaults.ProxyTimeout
	}
	if c.MinTextChars == 0 {
		c.MinTextChars = defaults.MinTextChars
	}
	if c.NotionAPIBase == "" {
		c.NotionAPIBase = defaults.NotionAPIBase
	}
	if c.JinaBase == "" {
		c.JinaBase = defaults.JinaBase
	}
	if c.Client == nil {
		c.Client = &http.Client{Timeout: c.ProxyTimeout}
	}
	return c
}

func (c Config) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	return req, nil
}
