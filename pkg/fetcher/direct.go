package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/urlmark/urlmark/internal/logger"
	"github.com/urlmark/urlmark/pkg/normalizer"
)

// DirectStrategy performs a plain HTTP GET with a browser user agent,
// following redirects. It is the first strategy for every URL.
type DirectStrategy struct {
	cfg Config
}

// NewDirect creates the direct-fetch strategy.
func NewDirect(cfg Config) *DirectStrategy {
	return &DirectStrategy{cfg: cfg.withDefaults()}
}

// Name implements Strategy.
func (s *DirectStrategy) Name() string { return "direct" }

// Applies implements Strategy. Direct fetch applies to every URL.
func (s *DirectStrategy) Applies(normalizer.Result) bool { return true }

// Fetch retrieves the target with a fresh collector per request, so no
// cookie or visit state leaks across conversions.
func (s *DirectStrategy) Fetch(ctx context.Context, target normalizer.Result) Outcome {
	logger.Debug("direct fetch starting", "url", target.URL)

	c := colly.NewCollector(
		colly.UserAgent(s.cfg.UserAgent),
	)
	c.SetRequestTimeout(s.timeout(ctx))

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})

	doc := Document{FinalURL: target.URL}
	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		doc.StatusCode = r.StatusCode
		doc.HTML = string(r.Body)
		// Redirects are followed by the collector; the request URL is the
		// final resolved location.
		doc.FinalURL = r.Request.URL.String()
		logger.Debug("direct fetch response",
			"status", r.StatusCode,
			"final_url", doc.FinalURL,
			"body_size", len(r.Body))
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			doc.StatusCode = r.StatusCode
		}
		fetchErr = err
	})

	if err := ctx.Err(); err != nil {
		return Failed(err)
	}
	if err := c.Visit(target.URL); err != nil {
		return Failed(fmt.Errorf("direct fetch of %s: %w", target.URL, err))
	}
	if fetchErr != nil {
		return Failed(fmt.Errorf("direct fetch of %s: status %d: %w", target.URL, doc.StatusCode, fetchErr))
	}
	if doc.StatusCode < 200 || doc.StatusCode >= 300 {
		return Failed(fmt.Errorf("direct fetch of %s: status %d", target.URL, doc.StatusCode))
	}

	return judge(doc, s.cfg.MinTextChars)
}

// timeout derives the request timeout from the context deadline when one is
// set, bounded by the configured timeout.
func (s *DirectStrategy) timeout(ctx context.Context) time.Duration {
	timeout := s.cfg.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	return timeout
}
