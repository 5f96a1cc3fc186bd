package fetcher

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urlmark/urlmark/internal/logger"
	"github.com/urlmark/urlmark/pkg/normalizer"
)

// JinaStrategy fetches a server-rendered snapshot from the public reader
// service. It is the last resort for any URL whose earlier strategies failed
// or returned an empty shell.
type JinaStrategy struct {
	cfg Config
}

// NewJina creates the reader-snapshot strategy.
func NewJina(cfg Config) *JinaStrategy {
	return &JinaStrategy{cfg: cfg.withDefaults()}
}

// Name implements Strategy.
func (s *JinaStrategy) Name() string { return "jina-reader" }

// Applies implements Strategy. The snapshot service accepts any URL.
func (s *JinaStrategy) Applies(normalizer.Result) bool { return true }

// Fetch retrieves the snapshot. HTML responses flow through the normal
// sanitize/extract pipeline; plain-text responses are already reader output
// and are marked pre-rendered.
func (s *JinaStrategy) Fetch(ctx context.Context, target normalizer.Result) Outcome {
	snapshotURL := strings.TrimSuffix(s.cfg.JinaBase, "/") + "/" + target.URL
	logger.Debug("reader snapshot fetch starting", "url", snapshotURL)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ProxyTimeout)
	defer cancel()

	req, err := s.cfg.newRequest(ctx, snapshotURL)
	if err != nil {
		return Failed(err)
	}
	resp, err := s.cfg.Client.Do(req)
	if err != nil {
		return Failed(fmt.Errorf("reader snapshot fetch: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Failed(fmt.Errorf("reader snapshot fetch: status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Failed(fmt.Errorf("reader snapshot fetch: reading body: %w", err))
	}

	content := string(body)
	doc := Document{
		HTML:        content,
		FinalURL:    target.URL,
		StatusCode:  resp.StatusCode,
		PreRendered: !isHTML(resp.Header.Get("Content-Type"), content),
	}
	return judge(doc, s.cfg.MinTextChars)
}

// isHTML decides whether a snapshot body is markup or already-extracted text.
func isHTML(contentType, body string) bool {
	if strings.Contains(contentType, "text/html") {
		return true
	}
	trimmed := strings.TrimSpace(body)
	return strings.HasPrefix(trimmed, "<!doctype") ||
		strings.HasPrefix(trimmed, "<!DOCTYPE") ||
		strings.HasPrefix(trimmed, "<html")
}
