package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/urlmark/urlmark/internal/logger"
	"github.com/urlmark/urlmark/pkg/normalizer"
	"github.com/urlmark/urlmark/pkg/notion"
)

// NotionStrategy retrieves Notion pages through the public rendering proxy.
// It only applies to Notion hosts, after the direct fetch came back as a
// client-rendered shell.
type NotionStrategy struct {
	cfg Config
}

// NewNotion creates the Notion-proxy strategy.
func NewNotion(cfg Config) *NotionStrategy {
	return &NotionStrategy{cfg: cfg.withDefaults()}
}

// Name implements Strategy.
func (s *NotionStrategy) Name() string { return "notion-api" }

// Applies implements Strategy: the target must be a Notion host with an
// extractable page identifier.
func (s *NotionStrategy) Applies(target normalizer.Result) bool {
	parsed, err := url.Parse(target.URL)
	if err != nil {
		return false
	}
	if !normalizer.IsNotionHost(parsed.Hostname()) {
		return false
	}
	_, ok := normalizer.NotionPageID(target.URL)
	return ok
}

// Fetch resolves the page through the proxy and renders its record map into
// normalized HTML for the rest of the pipeline.
func (s *NotionStrategy) Fetch(ctx context.Context, target normalizer.Result) Outcome {
	pageID, ok := normalizer.NotionPageID(target.URL)
	if !ok {
		return Failed(fmt.Errorf("no notion page id in %s", target.URL))
	}

	apiURL := s.cfg.NotionAPIBase + "/v1/page/" + strings.ReplaceAll(pageID, "-", "")
	logger.Debug("notion proxy fetch starting", "url", apiURL, "page_id", pageID)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ProxyTimeout)
	defer cancel()

	req, err := s.cfg.newRequest(ctx, apiURL)
	if err != nil {
		return Failed(err)
	}
	resp, err := s.cfg.Client.Do(req)
	if err != nil {
		return Failed(fmt.Errorf("notion proxy fetch: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Failed(fmt.Errorf("notion proxy fetch: status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Failed(fmt.Errorf("notion proxy fetch: reading body: %w", err))
	}

	recordMap, err := notion.ParseRecordMap(body)
	if err != nil {
		return Failed(err)
	}
	html, err := recordMap.RenderHTML()
	if err != nil {
		return Failed(err)
	}

	doc := Document{
		HTML:       html,
		FinalURL:   target.URL,
		StatusCode: resp.StatusCode,
	}
	return judge(doc, s.cfg.MinTextChars)
}
