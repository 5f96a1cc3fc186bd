// Package sanitizer strips non-content markup from fetched HTML before
// article extraction. It removes scripts, styles, interactive widgets,
// navigation landmarks and known boilerplate containers while leaving the
// structure of article content (headings, paragraphs, lists, tables, links,
// images) intact.
package sanitizer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Config controls which node classes are stripped.
type Config struct {
	// RemoveTags are element names removed entirely, including their text.
	RemoveTags []string

	// RemoveSelectors are CSS selectors removed entirely.
	RemoveSelectors []string

	// ExtraSelectors are appended to RemoveSelectors, for per-site rules.
	ExtraSelectors []string
}

// DefaultConfig returns the selector set used by the conversion pipeline.
func DefaultConfig() Config {
	return Config{
		RemoveTags: []string{
			"script", "style", "noscript", "iframe", "svg", "canvas",
			"form", "button", "input", "select", "textarea",
			"video", "audio",
		},
		RemoveSelectors: []string{
			"header", "footer", "nav", "aside",
			"[role='navigation']", "[role='banner']", "[role='contentinfo']",
			"[aria-hidden='true']",
			// Cookie banners and ad slots by common class fragments.
			"[class*='cookie-banner']", "[class*='cookie-consent']",
			"[id*='cookie-banner']", "[class*='adsbygoogle']",
			// Notion and Google Docs chrome that survives the print view.
			".notion-topbar", ".notion-sidebar-container", ".notion-record-navbar",
			".kix-paginateddocumentheader", ".kix-paginateddocumentfooter",
		},
	}
}

// Sanitizer removes boilerplate from HTML documents.
type Sanitizer struct {
	cfg Config
}

// New creates a Sanitizer. A zero-value config falls back to DefaultConfig.
func New(cfg Config) *Sanitizer {
	if len(cfg.RemoveTags) == 0 && len(cfg.RemoveSelectors) == 0 {
		defaults := DefaultConfig()
		defaults.ExtraSelectors = cfg.ExtraSelectors
		cfg = defaults
	}
	return &Sanitizer{cfg: cfg}
}

// Sanitize returns rawHTML with all configured boilerplate removed.
// It is idempotent: sanitizing already-sanitized HTML is a no-op. Unparseable
// input is returned unchanged so the extractor can degrade on whatever the
// parser salvaged.
func (s *Sanitizer) Sanitize(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return rawHTML, err
	}

	s.Apply(doc)

	return doc.Html()
}

// Apply performs the removal pass on an already-parsed document, for callers
// that keep working on the same DOM afterwards.
func (s *Sanitizer) Apply(doc *goquery.Document) {
	doc.Find(strings.Join(s.cfg.RemoveTags, ", ")).Remove()

	for _, sel := range s.cfg.RemoveSelectors {
		doc.Find(sel).Remove()
	}
	for _, sel := range s.cfg.ExtraSelectors {
		doc.Find(sel).Remove()
	}

	removeComments(doc)
}

// removeComments drops HTML comment nodes, which goquery selectors cannot
// reach.
func removeComments(doc *goquery.Document) {
	var strip func(n *html.Node)
	strip = func(n *html.Node) {
		child := n.FirstChild
		for child != nil {
			next := child.NextSibling
			if child.Type == html.CommentNode {
				n.RemoveChild(child)
			} else {
				strip(child)
			}
			child = next
		}
	}
	for _, n := range doc.Nodes {
		strip(n)
	}
}
