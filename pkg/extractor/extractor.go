// Package extractor locates the article content inside sanitized HTML and
// derives the title, body and word count used by the conversion result.
package extractor

import (
	"bytes"
	"errors"
	"net/url"
	"strings"

	readability "codeberg.org/readeck/go-readability/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/yosssi/gohtml"
	"golang.org/x/net/html"
)

// ErrNoContent is returned when no usable text can be extracted.
var ErrNoContent = errors.New("no extractable content")

// Article is the extraction result.
type Article struct {
	// Title of the page; may be empty when the document carries none.
	Title string
	// BodyHTML is the HTML of the most content-dense container.
	BodyHTML string
	// BodyText is the plain text of BodyHTML.
	BodyText string
	// WordCount is the whitespace-separated token count of BodyText.
	WordCount int
}

// Config tunes the readability parser.
type Config struct {
	// CharThreshold is the minimum character count readability accepts as
	// valid content.
	CharThreshold int
	// NTopCandidates is the number of top candidates readability weighs.
	NTopCandidates int
}

// DefaultConfig returns the parser settings used by the pipeline.
func DefaultConfig() Config {
	return Config{
		CharThreshold:  140,
		NTopCandidates: 5,
	}
}

// Extractor derives articles from sanitized HTML.
type Extractor struct {
	cfg Config
}

// New creates an Extractor. A zero-value config falls back to DefaultConfig.
func New(cfg Config) *Extractor {
	if cfg.CharThreshold == 0 {
		cfg.CharThreshold = DefaultConfig().CharThreshold
	}
	if cfg.NTopCandidates == 0 {
		cfg.NTopCandidates = DefaultConfig().NTopCandidates
	}
	return &Extractor{cfg: cfg}
}

// selectors checked before density scoring, most specific first. These match
// the containers Notion and Google Docs render article bodies into.
var mainContentSelectors = []string{
	".notion-page-content",
	".notion-page-block",
	".kix-appview-editor",
	"#contents",
	"#doc-contents",
	"article",
	"main",
	"[role='main']",
}

// Extract parses sanitizedHTML and returns the article it contains.
// Malformed or partial markup degrades to whatever parses; ErrNoContent is
// returned only when the document has no text at all.
func (e *Extractor) Extract(sanitizedHTML, baseURL string) (Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sanitizedHTML))
	if err != nil {
		return Article{}, ErrNoContent
	}

	article := Article{Title: titleOf(doc)}

	if body, ok := e.readabilityBody(sanitizedHTML, baseURL); ok {
		article.BodyHTML = body
	} else if sel := pickContentNode(doc); sel != nil {
		if body, err := goquery.OuterHtml(sel); err == nil {
			article.BodyHTML = body
		}
	}

	if article.BodyHTML == "" {
		return Article{}, ErrNoContent
	}

	bodyDoc, err := goquery.NewDocumentFromReader(strings.NewReader(article.BodyHTML))
	if err != nil {
		return Article{}, ErrNoContent
	}
	article.BodyText = collapseSpace(bodyDoc.Text())
	article.WordCount = len(strings.Fields(article.BodyText))

	if article.WordCount == 0 {
		return Article{}, ErrNoContent
	}
	if article.Title == "" {
		article.Title = firstHeading(bodyDoc)
	}
	if article.Title == "" {
		// Readability may strip a leading h1 it considers a duplicate of the
		// title, so look in the pre-extraction document too.
		article.Title = firstHeading(doc)
	}
	return article, nil
}

// readabilityBody runs the readability parser and returns the extracted HTML,
// or false when readability found nothing worth keeping.
func (e *Extractor) readabilityBody(sanitizedHTML, baseURL string) (string, bool) {
	parser := readability.NewParser()
	parser.CharThresholds = e.cfg.CharThreshold
	parser.NTopCandidates = e.cfg.NTopCandidates

	var base *url.URL
	if baseURL != "" {
		base, _ = url.Parse(baseURL)
	}

	parsed, err := parser.Parse(strings.NewReader(sanitizedHTML), base)
	if err != nil || parsed.Node == nil {
		return "", false
	}

	var buf bytes.Buffer
	if err := parsed.RenderHTML(&buf); err != nil {
		var nodeBuf bytes.Buffer
		if err := html.Render(&nodeBuf, parsed.Node); err != nil {
			return "", false
		}
		return gohtml.Format(nodeBuf.String()), true
	}
	if buf.Len() == 0 {
		return "", false
	}
	return buf.String(), true
}

// pickContentNode falls back to selector matching and then density scoring
// when readability declines the document (short pages, fragments).
func pickContentNode(doc *goquery.Document) *goquery.Selection {
	for _, selector := range mainContentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() > 0 && strings.TrimSpace(sel.Text()) != "" {
			return sel
		}
	}

	// Highest density wins; ties go to the earliest node in document order
	// because only a strictly better score replaces the current best.
	var best *goquery.Selection
	bestScore := 0
	doc.Find("div, section, td").Each(func(_ int, sel *goquery.Selection) {
		score := densityScore(sel)
		if score > bestScore {
			best, bestScore = sel, score
		}
	})
	if best != nil {
		return best
	}

	body := doc.Find("body").First()
	if body.Length() > 0 && strings.TrimSpace(body.Text()) != "" {
		return body
	}
	if strings.TrimSpace(doc.Text()) != "" {
		return doc.Selection
	}
	return nil
}

// densityScore measures how article-like a container is: the text length of
// its paragraph-like descendants, zero for containers with none.
func densityScore(sel *goquery.Selection) int {
	score := 0
	sel.Find("p, h1, h2, h3, h4, h5, h6, li, blockquote, pre").Each(func(_ int, child *goquery.Selection) {
		score += len(strings.TrimSpace(child.Text()))
	})
	return score
}

func titleOf(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func firstHeading(doc *goquery.Document) string {
	return collapseSpace(doc.Find("h1, h2, h3").First().Text())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
