package extractor

import (
	"errors"
	"strings"
	"testing"
)

const articlePage = `<html><head><title>Lighthouse Keeping - Example Journal</title></head><body>
<div class="sidebar"><ul><li><a href="/archive">Archive</a></li><li><a href="/tags">Tags</a></li></ul></div>
<div class="post">
<h1>Lighthouse Keeping</h1>
<p>The lamp room smelled of brass polish and paraffin, the way it had for forty
years. Every evening at dusk the keeper climbed the hundred and twelve steps
with a thermos of tea and a logbook under one arm.</p>
<p>Ships passed in the dark without ever knowing his name, which suited him
fine. The light was the point, not the lighthouse keeper.</p>
</div>
</body></html>`

func TestExtractArticle(t *testing.T) {
	e := New(Config{})
	article, err := e.Extract(articlePage, "https://example.com/post")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if article.Title != "Lighthouse Keeping - Example Journal" {
		t.Errorf("Title = %q", article.Title)
	}
	if !strings.Contains(article.BodyText, "brass polish") {
		t.Errorf("body text missing article content: %q", article.BodyText)
	}
	if strings.Contains(article.BodyText, "Archive") {
		t.Errorf("body text includes sidebar: %q", article.BodyText)
	}
	if article.WordCount == 0 {
		t.Error("WordCount = 0")
	}
}

func TestExtractWordCount(t *testing.T) {
	e := New(Config{})
	article, err := e.Extract(
		`<html><body><article><p>one two   three`+"\n"+`four</p></article></body></html>`, "")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if article.WordCount != 4 {
		t.Errorf("WordCount = %d, want 4", article.WordCount)
	}
}

func TestExtractMalformedHTML(t *testing.T) {
	// Unclosed tags, no body element.
	e := New(Config{})
	article, err := e.Extract(`<article><h2>Partial<p>Some text that still parses`, "")
	if err != nil {
		t.Fatalf("Extract on malformed HTML: %v", err)
	}
	if !strings.Contains(article.BodyText, "still parses") {
		t.Errorf("BodyText = %q", article.BodyText)
	}
}

func TestExtractTitleFallsBackToHeading(t *testing.T) {
	e := New(Config{})
	article, err := e.Extract(
		`<html><body><article><h1>Heading Title</h1><p>Body copy here.</p></article></body></html>`, "")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if article.Title != "Heading Title" {
		t.Errorf("Title = %q, want heading fallback", article.Title)
	}
}

func TestExtractPrefersKnownContainers(t *testing.T) {
	e := New(Config{})
	page := `<html><body>
<div class="notion-topbar-leftover">chrome text chrome text</div>
<div class="notion-page-content"><p>Actual note body with several words in it.</p></div>
</body></html>`
	article, err := e.Extract(page, "")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !strings.Contains(article.BodyText, "Actual note body") {
		t.Errorf("BodyText = %q", article.BodyText)
	}
}

func TestExtractNoContent(t *testing.T) {
	e := New(Config{})
	for _, html := range []string{"", "<html><body></body></html>", "<div></div>"} {
		if _, err := e.Extract(html, ""); !errors.Is(err, ErrNoContent) {
			t.Errorf("Extract(%q) err = %v, want ErrNoContent", html, err)
		}
	}
}
