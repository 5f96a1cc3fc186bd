package fetcher

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// errorShellMarkers are phrases that identify a served-but-useless page: soft
// 404s, anti-bot interstitials, and client-rendered shells. Only short pages
// are checked against these, so a real article mentioning "page not found"
// is never rejected.
var errorShellMarkers = []string{
	"page not found",
	"access denied",
	"just a moment",
	"enable javascript",
	"javascript is required",
	"please wait while we verify",
}

// judge applies the sufficiency criterion: enough visible text and not a
// recognizable error shell.
func judge(doc Document, minChars int) Outcome {
	text := visibleText(doc)

	if len(text) < minChars {
		return Insufficient(fmt.Sprintf("text too short: %d chars, need %d", len(text), minChars))
	}

	if len(text) < minChars*4 {
		lower := strings.ToLower(text)
		for _, marker := range errorShellMarkers {
			if strings.Contains(lower, marker) {
				return Insufficient("error shell: " + marker)
			}
		}
	}

	return Sufficient(doc)
}

// visibleText returns the collapsed text content of the document, with
// non-rendered elements stripped.
func visibleText(doc Document) string {
	if doc.PreRendered {
		return strings.Join(strings.Fields(doc.HTML), " ")
	}
	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(doc.HTML))
	if err != nil {
		return ""
	}
	parsed.Find("script, style, noscript").Remove()
	return strings.Join(strings.Fields(parsed.Text()), " ")
}
