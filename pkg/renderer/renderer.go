// Package renderer converts extracted article HTML into Markdown.
package renderer

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// Renderer converts HTML to Markdown.
type Renderer struct{}

// New creates a Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render converts articleHTML to Markdown. Headings become #-prefixed lines,
// lists become bullets, links and images keep their targets. Elements the
// converter does not know are flattened to their text rather than dropped.
func (r *Renderer) Render(articleHTML string) (string, error) {
	markdown, err := md.ConvertString(articleHTML)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return Tidy(markdown), nil
}

// Tidy normalizes Markdown whitespace: trailing space stripped per line, runs
// of blank lines collapsed to one, leading and trailing blanks dropped. Also
// applied to pre-rendered reader snapshots that skip HTML conversion.
func Tidy(markdown string) string {
	lines := strings.Split(markdown, "\n")
	out := make([]string, 0, len(lines))
	blanks := 0

	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blanks++
			if blanks <= 1 {
				out = append(out, "")
			}
			continue
		}
		blanks = 0
		out = append(out, line)
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}
