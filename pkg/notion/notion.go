// Package notion decodes the record map returned by the public Notion
// rendering proxy and turns it into plain HTML the rest of the conversion
// pipeline understands.
package notion

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
)

// Block is one node of a Notion page tree.
type Block struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Alive      bool            `json:"alive"`
	Properties blockProperties `json:"properties"`
	Content    []string        `json:"content"`
}

type blockProperties struct {
	Title    richText `json:"title"`
	Checked  richText `json:"checked"`
	Language richText `json:"language"`
	Source   richText `json:"source"`
	Icon     richText `json:"icon"`
}

// richText is Notion's nested-array text format: a list of fragments, each a
// string followed by optional annotation lists such as ["a", href].
type richText [][]json.RawMessage

// RecordMap is the block table keyed by block ID.
type RecordMap map[string]Block

// ParseRecordMap decodes the proxy's JSON payload.
func ParseRecordMap(data []byte) (RecordMap, error) {
	var raw map[string]struct {
		Value *Block `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding notion record map: %w", err)
	}

	rm := make(RecordMap, len(raw))
	for id, entry := range raw {
		if entry.Value != nil {
			rm[id] = *entry.Value
		}
	}
	if len(rm) == 0 {
		return nil, fmt.Errorf("notion record map has no blocks")
	}
	return rm, nil
}

// Title returns the page block's title text, or "" when absent.
func (rm RecordMap) Title() string {
	page, ok := rm.page()
	if !ok {
		return ""
	}
	return page.Properties.Title.plain()
}

func (rm RecordMap) page() (Block, bool) {
	for _, b := range rm {
		if b.Type == "page" {
			return b, true
		}
	}
	return Block{}, false
}

// RenderHTML renders the page tree as normalized HTML. Unknown block types
// degrade to paragraphs so no text is silently dropped.
func (rm RecordMap) RenderHTML() (string, error) {
	page, ok := rm.page()
	if !ok {
		return "", fmt.Errorf("notion record map has no page block")
	}

	var sb strings.Builder
	if title := page.Properties.Title.html(); title != "" {
		sb.WriteString("<h1>" + title + "</h1>\n")
	}
	rm.renderBlocks(&sb, page.Content, make(map[string]bool))
	return sb.String(), nil
}

func (rm RecordMap) renderBlocks(sb *strings.Builder, ids []string, seen map[string]bool) {
	var listItems []string
	listTag := ""

	flushList := func() {
		if listTag == "" {
			return
		}
		sb.WriteString("<" + listTag + ">\n")
		for _, item := range listItems {
			sb.WriteString("<li>" + item + "</li>\n")
		}
		sb.WriteString("</" + listTag + ">\n")
		listItems = nil
		listTag = ""
	}

	for _, id := range ids {
		block, ok := rm[id]
		if !ok || !block.Alive || seen[id] {
			continue
		}
		seen[id] = true

		text := block.Properties.Title.html()

		tag := ""
		switch block.Type {
		case "bulleted_list", "toggle":
			tag = "ul"
		case "numbered_list":
			tag = "ol"
		case "to_do":
			tag = "ul"
			if block.Properties.Checked.plain() == "Yes" {
				text = "[x] " + text
			} else {
				text = "[ ] " + text
			}
		}
		if tag != "" {
			if listTag != "" && listTag != tag {
				flushList()
			}
			listTag = tag
			item := text
			if len(block.Content) > 0 {
				var nested strings.Builder
				rm.renderBlocks(&nested, block.Content, seen)
				item += nested.String()
			}
			listItems = append(listItems, item)
			continue
		}
		flushList()

		switch block.Type {
		case "header":
			sb.WriteString("<h1>" + text + "</h1>\n")
		case "sub_header":
			sb.WriteString("<h2>" + text + "</h2>\n")
		case "sub_sub_header":
			sb.WriteString("<h3>" + text + "</h3>\n")
		case "quote":
			sb.WriteString("<blockquote>" + text + "</blockquote>\n")
		case "callout":
			icon := block.Properties.Icon.plain()
			if icon != "" {
				text = html.EscapeString(icon) + " " + text
			}
			sb.WriteString("<blockquote>" + text + "</blockquote>\n")
		case "code":
			lang := html.EscapeString(block.Properties.Language.plain())
			sb.WriteString(`<pre><code class="language-` + lang + `">` +
				block.Properties.Title.htmlRaw() + "</code></pre>\n")
		case "divider":
			sb.WriteString("<hr/>\n")
		case "image":
			if src := block.Properties.Source.plain(); src != "" {
				sb.WriteString(`<img src="` + html.EscapeString(src) + `" alt="image"/>` + "\n")
			}
		default:
			// text, paragraph and anything unrecognized.
			if text != "" {
				sb.WriteString("<p>" + text + "</p>\n")
			}
		}

		if len(block.Content) > 0 {
			rm.renderBlocks(sb, block.Content, seen)
		}
	}
	flushList()
}

// plain joins the fragment texts without annotations.
func (rt richText) plain() string {
	var sb strings.Builder
	for _, frag := range rt {
		if len(frag) == 0 {
			continue
		}
		var s string
		if json.Unmarshal(frag[0], &s) == nil {
			sb.WriteString(s)
		}
	}
	return sb.String()
}

// html renders fragments with link annotations as escaped HTML.
func (rt richText) html() string {
	return rt.render(true)
}

// htmlRaw escapes text but drops annotations, for code blocks.
func (rt richText) htmlRaw() string {
	return html.EscapeString(rt.plain())
}

func (rt richText) render(withLinks bool) string {
	var sb strings.Builder
	for _, frag := range rt {
		if len(frag) == 0 {
			continue
		}
		var text string
		if json.Unmarshal(frag[0], &text) != nil {
			continue
		}
		out := html.EscapeString(text)
		if withLinks {
			for _, ann := range frag[1:] {
				var styles [][]string
				if json.Unmarshal(ann, &styles) != nil {
					continue
				}
				for _, style := range styles {
					switch {
					case len(style) > 1 && style[0] == "a":
						out = `<a href="` + html.EscapeString(style[1]) + `">` + out + `</a>`
					case len(style) > 0 && style[0] == "b":
						out = "<strong>" + out + "</strong>"
					case len(style) > 0 && style[0] == "i":
						out = "<em>" + out + "</em>"
					case len(style) > 0 && style[0] == "c":
						out = "<code>" + out + "</code>"
					}
				}
			}
		}
		sb.WriteString(out)
	}
	return sb.String()
}
