package notion

import (
	"strings"
	"testing"
)

const samplePage = `{
  "page-id": {"value": {
    "id": "page-id", "type": "page", "alive": true,
    "properties": {"title": [["Meeting Notes"]]},
    "content": ["b1", "b2", "b3", "b4", "b5", "b6", "b7"]
  }},
  "b1": {"value": {
    "id": "b1", "type": "sub_header", "alive": true,
    "properties": {"title": [["Agenda"]]}
  }},
  "b2": {"value": {
    "id": "b2", "type": "text", "alive": true,
    "properties": {"title": [["See "], ["the doc", [["a", "https://example.com/doc"]]]]}
  }},
  "b3": {"value": {
    "id": "b3", "type": "bulleted_list", "alive": true,
    "properties": {"title": [["first item"]]}
  }},
  "b4": {"value": {
    "id": "b4", "type": "bulleted_list", "alive": true,
    "properties": {"title": [["second item"]]}
  }},
  "b5": {"value": {
    "id": "b5", "type": "code", "alive": true,
    "properties": {"title": [["fmt.Println(\"hi\")"]], "language": [["go"]]}
  }},
  "b6": {"value": {
    "id": "b6", "type": "to_do", "alive": true,
    "properties": {"title": [["ship it"]], "checked": [["Yes"]]}
  }},
  "b7": {"value": {
    "id": "b7", "type": "text", "alive": false,
    "properties": {"title": [["deleted block"]]}
  }}
}`

func TestParseRecordMap(t *testing.T) {
	rm, err := ParseRecordMap([]byte(samplePage))
	if err != nil {
		t.Fatalf("ParseRecordMap: %v", err)
	}
	if len(rm) != 8 {
		t.Errorf("expected 8 blocks, got %d", len(rm))
	}
	if rm.Title() != "Meeting Notes" {
		t.Errorf("Title = %q", rm.Title())
	}
}

func TestParseRecordMapErrors(t *testing.T) {
	if _, err := ParseRecordMap([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := ParseRecordMap([]byte("{}")); err == nil {
		t.Error("expected error for empty record map")
	}
}

func TestRenderHTML(t *testing.T) {
	rm, err := ParseRecordMap([]byte(samplePage))
	if err != nil {
		t.Fatalf("ParseRecordMap: %v", err)
	}
	got, err := rm.RenderHTML()
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}

	for _, want := range []string{
		"<h1>Meeting Notes</h1>",
		"<h2>Agenda</h2>",
		`<a href="https://example.com/doc">the doc</a>`,
		"<li>first item</li>",
		"<li>second item</li>",
		`<code class="language-go">`,
		"<li>[x] ship it</li>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	if strings.Contains(got, "deleted block") {
		t.Errorf("dead block rendered:\n%s", got)
	}

	// Consecutive bullets share one list.
	if strings.Count(got, "<ul>") != 2 {
		t.Errorf("expected 2 <ul> groups (bullets, to_do), got %d:\n%s", strings.Count(got, "<ul>"), got)
	}
}

func TestRenderHTMLNoPage(t *testing.T) {
	rm := RecordMap{"x": Block{ID: "x", Type: "text", Alive: true}}
	if _, err := rm.RenderHTML(); err == nil {
		t.Error("expected error when no page block exists")
	}
}
