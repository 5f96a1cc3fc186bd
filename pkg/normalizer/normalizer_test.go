package normalizer

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantURL  string
		wantRule Rule
	}{
		{
			name:     "plain article passes through",
			url:      "https://example.com/post/42",
			wantURL:  "https://example.com/post/42",
			wantRule: RuleNone,
		},
		{
			name:     "google docs view becomes html export",
			url:      "https://docs.google.com/document/d/1AbC_d-EF/edit?tab=t.0",
			wantURL:  "https://docs.google.com/document/d/1AbC_d-EF/export?format=html",
			wantRule: RuleGoogleDocsExport,
		},
		{
			name:     "google docs export link untouched",
			url:      "https://docs.google.com/document/d/1AbC_d-EF/export?format=html",
			wantURL:  "https://docs.google.com/document/d/1AbC_d-EF/export?format=html",
			wantRule: RuleNone,
		},
		{
			name:     "notion without query gets pvs",
			url:      "https://www.notion.so/Some-Page-0123456789abcdef0123456789abcdef",
			wantURL:  "https://www.notion.so/Some-Page-0123456789abcdef0123456789abcdef?pvs=4",
			wantRule: RuleNotionPrintView,
		},
		{
			name:     "notion with existing params keeps them in order",
			url:      "https://notion.site/page?b=2&a=1",
			wantURL:  "https://notion.site/page?b=2&a=1&pvs=4",
			wantRule: RuleNotionPrintView,
		},
		{
			name:     "notion with pvs untouched",
			url:      "https://www.notion.so/page?pvs=4",
			wantURL:  "https://www.notion.so/page?pvs=4",
			wantRule: RuleNone,
		},
		{
			name:     "notion-like host is not notion",
			url:      "https://notnotion.so/page",
			wantURL:  "https://notnotion.so/page",
			wantRule: RuleNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.url)
			if got.URL != tt.wantURL {
				t.Errorf("URL = %q, want %q", got.URL, tt.wantURL)
			}
			if got.Rule != tt.wantRule {
				t.Errorf("Rule = %q, want %q", got.Rule, tt.wantRule)
			}
		})
	}
}

func TestNormalizeIsPure(t *testing.T) {
	url := "https://www.notion.so/Some-Page-0123456789abcdef0123456789abcdef"
	first := Normalize(url)
	second := Normalize(url)
	if first != second {
		t.Errorf("Normalize is not deterministic: %+v vs %+v", first, second)
	}
}

func TestNotionPageID(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		wantID string
		wantOK bool
	}{
		{
			name:   "plain hex id",
			url:    "https://www.notion.so/Page-0123456789abcdef0123456789abcdef",
			wantID: "01234567-89ab-cdef-0123-456789abcdef",
			wantOK: true,
		},
		{
			name:   "hyphenated uuid in url",
			url:    "https://notion.so/01234567-89ab-cdef-0123-456789abcdef",
			wantID: "01234567-89ab-cdef-0123-456789abcdef",
			wantOK: true,
		},
		{
			name:   "no id",
			url:    "https://www.notion.so/about",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := NotionPageID(tt.url)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && id != tt.wantID {
				t.Errorf("id = %q, want %q", id, tt.wantID)
			}
		})
	}
}
