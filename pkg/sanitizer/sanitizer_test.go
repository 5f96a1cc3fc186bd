package sanitizer

import (
	"strings"
	"testing"
)

func TestSanitizeRemovesBoilerplate(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		contains []string
		excludes []string
	}{
		{
			name:     "script contents removed",
			html:     `<html><body><p>Hello</p><script>alert("tracked")</script></body></html>`,
			contains: []string{"Hello"},
			excludes: []string{"script", "tracked"},
		},
		{
			name:     "style contents removed",
			html:     `<html><body><style>.x{color:red}</style><p>Hello</p></body></html>`,
			contains: []string{"Hello"},
			excludes: []string{"style", "color:red"},
		},
		{
			name:     "nav and footer removed",
			html:     `<html><body><nav>Home | About</nav><p>Article</p><footer>Copyright Acme</footer></body></html>`,
			contains: []string{"Article"},
			excludes: []string{"Home | About", "Copyright"},
		},
		{
			name:     "form widgets removed",
			html:     `<html><body><form><input value="q"><button>Go</button></form><p>Body</p></body></html>`,
			contains: []string{"Body"},
			excludes: []string{"form", "input", "Go"},
		},
		{
			name:     "aria hidden removed",
			html:     `<html><body><div aria-hidden="true">decoration</div><p>Body</p></body></html>`,
			contains: []string{"Body"},
			excludes: []string{"decoration"},
		},
		{
			name:     "cookie banner removed",
			html:     `<html><body><div class="site-cookie-banner">We use cookies</div><p>Body</p></body></html>`,
			contains: []string{"Body"},
			excludes: []string{"We use cookies"},
		},
		{
			name:     "notion chrome removed",
			html:     `<html><body><div class="notion-topbar">Share</div><div class="notion-page-content"><p>Note</p></div></body></html>`,
			contains: []string{"Note"},
			excludes: []string{"Share"},
		},
		{
			name:     "comments removed",
			html:     `<html><body><!-- ad slot 3 --><p>Body</p></body></html>`,
			contains: []string{"Body"},
			excludes: []string{"ad slot"},
		},
		{
			name: "article structure preserved",
			html: `<html><body><article><h1>Title</h1><p>Text with <a href="/x">link</a> and <img src="/pic.png" alt="pic"/></p><ul><li>one</li></ul></article></body></html>`,
			contains: []string{
				"<h1>Title</h1>", `href="/x"`, `src="/pic.png"`, "<li>one</li>",
			},
		},
	}

	s := New(Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Sanitize(tt.html)
			if err != nil {
				t.Fatalf("Sanitize: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("output still contains %q:\n%s", bad, got)
				}
			}
		})
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	s := New(Config{})
	html := `<html><head><script>var x=1</script></head><body>` +
		`<nav>menu</nav><article><h1>T</h1><p>Body text</p></article>` +
		`<form><input></form><footer>foot</footer></body></html>`

	once, err := s.Sanitize(html)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	twice, err := s.Sanitize(once)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if once != twice {
		t.Errorf("sanitize not idempotent:\nfirst:  %s\nsecond: %s", once, twice)
	}
}

func TestSanitizeExtraSelectors(t *testing.T) {
	s := New(Config{ExtraSelectors: []string{".promo"}})
	got, err := s.Sanitize(`<html><body><div class="promo">Buy now</div><p>Body</p></body></html>`)
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	if strings.Contains(got, "Buy now") {
		t.Errorf("extra selector not applied: %s", got)
	}
	if !strings.Contains(got, "Body") {
		t.Errorf("content lost: %s", got)
	}
}
