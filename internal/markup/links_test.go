package markup

// Notes:
// - Expectations are built with fileURL from the absolute test directory so
//   they hold on Windows too.
// - Parser and renderer failures in golang.org/x/net/html are not reachable
//   with string input and stay untested.

import (
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestResolveLinks - Rewritten and untouched references
// ---------------------------------------------------------------------------

func TestResolveLinks(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	logo := fileURL(filepath.Join(base, "img", "logo.png"))
	css := fileURL(filepath.Join(base, "style.css"))

	tests := []struct {
		name     string
		doc      string
		want     []string
		notWant  []string
		sameBack bool
	}{
		{
			name: "relative image",
			doc:  `<img src="img/logo.png">`,
			want: []string{`src="` + logo + `"`},
		},
		{
			name: "dot slash image",
			doc:  `<img src="./img/logo.png" alt="Logo">`,
			want: []string{`src="` + logo + `"`, `alt="Logo"`},
		},
		{
			name: "stylesheet link",
			doc:  `<link rel="stylesheet" href="style.css"><p>x</p>`,
			want: []string{`href="` + css + `"`},
		},
		{
			name: "relative anchor href",
			doc:  `<a href="style.css">css</a>`,
			want: []string{`href="` + css + `"`},
		},
		{
			name: "full document keeps doctype",
			doc:  `<!DOCTYPE html><html><head><title>t</title></head><body><img src="img/logo.png"></body></html>`,
			want: []string{"<!DOCTYPE html>", "<title>t</title>", logo},
		},
		{
			name:     "remote image untouched",
			doc:      `<img src="https://example.com/logo.png">`,
			sameBack: true,
		},
		{
			name:     "data URL untouched",
			doc:      `<img src="data:image/png;base64,AAAA">`,
			sameBack: true,
		},
		{
			name:     "fragment anchor untouched",
			doc:      `<a href="#intro">intro</a>`,
			sameBack: true,
		},
		{
			name:     "protocol relative untouched",
			doc:      `<img src="//cdn.example.com/x.png">`,
			sameBack: true,
		},
		{
			name:     "mailto untouched",
			doc:      `<a href="mailto:a@example.com">mail</a>`,
			sameBack: true,
		},
		{
			name:     "escaping base directory untouched",
			doc:      `<img src="../secret.png">`,
			sameBack: true,
		},
		{
			name:     "script source untouched",
			doc:      `<script src="app.js"></script>`,
			sameBack: true,
		},
		{
			name:     "no links",
			doc:      "<p>plain</p>",
			sameBack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveLinks(tt.doc, base)
			if err != nil {
				t.Fatalf("ResolveLinks() error = %v", err)
			}
			if tt.sameBack && got != tt.doc {
				t.Errorf("ResolveLinks() = %q, want input unchanged", got)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("ResolveLinks() = %q, missing %q", got, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("ResolveLinks() = %q, unexpected %q", got, w)
				}
			}
		})
	}
}

func TestResolveLinks_EmptyBase(t *testing.T) {
	t.Parallel()

	doc := `<img src="logo.png">`
	got, err := ResolveLinks(doc, "")
	if err != nil {
		t.Fatalf("ResolveLinks() error = %v", err)
	}
	if got != doc {
		t.Errorf("ResolveLinks() = %q, want %q", got, doc)
	}
}

func TestResolveLinks_FragmentHasNoWrapper(t *testing.T) {
	t.Parallel()

	got, err := ResolveLinks(`<img src="a.png">`, t.TempDir())
	if err != nil {
		t.Fatalf("ResolveLinks() error = %v", err)
	}
	if strings.Contains(got, "<html>") || strings.Contains(got, "<body>") {
		t.Errorf("fragment gained a document wrapper: %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestFileURL - Path to URL conversion
// ---------------------------------------------------------------------------

func TestFileURL(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	got := fileURL(filepath.Join(base, "my docs", "a.png"))
	if !strings.HasPrefix(got, "file:///") {
		t.Errorf("fileURL() = %q, want file:/// prefix", got)
	}
	if !strings.HasSuffix(got, "/my%20docs/a.png") {
		t.Errorf("fileURL() = %q, want escaped space", got)
	}
}
