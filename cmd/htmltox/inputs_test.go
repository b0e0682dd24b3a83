package main

// Notes:
// - sourceLoader: Markdown rendering details are covered by internal/markup;
//   here we only check that .md inputs come back as HTML documents.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestClassifyInput - Argument kinds
// ---------------------------------------------------------------------------

func TestClassifyInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg     string
		want    inputKind
		wantErr bool
	}{
		{"-", inputStdin, false},
		{"https://example.com", inputURL, false},
		{"HTTP://EXAMPLE.COM/a.md", inputURL, false},
		{"page.html", inputHTML, false},
		{"dir/page.HTM", inputHTML, false},
		{"notes.md", inputMarkdown, false},
		{"notes.markdown", inputMarkdown, false},
		{"notes.txt", 0, true},
		{"README", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			t.Parallel()

			got, err := classifyInput(tt.arg)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedInput) {
					t.Errorf("classifyInput(%q) error = %v, want ErrUnsupportedInput", tt.arg, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("classifyInput(%q) = %v, %v; want %v", tt.arg, got, err, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestSourceLoader - Reading each kind of input
// ---------------------------------------------------------------------------

func TestSourceLoader(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "a.html")
	mdPath := filepath.Join(dir, "b.md")
	if err := os.WriteFile(htmlPath, []byte("<p>a</p>"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(mdPath, []byte("no heading here"), 0o600); err != nil {
		t.Fatal(err)
	}

	stdin := strings.NewReader("<p>in</p>")
	l := &sourceLoader{stdin: stdin}
	ctx := context.Background()

	src, err := l.load(ctx, htmlPath)
	if err != nil || src.html != "<p>a</p>" || src.kind != inputHTML {
		t.Errorf("load(html) = %+v, %v", src, err)
	}

	src, err = l.load(ctx, mdPath)
	if err != nil {
		t.Fatalf("load(md) error = %v", err)
	}
	if !strings.Contains(src.html, "<title>b</title>") || !strings.Contains(src.html, "<p>no heading here</p>") {
		t.Errorf("load(md) html = %s", src.html)
	}

	src, err = l.load(ctx, "https://example.com")
	if err != nil || src.html != "" || *src.url() != "https://example.com" {
		t.Errorf("load(url) = %+v, %v", src, err)
	}
	if c := src.content(); c.HTMLContent != nil || c.HTMLContentStream != nil {
		t.Errorf("url content = %+v, want empty", c)
	}

	src, err = l.load(ctx, "-")
	if err != nil || src.content().HTMLContentStream != stdin {
		t.Errorf("load(-) = %+v, %v", src, err)
	}
	if _, err := l.load(ctx, "-"); !errors.Is(err, ErrUnsupportedInput) {
		t.Errorf("second load(-) error = %v, want ErrUnsupportedInput", err)
	}

	if _, err := l.load(ctx, filepath.Join(dir, "missing.html")); !errors.Is(err, ErrReadInput) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("load(missing) error = %v, want ErrReadInput wrapping ErrNotExist", err)
	}
}

// ---------------------------------------------------------------------------
// TestOutputPaths - Naming outputs
// ---------------------------------------------------------------------------

func TestURLBaseName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com", "example.com"},
		{"https://example.com/docs/", "example.com-docs"},
		{"http://host:8080/a/b/c.html?q=1", "host-8080-a-b-c.html"},
		{"https://", "https"},
		{"", "page"},
	}
	for _, tt := range tests {
		if got := urlBaseName(tt.in); got != tt.want {
			t.Errorf("urlBaseName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	existing := t.TempDir()
	file := source{arg: filepath.Join("docs", "guide.md"), kind: inputMarkdown}
	page := source{arg: "https://example.com/docs", kind: inputURL}
	stdin := source{arg: "-", kind: inputStdin}

	tests := []struct {
		name string
		src  source
		out  string
		many bool
		ext  string
		want string
	}{
		{"file next to input", file, "", false, "pdf", filepath.Join("docs", "guide.pdf")},
		{"url in working dir", page, "", false, "png", "example.com-docs.png"},
		{"stdin to stdout", stdin, "", false, "pdf", ""},
		{"explicit file", file, "out.pdf", false, "pdf", "out.pdf"},
		{"stdin to file", stdin, "out.pdf", false, "pdf", "out.pdf"},
		{"many into directory", file, "build", true, "pdf", filepath.Join("build", "guide.pdf")},
		{"trailing separator", page, "shots/", false, "jpg", filepath.Join("shots", "example.com-docs.jpg")},
		{"existing directory", file, existing, false, "pdf", filepath.Join(existing, "guide.pdf")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolveOutputPath(tt.src, tt.out, tt.many, tt.ext); got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
