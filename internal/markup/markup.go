// Package markup turns Markdown sources into standalone HTML documents that
// the rendering engine can print.
package markup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrConversion indicates Markdown conversion failed.
var ErrConversion = errors.New("markdown conversion failed")

// DefaultStyle is the chroma style used for code blocks.
const DefaultStyle = "github"

const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
mark { background: #fff3a3; }
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; line-height: 1.5; margin: 0 auto; max-width: 52em; }
pre { padding: 0.8em; overflow-x: auto; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.3em 0.6em; }
%s</style>
</head>
<body>
%s
</body>
</html>`

var (
	headingPattern   = regexp.MustCompile(`(?m)^#[ \t]+(.+?)[ \t#]*$`)
	lineBreaks       = regexp.MustCompile(`\r\n?`)
	highlightPattern = regexp.MustCompile(`==([^=\n]+)==`)
)

// ==text== is swapped for private use runes before parsing and for <mark>
// afterwards, so goldmark never has to pass raw HTML through.
const (
	markOpen  = "\uE000"
	markClose = "\uE001"
)

var markTags = strings.NewReplacer(markOpen, "<mark>", markClose, "</mark>")

// Renderer converts Markdown with GFM extensions and highlighted code blocks.
type Renderer struct {
	md  goldmark.Markdown
	css string
}

// New creates a Renderer using the named chroma style, or DefaultStyle when
// the name is empty or unknown.
func New(style string) (*Renderer, error) {
	s := styles.Get(style)
	if style == "" || s == styles.Fallback {
		s = styles.Get(DefaultStyle)
	}

	css, err := stylesheet(s)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(gmhtml.WithXHTML()),
	)
	return &Renderer{md: md, css: css}, nil
}

// stylesheet renders the CSS classes chroma emits for s.
func stylesheet(s *chroma.Style) (string, error) {
	var buf bytes.Buffer
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&buf, s); err != nil {
		return "", fmt.Errorf("%w: writing highlight CSS: %v", ErrConversion, err)
	}
	return buf.String(), nil
}

// ToHTML converts src to an HTML document. The title is the first level-one
// heading, or fallback when there is none.
func (r *Renderer) ToHTML(ctx context.Context, src []byte, fallback string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := r.md.Convert(prepare(src), &body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversion, err)
	}
	return fmt.Sprintf(documentTemplate, html.EscapeString(Title(src, fallback)), r.css, markTags.Replace(body.String())), nil
}

// prepare normalizes line endings and marks ==highlights==.
func prepare(src []byte) []byte {
	src = lineBreaks.ReplaceAll(src, []byte("\n"))
	return highlightPattern.ReplaceAll(src, []byte(markOpen+"$1"+markClose))
}

// Title returns the text of the first "# " heading in src, or fallback.
func Title(src []byte, fallback string) string {
	if m := headingPattern.FindSubmatch(src); m != nil {
		if t := strings.TrimSpace(string(m[1])); t != "" {
			return t
		}
	}
	return fallback
}
