package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	htmltox "github.com/alnah/go-htmltox"
	"github.com/alnah/go-htmltox/internal/fileutil"
	"github.com/alnah/go-htmltox/internal/markup"
)

// Sentinel errors for input handling.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrUnsupportedInput = errors.New("input must be a .html, .htm, .md or .markdown file, an http(s) URL, or -")
	ErrReadInput        = errors.New("failed to read input")
)

// stdinArg names standard input on the command line.
const stdinArg = "-"

// inputKind classifies a positional argument.
type inputKind int

const (
	inputHTML inputKind = iota
	inputMarkdown
	inputURL
	inputStdin
)

// source is one loaded input.
type source struct {
	arg  string
	kind inputKind
	html string
	// stream is set for stdin, which is handed to the engine unread.
	stream io.Reader
}

// classifyInput returns the kind of arg.
func classifyInput(arg string) (inputKind, error) {
	if arg == stdinArg {
		return inputStdin, nil
	}
	if fileutil.IsURL(arg) {
		return inputURL, nil
	}
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".html", ".htm":
		return inputHTML, nil
	case ".md", ".markdown":
		return inputMarkdown, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedInput, arg)
}

// sourceLoader reads inputs. The Markdown renderer is built on first use.
type sourceLoader struct {
	stdin     io.Reader
	stdinUsed bool
	md        *markup.Renderer
}

// load classifies and reads arg.
func (l *sourceLoader) load(ctx context.Context, arg string) (source, error) {
	kind, err := classifyInput(arg)
	if err != nil {
		return source{}, err
	}
	src := source{arg: arg, kind: kind}

	switch kind {
	case inputURL:
		return src, nil
	case inputStdin:
		if l.stdinUsed {
			return source{}, fmt.Errorf("%w: stdin given more than once", ErrUnsupportedInput)
		}
		l.stdinUsed = true
		src.stream = l.stdin
		return src, nil
	}

	// #nosec G304 -- inputs are user-provided paths
	data, err := os.ReadFile(arg)
	if err != nil {
		return source{}, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	src.html = string(data)

	if kind == inputMarkdown {
		if l.md == nil {
			if l.md, err = markup.New(markup.DefaultStyle); err != nil {
				return source{}, err
			}
		}
		fallback := strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
		if src.html, err = l.md.ToHTML(ctx, data, fallback); err != nil {
			return source{}, fmt.Errorf("%s: %w", arg, err)
		}
	}

	// The engine loads inline HTML from a temporary file, so local images
	// and stylesheets must be addressed absolutely.
	if src.html, err = markup.ResolveLinks(src.html, filepath.Dir(arg)); err != nil {
		return source{}, fmt.Errorf("%w: %s: %w", ErrReadInput, arg, err)
	}
	return src, nil
}

// content returns the HTML payload of src. URL sources have none.
func (s source) content() htmltox.Content {
	switch s.kind {
	case inputURL:
		return htmltox.Content{}
	case inputStdin:
		return htmltox.Content{HTMLContentStream: s.stream}
	}
	return htmltox.Content{HTMLContent: htmltox.Ptr(s.html)}
}

// url returns the page address of a URL source, or nil.
func (s source) url() *string {
	if s.kind != inputURL {
		return nil
	}
	return htmltox.Ptr(s.arg)
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// baseName returns the output path of src without extension. Files keep
// their directory; URLs and stdin land in the working directory.
func (s source) baseName() string {
	switch s.kind {
	case inputStdin:
		return "stdin"
	case inputURL:
		return urlBaseName(s.arg)
	}
	return strings.TrimSuffix(s.arg, filepath.Ext(s.arg))
}

// urlBaseName derives a file name from a page address,
// e.g. https://example.com/docs/ -> example.com-docs.
func urlBaseName(raw string) string {
	name := raw
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		name = u.Host + u.Path
	}
	name = strings.Trim(unsafeNameChars.ReplaceAllString(name, "-"), "-.")
	if name == "" {
		return "page"
	}
	return name
}

// resolveOutputPath returns where the output of src goes. An empty result
// means standard output. With several outputs, out is a directory.
func resolveOutputPath(src source, out string, many bool, ext string) string {
	switch {
	case out == "" && src.kind == inputStdin:
		return ""
	case out == "":
		return src.baseName() + "." + ext
	case many || isDirTarget(out):
		return filepath.Join(out, filepath.Base(src.baseName())+"."+ext)
	default:
		return out
	}
}

// isDirTarget reports whether out names a directory, either by a trailing
// separator or because it exists as one.
func isDirTarget(out string) bool {
	if strings.HasSuffix(out, "/") || strings.HasSuffix(out, string(filepath.Separator)) {
		return true
	}
	return fileutil.DirExists(out)
}
