package markup

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// linkAttrs lists the attributes ResolveLinks rewrites, per element.
var linkAttrs = map[atom.Atom]string{
	atom.Img:  "src",
	atom.Link: "href",
	atom.A:    "href",
}

// ResolveLinks turns relative img src, link href and a href values into
// absolute file:// URLs under baseDir. Targets that resolve outside baseDir
// are left alone. The input is returned unchanged when nothing is rewritten
// or baseDir is empty.
func ResolveLinks(doc, baseDir string) (string, error) {
	if baseDir == "" {
		return doc, nil
	}
	root, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	tree, fragment, err := parseDocument(doc)
	if err != nil {
		return "", err
	}
	if rewritten := resolveTree(tree, root); rewritten == 0 {
		return doc, nil
	}
	return renderDocument(tree, fragment)
}

// parseDocument parses whole documents as such and anything else as a body
// fragment, so rendering does not add an html wrapper.
func parseDocument(doc string) (*html.Node, bool, error) {
	head := strings.ToLower(strings.TrimSpace(doc))
	if strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") {
		n, err := html.Parse(strings.NewReader(doc))
		return n, false, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(doc), body)
	if err != nil {
		return nil, true, err
	}
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, true, nil
}

func renderDocument(root *html.Node, fragment bool) (string, error) {
	var b strings.Builder
	if !fragment {
		err := html.Render(&b, root)
		return b.String(), err
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// resolveTree rewrites link attributes below n and returns how many changed.
func resolveTree(n *html.Node, root string) int {
	count := 0
	if n.Type == html.ElementNode {
		if key, ok := linkAttrs[n.DataAtom]; ok {
			for i := range n.Attr {
				if n.Attr[i].Key != key {
					continue
				}
				if abs, ok := localTarget(n.Attr[i].Val, root); ok {
					n.Attr[i].Val = fileURL(abs)
					count++
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count += resolveTree(c, root)
	}
	return count
}

// localTarget resolves a relative reference against root. It reports false
// for URLs, fragments, absolute paths and anything escaping root.
func localTarget(ref, root string) (string, bool) {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") || filepath.IsAbs(ref) {
		return "", false
	}
	if u, err := url.Parse(ref); err != nil || u.Scheme != "" {
		return "", false
	}

	abs := filepath.Join(root, ref)
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return abs, true
}

// fileURL builds a file:// URL from an absolute path, on Windows too.
func fileURL(abs string) string {
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
