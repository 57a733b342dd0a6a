// Package dom builds HTML fixtures for tests from template parts.
package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoDocument is returned when a fixture is applied to a nil Document.
var ErrNoDocument = errors.New("dom: no document")

// Render interleaves parts with args: parts[0] args[0] parts[1] ... Missing
// args render as nothing.
func Render(parts []string, args ...any) string {
	var b strings.Builder
	for i, part := range parts {
		if i > 0 && i-1 < len(args) {
			fmt.Fprint(&b, args[i-1])
		}
		b.WriteString(part)
	}
	return b.String()
}

// Document is a parsed HTML document.
type Document struct {
	root *html.Node
	body *html.Node
}

// NewDocument returns an empty document with a body.
func NewDocument() *Document {
	doc, err := Parse(strings.NewReader("<!DOCTYPE html><html><head></head><body></body></html>"))
	if err != nil {
		panic(err)
	}
	return doc
}

// Parse reads a document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	body := find(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Body
	})
	if body == nil {
		return nil, fmt.Errorf("parsing document: %w: missing body", ErrNoDocument)
	}
	return &Document{root: root, body: body}, nil
}

// SetBody replaces the body content with the markup rendered from parts
// and args.
func (d *Document) SetBody(parts []string, args ...any) error {
	if d == nil || d.body == nil {
		return ErrNoDocument
	}

	nodes, err := html.ParseFragment(strings.NewReader(Render(parts, args...)), d.body)
	if err != nil {
		return fmt.Errorf("parsing fixture: %w", err)
	}

	for c := d.body.FirstChild; c != nil; c = d.body.FirstChild {
		d.body.RemoveChild(c)
	}
	for _, n := range nodes {
		d.body.AppendChild(n)
	}
	return nil
}

// Body renders the inner HTML of the body.
func (d *Document) Body() (string, error) {
	if d == nil || d.body == nil {
		return "", ErrNoDocument
	}

	var buf bytes.Buffer
	for c := d.body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// ByID returns the element with the given id attribute, or nil.
func (d *Document) ByID(id string) *html.Node {
	if d == nil || d.root == nil {
		return nil
	}
	return find(d.root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return true
			}
		}
		return false
	})
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// Attr returns the value of the named attribute of n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}
