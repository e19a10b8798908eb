// Package dom is a headless markup document: a parsed HTML node tree that can be
// addressed with CSS selectors, mutated through element handles and driven with
// click and input events.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document owns a node tree and the event listeners registered on its nodes.
// Detached subtrees created through the document (fragments, new elements)
// share the same listener registry, so they keep their listeners once appended.
type Document struct {
	root      *html.Node
	listeners *registry
}

// Parse reads a complete HTML document
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &Document{root: root, listeners: newRegistry()}, nil
}

// ParseString parses a complete HTML document from a string
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Root returns a handle on the document node itself
func (d *Document) Root() *Handle {
	return d.handle(d.root)
}

// Locate resolves the first element matching the selector. Several tokens are
// joined with a space, so Locate("#panel", "h2") addresses the h2 inside #panel.
func (d *Document) Locate(selector ...string) (*Handle, error) {
	return d.Root().Find(strings.Join(selector, " "))
}

// LocateField resolves an input-capable element
func (d *Document) LocateField(selector ...string) (*Field, error) {
	h, err := d.Locate(selector...)
	if err != nil {
		return nil, err
	}
	return AsField(h)
}

// LocateButton resolves an element that can be enabled and disabled
func (d *Document) LocateButton(selector ...string) (*Button, error) {
	h, err := d.Locate(selector...)
	if err != nil {
		return nil, err
	}
	return AsButton(h)
}

// LocateText resolves an element whose text can be replaced
func (d *Document) LocateText(selector ...string) (*TextBlock, error) {
	h, err := d.Locate(selector...)
	if err != nil {
		return nil, err
	}
	return AsTextBlock(h)
}

// CreateElement returns a new detached element
func (d *Document) CreateElement(tag string) *Handle {
	tag = strings.ToLower(tag)
	return d.handle(&html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	})
}

// ParseElements parses markup as a body fragment and returns its top-level
// elements as detached handles. Top-level text and comments are dropped.
func (d *Document) ParseElements(markup string) ([]*Handle, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fragment: %w", err)
	}

	var elements []*Handle
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			elements = append(elements, d.handle(n))
		}
	}
	return elements, nil
}

// String renders the whole document as HTML
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return ""
	}
	return buf.String()
}

func (d *Document) handle(n *html.Node) *Handle {
	return &Handle{doc: d, node: n}
}
