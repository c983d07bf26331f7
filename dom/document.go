package dom

import (
	"fmt"
	"io"
	"strings"

	selcss "github.com/ericchiang/css"
	"github.com/gogpu/knockout"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Marker classes. Both are built identically; the split only exists for
// page styling.
const (
	PrimaryClass   = "tag-fill-svg-h1"
	SecondaryClass = "tag-fill-svg-h3"
)

// DefaultClasses are the marker classes searched when none are given.
var DefaultClasses = []string{PrimaryClass, SecondaryClass}

// DefaultRootFontSize is the px size of 1rem and 1em.
const DefaultRootFontSize = 16

// Option configures a Document.
type Option func(*Document)

// WithClassHeights sets fallback heights in px for containers whose height
// is not set by any style, keyed by class name.
func WithClassHeights(h map[string]float64) Option {
	return func(d *Document) {
		d.classHeights = h
	}
}

// WithRootFontSize sets the px size used for rem and em lengths.
func WithRootFontSize(px float64) Option {
	return func(d *Document) {
		if px > 0 {
			d.rootFontSize = px
		}
	}
}

// WithName names the document, usually after its file. Elements of named
// documents carry a stable identity; see Element.Identity.
func WithName(name string) Option {
	return func(d *Document) {
		d.name = name
	}
}

// Document is a parsed HTML document or SVG/HTML fragment.
//
// Document is not safe for concurrent use; the scheduler serializes
// rebuilds.
type Document struct {
	root     *html.Node
	fragment bool
	name     string

	classHeights map[string]float64
	rootFontSize float64

	// sheet holds stylesheet heights per matched node.
	sheet map[*html.Node]declaredLength
}

// Parse reads a complete HTML document.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	d := newDocument(root, false, opts)
	return d, nil
}

// ParseFragment reads a standalone fragment such as an .svg file. The
// fragment is parsed in a <body> context and rendered back without any
// document wrapper.
func ParseFragment(r io.Reader, opts ...Option) (*Document, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, body)
	if err != nil {
		return nil, fmt.Errorf("dom: parse fragment: %w", err)
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}
	return newDocument(body, true, opts), nil
}

func newDocument(root *html.Node, fragment bool, opts []Option) *Document {
	d := &Document{
		root:         root,
		fragment:     fragment,
		rootFontSize: DefaultRootFontSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.Refresh()
	return d
}

// Root returns the document root. For fragments it is the synthetic <body>
// holding the parsed nodes.
func (d *Document) Root() *html.Node { return d.root }

// Refresh re-reads the document's stylesheets. Call it after editing
// <style> elements.
func (d *Document) Refresh() {
	d.sheet = collectSheetHeights(d.root)
}

// Containers returns every <svg> element carrying one of classes, in
// document order and without duplicates. With no classes, DefaultClasses
// are used.
func (d *Document) Containers(classes ...string) []Element {
	if len(classes) == 0 {
		classes = DefaultClasses
	}
	sels := make([]string, 0, len(classes))
	for _, c := range classes {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		sels = append(sels, "svg."+c)
	}
	if len(sels) == 0 {
		return nil
	}

	sel, err := selcss.Parse(strings.Join(sels, ", "))
	if err != nil {
		knockout.Logger().Warn("dom: bad container selector", "classes", classes, "err", err)
		return nil
	}
	matched := make(map[*html.Node]bool)
	for _, n := range sel.Select(d.root) {
		matched[n] = true
	}

	var out []Element
	walk(d.root, func(n *html.Node) {
		if matched[n] {
			out = append(out, Element{n: n, doc: d, index: len(out)})
		}
	})
	return out
}

// Render writes the document. Fragments are written without the synthetic
// wrapper.
func (d *Document) Render(w io.Writer) error {
	if !d.fragment {
		if err := html.Render(w, d.root); err != nil {
			return fmt.Errorf("dom: render: %w", err)
		}
		return nil
	}
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return fmt.Errorf("dom: render: %w", err)
		}
	}
	return nil
}

// AsContainers converts elements for knockout.Renderer.RebuildAll.
func AsContainers(els []Element) []knockout.Container {
	cs := make([]knockout.Container, len(els))
	for i, e := range els {
		cs[i] = e
	}
	return cs
}

// walk visits n and its descendants in document order.
func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}
