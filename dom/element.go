package dom

import (
	"strconv"
	"strings"

	"github.com/gogpu/knockout"
	"golang.org/x/net/html"
)

// Element is one container node. It is a small comparable value: two
// Elements for the same node are equal, so knockout.Renderer can key its
// per-container state on them.
type Element struct {
	n     *html.Node
	doc   *Document
	index int // position in the Containers result
}

var (
	_ knockout.Container  = Element{}
	_ knockout.Identifier = Element{}
)

// Identity implements knockout.Identifier for documents parsed with
// WithName: the name and the element's position among the containers.
// It stays the same when the file is parsed again, so diagnostics keyed on
// it are not repeated after every edit.
func (e Element) Identity() (string, bool) {
	if e.doc == nil || e.doc.name == "" {
		return "", false
	}
	return e.doc.name + "#" + strconv.Itoa(e.index), true
}

// Node returns the underlying html node.
func (e Element) Node() *html.Node { return e.n }

// Attr implements knockout.AttributeSource. Names match case-insensitively.
func (e Element) Attr(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

// Dataset implements knockout.AttributeSource: the data-* attributes keyed
// by their camelCase names.
func (e Element) Dataset(key string) (string, bool) {
	for _, a := range e.n.Attr {
		k := strings.ToLower(a.Key)
		if !strings.HasPrefix(k, "data-") {
			continue
		}
		if knockout.CamelCase(strings.TrimPrefix(k, "data-")) == key {
			return a.Val, true
		}
	}
	return "", false
}

// TextContent implements knockout.AttributeSource.
func (e Element) TextContent() string { return textOf(e.n) }

// Classes returns the tokens of the class attribute.
func (e Element) Classes() []string {
	v, _ := e.Attr("class")
	return strings.Fields(v)
}

// HasClass reports whether the element carries class c.
func (e Element) HasClass(c string) bool {
	for _, x := range e.Classes() {
		if x == c {
			return true
		}
	}
	return false
}

// SetAttr sets an attribute, replacing an existing one whatever its case.
func (e Element) SetAttr(key, val string) {
	setAttr(e.n, key, val)
}

// RenderedHeight implements knockout.Container. The height comes from the
// inline style, then the document stylesheets, then the configured class
// heights. The element's own height attribute is never read: Apply writes
// it, and reading it back would feed each build's output into the next.
func (e Element) RenderedHeight() (float64, bool) {
	root := float64(DefaultRootFontSize)
	if e.doc != nil {
		root = e.doc.rootFontSize
	}

	if style, ok := e.Attr("style"); ok {
		if d, ok := inlineHeight(style); ok {
			if px, ok := parseLength(d.value, root); ok {
				return px, true
			}
		}
	}
	if e.doc == nil {
		return 0, false
	}
	if d, ok := e.doc.sheet[e.n]; ok {
		if px, ok := parseLength(d.value, root); ok {
			return px, true
		}
	}
	for _, c := range e.Classes() {
		if h, ok := e.doc.classHeights[c]; ok && h > 0 {
			return h, true
		}
	}
	return 0, false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			n.Attr[i].Key = key
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
