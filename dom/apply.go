package dom

import (
	"strconv"

	"github.com/gogpu/knockout"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Apply implements knockout.Container. All existing children are removed
// and replaced by
//
//	<defs><mask id="…"><rect fill="white"/><text fill="black">…</text></mask></defs>
//	<rect class="pill" rx="15" mask="url(#…)"/>
//
// and the element's viewBox, width and height are set to the pill size.
func (e Element) Apply(f knockout.Fragment) {
	removeChildren(e.n)

	w, h := strconv.Itoa(f.Width), strconv.Itoa(f.Height)

	back := svgElement("rect",
		"x", "0",
		"y", "0",
		"width", w,
		"height", h,
		"fill", knockout.MaskKeep,
	)

	st := f.Text.Style
	txt := svgElement("text",
		"font-family", st.Family,
		"font-weight", knockout.FormatNumber(st.Weight),
		"font-size", knockout.FormatNumber(st.Size)+"px",
		"letter-spacing", knockout.FormatNumber(st.LetterSpacing)+"px",
		"fill", f.Text.Fill,
		"x", knockout.FormatNumber(f.Text.X),
		"y", knockout.FormatNumber(f.Text.Y),
		"text-anchor", "middle",
		"dominant-baseline", "central",
	)
	txt.AppendChild(&html.Node{Type: html.TextNode, Data: f.Text.Content})

	mask := svgElement("mask", "id", f.MaskID)
	mask.AppendChild(back)
	mask.AppendChild(txt)

	defs := svgElement("defs")
	defs.AppendChild(mask)

	pill := svgElement("rect",
		"x", "0",
		"y", "0",
		"width", w,
		"height", h,
		"rx", knockout.FormatNumber(f.Radius),
		"fill", f.Fill,
		"mask", f.MaskURL(),
		"class", knockout.PillClass,
	)

	e.n.AppendChild(defs)
	e.n.AppendChild(pill)

	setAttr(e.n, "viewBox", f.ViewBox())
	setAttr(e.n, "width", w)
	setAttr(e.n, "height", h)
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}

// svgElement creates an element in the SVG namespace with the given
// key/value attribute pairs.
func svgElement(tag string, kv ...string) *html.Node {
	n := &html.Node{
		Type:      html.ElementNode,
		Data:      tag,
		DataAtom:  atom.Lookup([]byte(tag)),
		Namespace: "svg",
	}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return n
}
