package dom

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	selcss "github.com/ericchiang/css"
	"github.com/gogpu/knockout"
	"golang.org/x/net/html"
)

// declaredLength is a height declaration as written, before units are
// resolved.
type declaredLength struct {
	value     string
	important bool
}

// collectSheetHeights applies every <style> element under root and returns
// the winning height declaration per matched node. Later rules win;
// !important beats anything not important. Specificity is not considered.
func collectSheetHeights(root *html.Node) map[*html.Node]declaredLength {
	out := make(map[*html.Node]declaredLength)
	walk(root, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "style" {
			return
		}
		applySheet(root, textOf(n), out)
	})
	return out
}

func applySheet(root *html.Node, src string, out map[*html.Node]declaredLength) {
	ss, err := parser.Parse(src)
	if err != nil {
		knockout.Logger().Warn("dom: stylesheet parse", "err", err)
		return
	}
	for _, rule := range ss.Rules {
		if rule.Kind == css.AtRule || len(rule.Selectors) == 0 {
			continue
		}
		decl, ok := lastHeight(rule.Declarations)
		if !ok {
			continue
		}
		sel, err := selcss.Parse(strings.Join(rule.Selectors, ","))
		if err != nil {
			knockout.Logger().Debug("dom: unsupported selector", "selector", rule.Selectors, "err", err)
			continue
		}
		for _, n := range sel.Select(root) {
			if prev, ok := out[n]; ok && prev.important && !decl.important {
				continue
			}
			out[n] = decl
		}
	}
}

// inlineHeight reads the height declared in a style attribute.
func inlineHeight(style string) (declaredLength, bool) {
	style = strings.TrimSpace(style)
	if style == "" {
		return declaredLength{}, false
	}
	// douceur is strict about the final semicolon, which HTML does not
	// require.
	if !strings.HasSuffix(style, ";") {
		style += ";"
	}
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		knockout.Logger().Debug("dom: inline style parse", "style", style, "err", err)
		return declaredLength{}, false
	}
	return lastHeight(decls)
}

func lastHeight(decls []*css.Declaration) (declaredLength, bool) {
	var (
		found declaredLength
		ok    bool
	)
	for _, d := range decls {
		if !strings.EqualFold(strings.TrimSpace(d.Property), "height") {
			continue
		}
		v, imp := splitImportant(d.Value)
		imp = imp || d.Important
		if ok && found.important && !imp {
			continue
		}
		found, ok = declaredLength{value: v, important: imp}, true
	}
	return found, ok
}

func splitImportant(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if i := strings.Index(strings.ToLower(v), "!important"); i >= 0 {
		return strings.TrimSpace(v[:i]), true
	}
	return v, false
}

// parseLength resolves an absolute CSS length to px. Percentages,
// keywords and viewport units have no layout to resolve against and are
// rejected.
func parseLength(v string, rootFontSize float64) (float64, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	scale := 1.0
	switch {
	case strings.HasSuffix(v, "px"):
		v = strings.TrimSuffix(v, "px")
	case strings.HasSuffix(v, "rem"):
		v, scale = strings.TrimSuffix(v, "rem"), rootFontSize
	case strings.HasSuffix(v, "em"):
		v, scale = strings.TrimSuffix(v, "em"), rootFontSize
	case strings.HasSuffix(v, "pt"):
		v, scale = strings.TrimSuffix(v, "pt"), 4.0/3.0
	}
	n := knockout.ParseNumber(v, -1)
	if n <= 0 {
		return 0, false
	}
	return n * scale, true
}

func textOf(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return b.String()
}
