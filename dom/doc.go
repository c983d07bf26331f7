// Package dom hosts knockout badges in HTML and SVG documents.
//
// A [Document] wraps a golang.org/x/net/html tree. [Element] implements
// knockout.Container over one <svg> node: attributes and the camelCase
// dataset view come from the node, the rendered height comes from inline
// styles, the document's stylesheets and configured class heights, and
// Apply rewrites the node's children in place.
package dom
