package knockout

import (
	"fmt"
	"strconv"
)

// PillRadius is the corner radius of every pill, in px.
const PillRadius = 15

// FontFamily is the font stack written to the knockout <text> node.
// The first entry is the display face the badges are designed for.
const FontFamily = "'Poppins', system-ui, -apple-system, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif"

// Mask paints. White keeps the pill, black punches the hole.
const (
	MaskKeep  = "white"
	MaskPunch = "black"
)

// PillClass is the class set on the visible pill rectangle.
const PillClass = "pill"

// TextStyle describes how a string is set for measurement and drawing.
type TextStyle struct {
	Family        string
	Weight        float64
	Size          float64 // px
	LetterSpacing float64 // px
}

// TextNode is the knockout text placed inside the mask.
// It is anchored at its centre: text-anchor middle, dominant-baseline
// central.
type TextNode struct {
	Content string
	Style   TextStyle
	X, Y    float64
	Fill    string
}

// Fragment is the graphics content built for one container: a mask whose
// white background is punched by TextNode, and a visible pill painted
// through that mask.
type Fragment struct {
	// MaskID is unique per build; the pill references it as url(#MaskID).
	MaskID string

	// Width and Height are the pill size in px. They are also the
	// container's viewBox extent and intrinsic size.
	Width, Height int

	// Radius is the pill corner radius.
	Radius float64

	// Fill is the visible pill paint.
	Fill string

	// Text is the glyph run cut out of the pill.
	Text TextNode

	// TextWidth and TextHeight are the measured text box the pill was
	// sized from.
	TextWidth, TextHeight float64
}

// ViewBox returns the coordinate frame "0 0 W H".
func (f Fragment) ViewBox() string {
	return fmt.Sprintf("0 0 %d %d", f.Width, f.Height)
}

// MaskURL returns the paint-server reference used by the pill's mask
// attribute.
func (f Fragment) MaskURL() string {
	return "url(#" + f.MaskID + ")"
}

// FormatNumber formats v the way SVG attributes expect: shortest
// representation, no exponent for ordinary values.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
