package preview

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// ErrUnsupportedPaint is returned for paints with no flat colour, such as
// url(#gradient) references or custom properties.
var ErrUnsupportedPaint = errors.New("preview: unsupported paint")

// ParseColor resolves an SVG fill paint to a flat colour.
// Empty paint is black, the SVG initial fill.
func ParseColor(paint string) (color.Color, error) {
	p := strings.ToLower(strings.TrimSpace(paint))
	switch {
	case p == "":
		return color.Black, nil
	case p == "none" || p == "transparent":
		return color.Transparent, nil
	case strings.HasPrefix(p, "#"):
		return parseHexColor(p)
	case strings.HasPrefix(p, "rgb(") || strings.HasPrefix(p, "rgba("):
		return parseRGBFunc(p)
	}
	if c, ok := colornames.Map[p]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedPaint, paint)
}

func parseHexColor(p string) (color.Color, error) {
	hex := p[1:]
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPaint, p)
	}
	for i := 0; i < len(hex); i++ {
		c := hex[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedPaint, p)
		}
	}
	return gg.Hex(hex).Color(), nil
}

// parseRGBFunc handles rgb(r, g, b), rgba(r, g, b, a) and the space
// separated rgb(r g b / a) form. Channels are 0-255 or percentages; alpha
// is 0-1 or a percentage.
func parseRGBFunc(p string) (color.Color, error) {
	open, end := strings.IndexByte(p, '('), strings.LastIndexByte(p, ')')
	if open < 0 || end < open {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPaint, p)
	}
	body := strings.NewReplacer(",", " ", "/", " ").Replace(p[open+1 : end])
	parts := strings.Fields(body)
	if len(parts) != 3 && len(parts) != 4 {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPaint, p)
	}

	var ch [3]float64
	for i := 0; i < 3; i++ {
		v, err := component(parts[i], 255)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedPaint, p)
		}
		ch[i] = v / 255
	}
	alpha := 1.0
	if len(parts) == 4 {
		v, err := component(parts[3], 1)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedPaint, p)
		}
		alpha = v
	}
	return gg.RGBA2(ch[0], ch[1], ch[2], alpha).Color(), nil
}

// component parses a number or percentage and clamps it to [0, limit].
func component(s string, limit float64) (float64, error) {
	pct := strings.HasSuffix(s, "%")
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) {
		return 0, strconv.ErrSyntax
	}
	if pct {
		v = v / 100 * limit
	}
	return max(0, min(limit, v)), nil
}
