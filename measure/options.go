package measure

import "github.com/gogpu/gg/text"

// Shaper selects how advances are computed.
type Shaper int

const (
	// ShaperBuiltin sums per-glyph advances. No kerning.
	ShaperBuiltin Shaper = iota

	// ShaperHarfBuzz shapes with go-text/typesetting through gg's
	// GoTextShaper, so kerning and ligatures affect the width the same way
	// they do in a browser.
	ShaperHarfBuzz
)

// String implements fmt.Stringer.
func (s Shaper) String() string {
	switch s {
	case ShaperBuiltin:
		return "builtin"
	case ShaperHarfBuzz:
		return "harfbuzz"
	default:
		return "unknown"
	}
}

// ParseShaper maps a config name to a Shaper. Empty selects builtin.
func ParseShaper(name string) (Shaper, bool) {
	switch name {
	case "", "builtin":
		return ShaperBuiltin, true
	case "harfbuzz", "gotext":
		return ShaperHarfBuzz, true
	default:
		return ShaperBuiltin, false
	}
}

// Option configures a Measurer.
type Option func(*options)

type options struct {
	shaper  Shaper
	hinting text.Hinting
}

func defaultOptions() options {
	return options{
		shaper:  ShaperBuiltin,
		hinting: text.HintingNone, // fractional advances, like a browser
	}
}

// WithShaper selects the shaping backend.
func WithShaper(s Shaper) Option {
	return func(o *options) {
		o.shaper = s
	}
}

// WithHinting sets the hinting of faces returned by Measurer.Face.
func WithHinting(h text.Hinting) Option {
	return func(o *options) {
		o.hinting = h
	}
}
