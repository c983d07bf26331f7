package knockout

import "math"

// Measurer reports the box a string occupies when set in style.
// Width is the horizontal advance including letter spacing; height is the
// font's ascent plus descent at style.Size. An empty string yields a
// zero-width box.
type Measurer interface {
	Measure(text string, style TextStyle) (w, h float64)
}

// MeasurerFunc adapts a function to Measurer.
type MeasurerFunc func(text string, style TextStyle) (w, h float64)

// Measure implements Measurer.
func (f MeasurerFunc) Measure(text string, style TextStyle) (w, h float64) {
	return f(text, style)
}

// Build computes the fragment for cfg in a container currently rendered
// renderedH px tall. It has no side effects; the only inputs besides cfg
// are the measurement and the mask id.
//
//	pillH = ceil(textH + ypad)
//	pillW = ceil(textW + 2*xpad)
func Build(cfg Config, renderedH float64, m Measurer, maskID string) Fragment {
	style := TextStyle{
		Family:        FontFamily,
		Weight:        cfg.Weight,
		Size:          EffectiveFontSize(cfg.BaseFontSize, cfg.YPad, renderedH),
		LetterSpacing: cfg.LetterSpacing,
	}

	tw, th := m.Measure(cfg.Text, style)
	tw, th = finiteOrZero(tw), finiteOrZero(th)

	pillH := ceilSize(th + cfg.YPad)
	pillW := ceilSize(tw + cfg.XPad*2)

	return Fragment{
		MaskID: maskID,
		Width:  pillW,
		Height: pillH,
		Radius: PillRadius,
		Fill:   cfg.Color,
		Text: TextNode{
			Content: cfg.Text,
			Style:   style,
			X:       float64(pillW) / 2,
			Y:       float64(pillH) / 2,
			Fill:    MaskPunch,
		},
		TextWidth:  tw,
		TextHeight: th,
	}
}

func ceilSize(v float64) int {
	c := math.Ceil(v)
	if c <= 0 || math.IsNaN(c) {
		return 0
	}
	if c > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(c)
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
