package knockout

import "math"

// EffectiveFontSize maps the container's rendered height to the font size
// actually used for measuring and drawing.
//
// The ratio base/(base+ypad) is kept while the absolute size follows
// renderedH. A missing height (zero, negative or not finite) falls back to
// base+ypad, which yields base itself.
func EffectiveFontSize(base, ypad, renderedH float64) float64 {
	if renderedH <= 0 || math.IsNaN(renderedH) || math.IsInf(renderedH, 0) {
		renderedH = base + ypad
	}
	denom := base + ypad
	if denom <= 0 {
		return base
	}
	fs := base / denom * renderedH
	if math.IsNaN(fs) || math.IsInf(fs, 0) {
		return base
	}
	return fs
}
