package measure

import (
	"unicode/utf8"

	"github.com/gogpu/gg/text"
	"github.com/gogpu/knockout"
	"golang.org/x/text/unicode/norm"
)

// Measurer implements knockout.Measurer over a FontSet.
//
// Measurer is safe for concurrent use.
type Measurer struct {
	fonts  *FontSet
	opts   options
	shaper *text.GoTextShaper
}

var _ knockout.Measurer = (*Measurer)(nil)

// NewMeasurer creates a Measurer over fonts.
func NewMeasurer(fonts *FontSet, opts ...Option) *Measurer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	m := &Measurer{fonts: fonts, opts: o}
	if o.shaper == ShaperHarfBuzz {
		m.shaper = text.NewGoTextShaper()
	}
	return m
}

// Fonts returns the underlying font set.
func (m *Measurer) Fonts() *FontSet { return m.fonts }

// Measure implements knockout.Measurer.
//
// The width is the text advance plus style.LetterSpacing after every
// glyph. The height is ascent plus descent at style.Size, the box a browser
// reports for a line of SVG text. Empty text yields (0, h); a set with no
// faces yields (0, 0).
func (m *Measurer) Measure(s string, style knockout.TextStyle) (w, h float64) {
	s = norm.NFC.String(s)
	face, ok := m.Face(s, style)
	if !ok {
		return 0, 0
	}

	metrics := face.Metrics()
	h = metrics.Ascent + metrics.Descent
	if s == "" {
		return 0, h
	}

	w = m.advance(s, face) + style.LetterSpacing*float64(utf8.RuneCountInString(s))
	if w < 0 {
		w = 0
	}
	return w, h
}

// Face returns the face s is set in at style.
func (m *Measurer) Face(s string, style knockout.TextStyle) (text.Face, bool) {
	if m.fonts == nil || style.Size <= 0 {
		return nil, false
	}
	fc, err := m.fonts.Resolve(s, style.Weight)
	if err != nil {
		knockout.Logger().Warn("measure: no face", "err", err)
		return nil, false
	}
	return fc.Source.Face(style.Size, text.WithHinting(m.opts.hinting)), true
}

func (m *Measurer) advance(s string, face text.Face) float64 {
	if m.shaper == nil {
		return face.Advance(s)
	}
	glyphs := m.shaper.Shape(s, face)
	if glyphs == nil {
		return face.Advance(s)
	}
	var w float64
	for _, g := range glyphs {
		w += g.XAdvance
	}
	return w
}
