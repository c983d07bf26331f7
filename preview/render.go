package preview

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"math"
	"unicode/utf8"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/gogpu/knockout"
)

// ErrEmptyFragment is returned for fragments with zero area.
var ErrEmptyFragment = errors.New("preview: empty fragment")

// FaceSource resolves the face a string is drawn in.
// measure.Measurer implements it.
type FaceSource interface {
	Face(s string, style knockout.TextStyle) (text.Face, bool)
}

// Option configures Render.
type Option func(*options)

type options struct {
	scale float64
}

// WithScale renders at scale device pixels per px, e.g. 2 for a retina
// preview. Non-positive values are ignored.
func WithScale(s float64) Option {
	return func(o *options) {
		if s > 0 && !math.IsInf(s, 0) {
			o.scale = s
		}
	}
}

// Render rasterizes f. Pixels covered by glyphs are transparent; the rest
// of the pill has the fill colour; outside the rounded corners is
// transparent.
func Render(f knockout.Fragment, faces FaceSource, opts ...Option) (*image.NRGBA, error) {
	o := options{scale: 1}
	for _, opt := range opts {
		opt(&o)
	}

	w := int(math.Ceil(float64(f.Width) * o.scale))
	h := int(math.Ceil(float64(f.Height) * o.scale))
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyFragment
	}

	fill, err := ParseColor(f.Fill)
	if err != nil {
		return nil, err
	}

	pill := gg.NewContext(w, h)
	pill.SetColor(fill)
	pill.DrawRoundedRectangle(0, 0, float64(w), float64(h), f.Radius*o.scale)
	if err := pill.Fill(); err != nil {
		return nil, fmt.Errorf("preview: fill pill: %w", err)
	}

	var hole *gg.Mask
	if faces != nil {
		hole = textMask(f, faces, o.scale, w, h)
	} else {
		hole = gg.NewMask(w, h)
	}
	// White keeps, glyphs punch.
	hole.Invert()

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	alpha := &image.Alpha{Pix: hole.Data(), Stride: w, Rect: image.Rect(0, 0, w, h)}
	draw.DrawMask(dst, dst.Bounds(), pill.Image(), image.Point{}, alpha, image.Point{}, draw.Src)
	return dst, nil
}

// textMask draws the fragment's text into its own context and returns its
// coverage.
func textMask(f knockout.Fragment, faces FaceSource, scale float64, w, h int) *gg.Mask {
	st := f.Text.Style
	st.Size *= scale
	st.LetterSpacing *= scale

	face, ok := faces.Face(f.Text.Content, st)
	if !ok || f.Text.Content == "" {
		return gg.NewMask(w, h)
	}

	dc := gg.NewContext(w, h)
	dc.SetFont(face)
	dc.SetRGBA(1, 1, 1, 1)

	// text-anchor: middle; dominant-baseline: central puts the centre of
	// the ascent/descent box on (X, Y).
	met := face.Metrics()
	advance := face.Advance(f.Text.Content) + st.LetterSpacing*float64(utf8.RuneCountInString(f.Text.Content))
	x := f.Text.X*scale - advance/2
	y := f.Text.Y*scale + (met.Ascent-met.Descent)/2

	if st.LetterSpacing == 0 {
		dc.DrawString(f.Text.Content, x, y)
	} else {
		for _, r := range f.Text.Content {
			s := string(r)
			dc.DrawString(s, x, y)
			x += face.Advance(s) + st.LetterSpacing
		}
	}
	return gg.NewMaskFromAlpha(dc.Image())
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	dc := gg.NewContextForImage(img)
	return dc.EncodePNG(w)
}

// WritePNG writes img to path as PNG.
func WritePNG(path string, img image.Image) error {
	dc := gg.NewContextForImage(img)
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("preview: write %q: %w", path, err)
	}
	return nil
}
