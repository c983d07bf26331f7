// Package measure provides text metrics for knockout badges from real
// OpenType fonts.
//
// A [FontSet] is an ordered stack of font families, each holding faces at
// one or more weights. [DefaultFontSet] registers the Go fonts so badges
// can be measured without any system fonts. A primary display face is added
// in front of the stack:
//
//	fonts := measure.DefaultFontSet()
//	if _, err := fonts.AddFontFile("Poppins-ExtraBold.ttf"); err != nil {
//	    return err
//	}
//	fonts.Prepend("Poppins")
//
//	m := measure.NewMeasurer(fonts)
//	w, h := m.Measure("HELLO", knockout.TextStyle{Weight: 800, Size: 64})
//
// Faces are picked by CSS font matching on weight, then by family order:
// the first family that has every glyph of the text wins.
package measure
