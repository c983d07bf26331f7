package knockout

import (
	"math"
	"testing"
	"unicode/utf8"
)

// boxMeasurer measures every rune as a 0.6em x 1.2em cell.
type boxMeasurer struct {
	last TextStyle
}

func (m *boxMeasurer) Measure(text string, style TextStyle) (float64, float64) {
	m.last = style
	n := float64(utf8.RuneCountInString(text))
	return n*(style.Size*0.6+style.LetterSpacing), style.Size * 1.2
}

func TestBuildDimensions(t *testing.T) {
	m := &boxMeasurer{}
	cfg := DefaultConfig()
	cfg.Text = "HELLO"
	cfg.XPad = 10
	cfg.YPad = 10

	f := Build(cfg, 74, m, "mask-1")

	if math.Abs(m.last.Size-64) > 1e-9 {
		t.Fatalf("effective font size = %v, want 64", m.last.Size)
	}
	tw, th := m.Measure("HELLO", m.last)
	if want := int(math.Ceil(th + 10)); f.Height != want {
		t.Errorf("Height = %d, want %d", f.Height, want)
	}
	if want := int(math.Ceil(tw + 20)); f.Width != want {
		t.Errorf("Width = %d, want %d", f.Width, want)
	}
	if f.Radius != PillRadius {
		t.Errorf("Radius = %v, want %v", f.Radius, PillRadius)
	}
	if f.ViewBox() != "0 0 "+itoa(f.Width)+" "+itoa(f.Height) {
		t.Errorf("ViewBox() = %q", f.ViewBox())
	}
}

func TestBuildTextNode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Text = "GO"
	cfg.Color = "rebeccapurple"
	cfg.LetterSpacing = 2
	cfg.Weight = 700

	f := Build(cfg, 0, &boxMeasurer{}, "mask-x")

	if f.Text.Content != "GO" {
		t.Errorf("Text.Content = %q, want %q", f.Text.Content, "GO")
	}
	if f.Text.X != float64(f.Width)/2 || f.Text.Y != float64(f.Height)/2 {
		t.Errorf("text centre = (%v, %v), want (%v, %v)",
			f.Text.X, f.Text.Y, float64(f.Width)/2, float64(f.Height)/2)
	}
	if f.Text.Fill != MaskPunch {
		t.Errorf("Text.Fill = %q, want %q", f.Text.Fill, MaskPunch)
	}
	if f.Text.Style.Family != FontFamily {
		t.Errorf("Text.Style.Family = %q", f.Text.Style.Family)
	}
	if f.Text.Style.Weight != 700 || f.Text.Style.LetterSpacing != 2 {
		t.Errorf("Text.Style = %+v", f.Text.Style)
	}
	if f.Fill != "rebeccapurple" {
		t.Errorf("Fill = %q", f.Fill)
	}
	if f.MaskURL() != "url(#mask-x)" {
		t.Errorf("MaskURL() = %q", f.MaskURL())
	}
}

func TestBuildPillCoversPadding(t *testing.T) {
	texts := []string{"", "A", "HELLO WORLD", "ÅÄÖ", "長い"}
	pads := [][2]float64{{0, 0}, {28, 20}, {10, 10}, {0.4, 0.4}, {100, 3}}
	heights := []float64{0, 10, 84, 300}

	for _, text := range texts {
		for _, p := range pads {
			for _, h := range heights {
				cfg := DefaultConfig()
				cfg.Text = text
				cfg.XPad, cfg.YPad = p[0], p[1]
				f := Build(cfg, h, &boxMeasurer{}, "m")
				if float64(f.Width) < 2*cfg.XPad {
					t.Errorf("text %q pad %v h %v: Width %d < 2*xpad", text, p, h, f.Width)
				}
				if float64(f.Height) < cfg.YPad {
					t.Errorf("text %q pad %v h %v: Height %d < ypad", text, p, h, f.Height)
				}
			}
		}
	}
}

func TestBuildIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Text = "SAME"
	a := Build(cfg, 48, &boxMeasurer{}, "mask-1")
	b := Build(cfg, 48, &boxMeasurer{}, "mask-2")

	if a.Width != b.Width || a.Height != b.Height {
		t.Errorf("sizes differ: %dx%d vs %dx%d", a.Width, a.Height, b.Width, b.Height)
	}
	a.MaskID, b.MaskID = "", ""
	if a != b {
		t.Errorf("fragments differ beyond mask id:\n%+v\n%+v", a, b)
	}
}

func TestBuildBadMeasurement(t *testing.T) {
	bad := MeasurerFunc(func(string, TextStyle) (float64, float64) {
		return math.NaN(), math.Inf(1)
	})
	f := Build(DefaultConfig(), 84, bad, "m")
	if f.Width != 2*DefaultXPad || f.Height != DefaultYPad {
		t.Errorf("Build with non-finite metrics = %dx%d, want %dx%d",
			f.Width, f.Height, 2*DefaultXPad, DefaultYPad)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{
		0:      "0",
		42:     "42",
		42.5:   "42.5",
		-1.25:  "-1.25",
		1e6:    "1000000",
		0.0625: "0.0625",
	}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}

func itoa(n int) string { return FormatNumber(float64(n)) }
