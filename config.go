package knockout

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// Attribute defaults applied when a container leaves a key unset or sets it
// to something that does not parse as a finite number.
const (
	DefaultText          = "TEXT"
	DefaultWeight        = 800
	DefaultLetterSpacing = 0
	DefaultBaseFontSize  = 64
	DefaultXPad          = 28
	DefaultYPad          = 20
)

// Config is the badge configuration of one container.
// It is derived from the container's attributes on every build.
type Config struct {
	// Text is the content punched out of the pill. Never empty.
	Text string

	// Weight is the numeric font weight.
	Weight float64

	// LetterSpacing is the extra tracking after each glyph, in px.
	LetterSpacing float64

	// BaseFontSize is a reference size in px. It only sets the ratio
	// between font size and vertical padding; see [EffectiveFontSize].
	BaseFontSize float64

	// XPad is the padding on each horizontal side, in px.
	XPad float64

	// YPad is the total vertical padding, in px.
	YPad float64

	// Color is the pill fill paint. Empty leaves the paint to the SVG
	// default.
	Color string
}

// DefaultConfig returns the configuration of a container with no attributes
// and no text content.
func DefaultConfig() Config {
	return Config{
		Text:          DefaultText,
		Weight:        DefaultWeight,
		LetterSpacing: DefaultLetterSpacing,
		BaseFontSize:  DefaultBaseFontSize,
		XPad:          DefaultXPad,
		YPad:          DefaultYPad,
	}
}

// LogValue implements slog.LogValuer.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("text", c.Text),
		slog.Float64("weight", c.Weight),
		slog.Float64("letterSpacing", c.LetterSpacing),
		slog.Float64("fontSize", c.BaseFontSize),
		slog.Float64("xpad", c.XPad),
		slog.Float64("ypad", c.YPad),
		slog.String("color", c.Color),
	)
}

// AttributeSource is the read side of a container.
type AttributeSource interface {
	// Attr returns the raw value of the named attribute.
	Attr(name string) (string, bool)

	// Dataset returns the data attribute whose camelCase key is key,
	// e.g. "letterSpacing" for data-letter-spacing.
	Dataset(key string) (string, bool)

	// TextContent returns the concatenated text of all descendants.
	TextContent() string
}

// ReadConfig extracts a fully defaulted Config from src.
// It never fails: missing or malformed values fall back to defaults.
func ReadConfig(src AttributeSource) Config {
	cfg := DefaultConfig()

	cfg.Text = firstNonBlank(lookup(src, "text"), src.TextContent(), DefaultText)
	cfg.Weight = ParseNumber(lookup(src, "weight"), DefaultWeight)
	cfg.LetterSpacing = ParseNumber(lookup(src, "letter-spacing"), DefaultLetterSpacing)
	cfg.BaseFontSize = ParseNumber(lookup(src, "font-size"), DefaultBaseFontSize)
	cfg.XPad = ParseNumber(lookup(src, "xpad"), DefaultXPad)
	cfg.YPad = ParseNumber(lookup(src, "ypad"), DefaultYPad)
	cfg.Color = lookup(src, "color")

	return cfg
}

// lookup resolves logical key name: data-name first, then the camelCase
// dataset view. Returns "" when neither is present.
func lookup(src AttributeSource, name string) string {
	if v, ok := src.Attr("data-" + name); ok {
		return v
	}
	if v, ok := src.Dataset(CamelCase(name)); ok {
		return v
	}
	return ""
}

// ParseNumber parses raw as a number, returning def unless the result is
// finite. Surrounding whitespace is ignored; empty strings, units and
// garbage all yield def. Unsigned 0x, 0o and 0b integers are accepted, as
// in HTML number coercion ("0x10" is 16).
func ParseNumber(raw string, def float64) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return def
	}
	if base := radix(s); base != 0 {
		n, err := strconv.ParseUint(s[2:], base, 64)
		if err != nil {
			return def
		}
		return float64(n)
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return def
	}
	return n
}

// radix reports the base named by a 0x, 0o or 0b prefix, or 0.
func radix(s string) int {
	if len(s) < 2 || s[0] != '0' {
		return 0
	}
	switch s[1] {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}

// CamelCase converts a hyphenated data key to its dataset form:
// "letter-spacing" becomes "letterSpacing". Only a hyphen followed by a
// lowercase ASCII letter is folded.
func CamelCase(name string) string {
	if !strings.Contains(name, "-") {
		return name
	}
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '-' && i+1 < len(name) && name[i+1] >= 'a' && name[i+1] <= 'z' {
			b.WriteByte(name[i+1] - 'a' + 'A')
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func firstNonBlank(candidates ...string) string {
	for _, c := range candidates {
		if t := strings.TrimSpace(c); t != "" {
			return t
		}
	}
	return ""
}
