// Package config loads the knockout command's settings file.
//
// Files are YAML (.yaml, .yml) or TOML (.toml). Keys left out keep their
// defaults.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/knockout/dom"
	"github.com/gogpu/knockout/measure"
	"github.com/gogpu/knockout/schedule"
)

// Mask id strategies.
const (
	IDsCounter = "counter"
	IDsRandom  = "random"
)

var (
	// ErrUnknownFormat is returned for a file extension Load cannot decode.
	ErrUnknownFormat = errors.New("config: unknown file format")

	// ErrInvalid wraps every Validate failure.
	ErrInvalid = errors.New("config: invalid")
)

// Duration is a time.Duration read from a Go duration string such as "80ms".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return fmt.Errorf("config: duration: %w", err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config holds the command settings.
type Config struct {
	// Classes are the container marker classes.
	Classes []string `yaml:"classes" toml:"classes"`

	// Fonts are font files tried before the built-in Go fonts.
	Fonts []string `yaml:"fonts" toml:"fonts"`

	// ClassHeights give the rendered height of a container per class, for
	// documents whose heights come from layout rather than CSS.
	ClassHeights map[string]float64 `yaml:"class_heights" toml:"class_heights"`

	// RootFontSize is the px size of 1rem.
	RootFontSize float64 `yaml:"root_font_size" toml:"root_font_size"`

	Debounce Duration `yaml:"debounce" toml:"debounce"`
	Shaper   string   `yaml:"shaper" toml:"shaper"`
	IDs      string   `yaml:"ids" toml:"ids"`

	// Output is the result path. Empty means stdout.
	Output string `yaml:"output" toml:"output"`

	// PNGDir receives one preview per container when set.
	PNGDir   string  `yaml:"png_dir" toml:"png_dir"`
	PNGScale float64 `yaml:"png_scale" toml:"png_scale"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Classes:      append([]string(nil), dom.DefaultClasses...),
		RootFontSize: dom.DefaultRootFontSize,
		Debounce:     Duration(schedule.DefaultDelay),
		Shaper:       measure.ShaperBuiltin.String(),
		IDs:          IDsCounter,
		PNGScale:     1,
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %q: %w", path, err)
	}
	if err := Decode(filepath.Ext(path), b, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode unmarshals b into cfg using the format named by ext.
func Decode(ext string, b []byte, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, cfg)
	case ".toml":
		return toml.Unmarshal(b, cfg)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// Validate reports the first bad setting.
func (c Config) Validate() error {
	if len(c.Classes) == 0 {
		return fmt.Errorf("%w: no container classes", ErrInvalid)
	}
	for _, cl := range c.Classes {
		if strings.TrimSpace(cl) == "" || strings.ContainsAny(cl, " \t\n.#") {
			return fmt.Errorf("%w: class %q", ErrInvalid, cl)
		}
	}
	for cl, h := range c.ClassHeights {
		if !(h > 0) || math.IsInf(h, 0) {
			return fmt.Errorf("%w: height %v for class %q", ErrInvalid, h, cl)
		}
	}
	if c.RootFontSize < 0 || math.IsNaN(c.RootFontSize) || math.IsInf(c.RootFontSize, 0) {
		return fmt.Errorf("%w: root_font_size %v", ErrInvalid, c.RootFontSize)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("%w: negative debounce %v", ErrInvalid, time.Duration(c.Debounce))
	}
	if _, ok := measure.ParseShaper(c.Shaper); !ok {
		return fmt.Errorf("%w: shaper %q", ErrInvalid, c.Shaper)
	}
	switch c.IDs {
	case "", IDsCounter, IDsRandom:
	default:
		return fmt.Errorf("%w: ids %q", ErrInvalid, c.IDs)
	}
	if !(c.PNGScale > 0) || math.IsInf(c.PNGScale, 0) {
		return fmt.Errorf("%w: png_scale %v", ErrInvalid, c.PNGScale)
	}
	return nil
}
