package measure

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"unicode"

	gotext "github.com/go-text/typesetting/font"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
)

// GoFamily is the family name the Go fonts are registered under.
const GoFamily = "Go"

// Face is one registered font file.
type Face struct {
	Family string
	Weight float64
	Source *text.FontSource
}

type family struct {
	name  string
	faces []Face // sorted by weight
}

func (f *family) weights() []float64 {
	ws := make([]float64, len(f.faces))
	for i, fc := range f.faces {
		ws[i] = fc.Weight
	}
	return ws
}

func (f *family) face(weight float64) Face {
	w := matchWeight(f.weights(), weight)
	for _, fc := range f.faces {
		if fc.Weight == w {
			return fc
		}
	}
	return f.faces[0]
}

// FontSet is an ordered stack of font families.
//
// FontSet is safe for concurrent use.
type FontSet struct {
	mu       sync.RWMutex
	families []*family
}

// NewFontSet returns an empty set.
func NewFontSet() *FontSet {
	return &FontSet{}
}

// DefaultFontSet returns a set holding the Go fonts at regular, medium and
// bold weight. It panics only if the embedded fonts fail to parse.
func DefaultFontSet() *FontSet {
	fs := NewFontSet()
	for _, f := range []struct {
		weight float64
		data   []byte
	}{
		{WeightRegular, goregular.TTF},
		{WeightMedium, gomedium.TTF},
		{WeightBold, gobold.TTF},
	} {
		if _, err := fs.AddFace(GoFamily, f.weight, f.data); err != nil {
			panic(fmt.Sprintf("measure: embedded Go font: %v", err))
		}
	}
	return fs
}

// AddFace registers data under family at weight. A face already registered
// at the same family and weight is replaced.
func (s *FontSet) AddFace(familyName string, weight float64, data []byte) (Face, error) {
	if len(data) == 0 {
		return Face{}, ErrEmptyFontData
	}
	src, err := text.NewFontSource(data)
	if err != nil {
		return Face{}, fmt.Errorf("measure: parse font %q: %w", familyName, err)
	}
	if weight <= 0 {
		weight = WeightRegular
	}
	fc := Face{Family: familyName, Weight: weight, Source: src}

	s.mu.Lock()
	defer s.mu.Unlock()

	fam := s.lookup(familyName)
	if fam == nil {
		fam = &family{name: familyName}
		s.families = append(s.families, fam)
	}
	for i, old := range fam.faces {
		if old.Weight == weight {
			fam.faces[i] = fc
			return fc, nil
		}
	}
	fam.faces = append(fam.faces, fc)
	sort.Slice(fam.faces, func(i, j int) bool { return fam.faces[i].Weight < fam.faces[j].Weight })
	return fc, nil
}

// AddFont registers data, reading its family name and weight from the
// font's own description.
func (s *FontSet) AddFont(data []byte) (Face, error) {
	if len(data) == 0 {
		return Face{}, ErrEmptyFontData
	}
	name, weight, err := describe(data)
	if err != nil {
		return Face{}, err
	}
	return s.AddFace(name, weight, data)
}

// AddFontFile reads path and registers it with AddFont.
func (s *FontSet) AddFontFile(path string) (Face, error) {
	// #nosec G304 -- font path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return Face{}, fmt.Errorf("measure: read font %q: %w", path, err)
	}
	fc, err := s.AddFont(data)
	if err != nil {
		return Face{}, fmt.Errorf("measure: font %q: %w", path, err)
	}
	return fc, nil
}

// Prepend moves familyName to the front of the stack.
func (s *FontSet) Prepend(familyName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.families {
		if strings.EqualFold(f.name, familyName) {
			copy(s.families[1:i+1], s.families[:i])
			s.families[0] = f
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownFamily, familyName)
}

// Families returns the family names in stack order.
func (s *FontSet) Families() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, len(s.families))
	for i, f := range s.families {
		names[i] = f.name
	}
	return names
}

// Resolve picks the face used to set str at weight: the best weight match
// of the first family that has every rune of str, or of the first family
// when none does.
func (s *FontSet) Resolve(str string, weight float64) (Face, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.families) == 0 {
		return Face{}, ErrNoFaces
	}
	for _, fam := range s.families {
		fc := fam.face(weight)
		if covers(fc.Source, str) {
			return fc, nil
		}
	}
	return s.families[0].face(weight), nil
}

func (s *FontSet) lookup(name string) *family {
	for _, f := range s.families {
		if strings.EqualFold(f.name, name) {
			return f
		}
	}
	return nil
}

func covers(src *text.FontSource, str string) bool {
	face := src.Face(16)
	for _, r := range str {
		if unicode.IsSpace(r) {
			continue
		}
		if !face.HasGlyph(r) {
			return false
		}
	}
	return true
}

// describe reads the family name and weight of a TrueType/OpenType font.
func describe(data []byte) (string, float64, error) {
	fc, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return "", 0, fmt.Errorf("measure: describe font: %w", err)
	}
	d := fc.Describe()
	name := strings.TrimSpace(d.Family)
	if name == "" {
		name = "Unknown Font"
	}
	return name, float64(d.Aspect.Weight), nil
}
