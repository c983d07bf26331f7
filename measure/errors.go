package measure

import "errors"

// Sentinel errors for the measure package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("measure: empty font data")

	// ErrUnknownFamily is returned by Prepend for a family not in the set.
	ErrUnknownFamily = errors.New("measure: unknown font family")

	// ErrNoFaces is returned when a set has no face to measure with.
	ErrNoFaces = errors.New("measure: font set is empty")
)
