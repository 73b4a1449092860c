// Package metadata extracts structured descriptive fields embedded in
// content, such as the EXIF block of a photo.
package metadata

import "errors"

// ErrNoMetadata indicates the payload carries no metadata block
var ErrNoMetadata = errors.New("no metadata found")

// Field is one metadata entry.
type Field struct {
	// ID is the numeric tag identifier as stored in the payload
	ID uint16
	// Description is the human-readable tag name, empty when unknown
	Description string
	// Value is the display-formatted value
	Value string
}

// Extractor reads metadata fields out of a raw payload.
type Extractor interface {
	Extract(data []byte) ([]Field, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(data []byte) ([]Field, error)

func (f ExtractorFunc) Extract(data []byte) ([]Field, error) {
	return f(data)
}
