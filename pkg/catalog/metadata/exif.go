package metadata

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// EXIF extracts EXIF fields from TIFF, JPEG or raw EXIF payloads.
type EXIF struct{}

// NewEXIF returns an EXIF extractor.
func NewEXIF() *EXIF {
	return &EXIF{}
}

// Extract decodes the EXIF block of data. Fields the decoder knows by name
// are reported first, sorted by name; any remaining tags of the TIFF
// directories follow in file order with an empty Description.
func (e *EXIF) Extract(data []byte) (fields []Field, err error) {
	// goexif panics on some truncated inputs
	defer func() {
		if r := recover(); r != nil {
			fields, err = nil, fmt.Errorf("decode exif: %v", r)
		}
	}()

	x, err := exif.Decode(bytes.NewReader(data))
	if x == nil || (err != nil && exif.IsCriticalError(err)) {
		if err == nil {
			err = ErrNoMetadata
		}
		return nil, fmt.Errorf("decode exif: %w", err)
	}

	w := &fieldWalker{seen: make(map[*tiff.Tag]bool)}
	if err := x.Walk(w); err != nil {
		return nil, fmt.Errorf("walk exif: %w", err)
	}
	sort.SliceStable(w.fields, func(i, j int) bool {
		return w.fields[i].Description < w.fields[j].Description
	})

	if x.Tiff != nil {
		for _, dir := range x.Tiff.Dirs {
			for _, tag := range dir.Tags {
				if w.seen[tag] {
					continue
				}
				w.fields = append(w.fields, Field{ID: tag.Id, Value: displayValue(tag)})
			}
		}
	}

	if len(w.fields) == 0 {
		return nil, ErrNoMetadata
	}
	return w.fields, nil
}

type fieldWalker struct {
	fields []Field
	seen   map[*tiff.Tag]bool
}

func (w *fieldWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	w.seen[tag] = true
	w.fields = append(w.fields, Field{
		ID:          tag.Id,
		Description: string(name),
		Value:       displayValue(tag),
	})
	return nil
}

// displayValue renders string tags without the JSON quoting tiff.Tag.String
// applies.
func displayValue(tag *tiff.Tag) string {
	if tag.Format() == tiff.StringVal {
		if s, err := tag.StringVal(); err == nil {
			return s
		}
	}
	return tag.String()
}
