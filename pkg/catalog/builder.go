package catalog

import (
	"log/slog"
	"strconv"

	"github.com/tendant/simple-catalog/pkg/catalog/metadata"
)

// EmptyObject returns the sentinel object: no data, no tags, KindEmpty.
// Classification never produces it.
func EmptyObject() Object {
	return Object{data: []byte{}, kind: KindEmpty}
}

// PlainText returns a text object. No tags are extracted from text bodies.
func PlainText(text string) Object {
	return NewObject(KindPlainText, []byte(text))
}

// BinaryObject returns an opaque binary object with no tags.
func BinaryObject(data []byte) Object {
	return NewObject(KindBinary, data)
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithClassifier sets the classifier used by Build.
func WithClassifier(c *Classifier) BuilderOption {
	return func(b *Builder) {
		if c != nil {
			b.classifier = c
		}
	}
}

// WithExtractor sets the metadata extractor used for photos. A nil extractor
// disables extraction.
func WithExtractor(e metadata.Extractor) BuilderOption {
	return func(b *Builder) {
		b.extractor = e
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// Builder turns raw payloads into objects, running the kind-specific tag
// extraction.
type Builder struct {
	classifier *Classifier
	extractor  metadata.Extractor
	logger     *slog.Logger
}

// NewBuilder returns a builder using the built-in classifier and the EXIF
// extractor unless overridden.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		classifier: defaultClassifier,
		extractor:  metadata.NewEXIF(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Classifier returns the classifier used by Build.
func (b *Builder) Classifier() *Classifier {
	return b.classifier
}

func (b *Builder) log() *slog.Logger {
	if b.logger != nil {
		return b.logger
	}
	return slog.Default()
}

// Build classifies raw and constructs the object of the resulting kind.
func (b *Builder) Build(raw []byte) Object {
	return b.BuildAs(b.classifier.Classify(raw), raw)
}

// BuildAs constructs an object of the given kind from raw. KindEmpty always
// yields the EmptyObject sentinel and raw is discarded; every other kind
// carries raw verbatim.
func (b *Builder) BuildAs(kind Kind, raw []byte) Object {
	switch kind {
	case KindEmpty:
		return EmptyObject()
	case KindPhoto:
		return b.Photo(raw)
	default:
		return NewObject(kind, raw)
	}
}

// Photo returns a photo object tagged with one Exif tag per metadata field.
// Extraction failures leave the object without tags.
func (b *Builder) Photo(raw []byte) Object {
	obj := NewObject(KindPhoto, raw)
	if b.extractor == nil {
		return obj
	}

	fields, err := b.extractor.Extract(raw)
	if err != nil {
		b.log().Debug("No usable photo metadata", "size", len(raw), "err", err)
		return obj
	}

	for _, f := range fields {
		name := f.Description
		if name == "" {
			name = strconv.Itoa(int(f.ID))
		}
		obj.tags.Add(Exif{Name: name, Value: f.Value})
	}
	return obj
}

var defaultBuilder = NewBuilder()

// Photo builds a photo object with the default EXIF extractor.
func Photo(raw []byte) Object {
	return defaultBuilder.Photo(raw)
}

// Build classifies raw with the built-in rules and builds the object.
func Build(raw []byte) Object {
	return defaultBuilder.Build(raw)
}
