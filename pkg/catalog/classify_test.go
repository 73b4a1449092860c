package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tendant/simple-catalog/pkg/catalog"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want catalog.Kind
	}{
		{"little-endian TIFF", []byte{0x49, 0x49, 0x2A, 0x00, 0xFF, 0xFE}, catalog.KindPhoto},
		{"big-endian TIFF", []byte{0x4D, 0x4D, 0x00, 0x2A}, catalog.KindPhoto},
		{"TIFF signature only checks the prefix", []byte("II*\x00 plain text after"), catalog.KindPhoto},
		{"empty input is text", []byte{}, catalog.KindPlainText},
		{"nil input is text", nil, catalog.KindPlainText},
		{"ascii", []byte("hello world"), catalog.KindPlainText},
		{"multibyte UTF-8", []byte("héllo wörld ✓"), catalog.KindPlainText},
		{"truncated TIFF signature", []byte{0x49, 0x49, 0x2A}, catalog.KindPlainText},
		{"invalid byte", []byte{0x41, 0xFF, 0x42}, catalog.KindBinary},
		{"truncated multibyte sequence", []byte{0xE2, 0x82}, catalog.KindBinary},
		{"JPEG is binary without sniff rules", []byte{0xFF, 0xD8, 0xFF, 0xE0}, catalog.KindBinary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.Classify(tt.data))
		})
	}
}

func TestClassifierExplain(t *testing.T) {
	c := catalog.NewClassifier()

	kind, rule := c.Explain([]byte{0x4D, 0x4D, 0x00, 0x2A})
	assert.Equal(t, catalog.KindPhoto, kind)
	assert.Equal(t, "tiff-signature", rule)

	kind, rule = c.Explain([]byte("text"))
	assert.Equal(t, catalog.KindPlainText, kind)
	assert.Equal(t, "utf8-text", rule)

	kind, rule = c.Explain([]byte{0x00, 0xFF})
	assert.Equal(t, catalog.KindBinary, kind)
	assert.Empty(t, rule)

	assert.Equal(t, []string{"tiff-signature", "utf8-text"}, c.Rules())
}

func TestClassifierExtraRulesKeepBuiltinPriority(t *testing.T) {
	everything := catalog.Rule{
		Name:  "everything",
		Kind:  catalog.KindArchive,
		Match: func([]byte) bool { return true },
	}
	c := catalog.NewClassifier(everything, catalog.Rule{Name: "no-matcher"})

	assert.Equal(t, []string{"tiff-signature", "utf8-text", "everything"}, c.Rules())
	assert.Equal(t, catalog.KindPhoto, c.Classify([]byte("II*\x00")))
	assert.Equal(t, catalog.KindPlainText, c.Classify([]byte("text")))
	assert.Equal(t, catalog.KindPlainText, c.Classify(nil))
	assert.Equal(t, catalog.KindArchive, c.Classify([]byte{0xFF}))
}

func TestSniffRules(t *testing.T) {
	c := catalog.NewClassifier(catalog.SniffRules()...)

	tests := []struct {
		name string
		data []byte
		want catalog.Kind
	}{
		{"JPEG", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}, catalog.KindPhoto},
		{"PNG", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), catalog.KindPhoto},
		{"gzip", []byte{0x1F, 0x8B, 0x08, 0x00, 0xFF}, catalog.KindArchive},
		{"zip", []byte("PK\x03\x04\x14\x00\x00\x00\xff"), catalog.KindArchive},
		{"ELF", []byte("\x7fELF\x02\x01\x01\x00\xff"), catalog.KindApp},
		{"PDF with binary body", []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3"), catalog.KindTypesetText},
		{"PDF that is valid text stays text", []byte("%PDF-1.7\n"), catalog.KindPlainText},
		{"unknown binary", []byte{0x00, 0x01, 0xFF, 0xFE, 0x02}, catalog.KindBinary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.data))
		})
	}
}
