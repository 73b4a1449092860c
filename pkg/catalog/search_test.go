package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tendant/simple-catalog/pkg/catalog"
)

func TestSearch(t *testing.T) {
	photo := catalog.NewObject(catalog.KindPhoto, []byte("II*\x00"),
		catalog.Exif{Name: "Make", Value: "Canon"},
		catalog.Exif{Name: "Model", Value: "EOS 5D"},
	)

	tests := []struct {
		name  string
		obj   catalog.Object
		query string
		want  bool
	}{
		{"text contains", catalog.PlainText("hello world"), "hello", true},
		{"text does not contain", catalog.PlainText("hello"), "xyz", false},
		{"text is case sensitive", catalog.PlainText("hello"), "Hello", false},
		{"text empty query", catalog.PlainText("hello"), "", true},
		{"text with invalid bytes", catalog.NewObject(catalog.KindPlainText, []byte("ab\xffcd")), "cd", true},
		{"binary lowercase hex", catalog.BinaryObject([]byte{0xAB, 0xCD}), "abcd", true},
		{"binary hex substring", catalog.BinaryObject([]byte{0xAB, 0xCD}), "bc", true},
		{"binary uppercase hex does not match", catalog.BinaryObject([]byte{0xAB, 0xCD}), "ABCD", false},
		{"binary raw text does not match", catalog.BinaryObject([]byte("hi\xff")), "hi", false},
		{"empty object never matches", catalog.EmptyObject(), "", false},
		{"empty object with query", catalog.EmptyObject(), "x", false},
		{"photo exif value", photo, "EOS", true},
		{"photo exif name is not searched", photo, "Model", false},
		{"photo empty query with tags", photo, "", true},
		{"photo without tags, empty query", catalog.NewObject(catalog.KindPhoto, []byte("II*\x00")), "", true},
		{"photo without tags, query", catalog.NewObject(catalog.KindPhoto, []byte("II*\x00")), "a", false},
		{"other kinds never match", catalog.NewObject(catalog.KindArchive, []byte("hello")), "hello", false},
		{"other label kinds never match", catalog.NewObject(catalog.OtherKind("x"), []byte("hello")), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.Search(tt.obj, tt.query))
			assert.Equal(t, tt.want, tt.obj.Matches(tt.query))
		})
	}
}

func TestSearchPhotoStopsAtFirstNonExifTag(t *testing.T) {
	exifFirst := catalog.NewObject(catalog.KindPhoto, []byte("II*\x00a"),
		catalog.Exif{Name: "Make", Value: "Canon"},
		catalog.Category{Text: "holiday"},
	)
	categoryFirst := catalog.NewObject(catalog.KindPhoto, []byte("II*\x00b"),
		catalog.Category{Text: "holiday"},
		catalog.Exif{Name: "Make", Value: "Canon"},
	)

	assert.True(t, categoryFirst.TagSet().Equal(exifFirst.TagSet()))
	assert.True(t, exifFirst.Matches("Canon"))
	assert.False(t, categoryFirst.Matches("Canon"))
	assert.False(t, categoryFirst.Matches(""))
	assert.False(t, exifFirst.Matches("holiday"))
}

func TestSearchPlainTextReplacesEachInvalidSequence(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		match string
		miss  string
	}{
		{"two stray bytes", "a\xff\xffb", "a\uFFFD\uFFFDb", "a\uFFFDb"},
		{"truncated sequence", "a\xe2\x82b", "a\uFFFDb", "a\uFFFD\uFFFDb"},
		{"surrogate half", "\xed\xa0\x80", "\uFFFD\uFFFD\uFFFD", "\uFFFD\uFFFD\uFFFD\uFFFD"},
		{"truncated four byte sequence", "\xf0\x9f\x98", "\uFFFD", "\uFFFD\uFFFD"},
		{"valid text kept", "caf\xc3\xa9 \xff", "café \uFFFD", "cafe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := catalog.NewObject(catalog.KindPlainText, []byte(tt.data))
			assert.True(t, obj.Matches(tt.match))
			assert.False(t, obj.Matches(tt.miss))
		})
	}
}
