package fs

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-catalog/pkg/catalog"
	"github.com/tendant/simple-catalog/pkg/catalog/store"
)

func sampleCollection() *catalog.Collection {
	coll := catalog.NewCollection()
	coll.Insert(catalog.PlainText("first note"))
	coll.Insert(catalog.NewObject(catalog.KindPhoto, []byte{0x49, 0x49, 0x2A, 0x00},
		catalog.Title{Text: "Beach"},
		catalog.Exif{Name: "Make", Value: "Canon"},
	))
	coll.Insert(catalog.EmptyObject())
	return coll
}

func TestNewRequiresPath(t *testing.T) {
	_, err := New(afero.NewMemMapFs(), "")
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	s, err := New(afero.NewMemMapFs(), "/data/catalog.json")
	require.NoError(t, err)

	coll, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, coll.Len())
}

func TestLoadEmptyFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/catalog.json", nil, 0644))

	s, err := New(fsys, "/catalog.json")
	require.NoError(t, err)

	coll, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, coll.Len())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, path := range []string{"/data/catalog.json", "/data/nested/catalog.yaml"} {
		t.Run(path, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			s, err := New(fsys, path)
			require.NoError(t, err)

			coll := sampleCollection()
			require.NoError(t, s.Save(context.Background(), coll))

			loaded, err := s.Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, coll.Objects(), loaded.Objects())
		})
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s, err := New(fsys, "/data/catalog.json")
	require.NoError(t, err)

	require.NoError(t, s.Save(context.Background(), sampleCollection()))
	require.NoError(t, s.Save(context.Background(), catalog.NewCollection()))

	entries, err := afero.ReadDir(fsys, "/data")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "catalog.json", entries[0].Name())

	loaded, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
}

func TestLoadCorruptFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/catalog.json", []byte(`[{"kind":"hologram"}]`), 0644))

	s, err := New(fsys, "/catalog.json")
	require.NoError(t, err)

	_, err = s.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrCorrupt))

	var storeErr *store.StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "load", storeErr.Op)
	assert.Equal(t, "/catalog.json", storeErr.Location)
}

func TestWithCodecOverridesExtension(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s, err := New(fsys, "/catalog.db", WithCodec(store.YAMLCodec{}))
	require.NoError(t, err)
	require.NoError(t, s.Save(context.Background(), sampleCollection()))

	data, err := afero.ReadFile(fsys, "/catalog.db")
	require.NoError(t, err)
	_, err = store.YAMLCodec{}.Decode(data)
	assert.NoError(t, err)
}

func TestCancelledContext(t *testing.T) {
	s, err := New(afero.NewMemMapFs(), "/catalog.json")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Save(ctx, catalog.NewCollection()), context.Canceled)
}

func TestSaveRejectsUndecodableCollection(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s, err := New(fsys, "/catalog.json")
	require.NoError(t, err)
	require.NoError(t, s.Save(context.Background(), sampleCollection()))

	bad := sampleCollection()
	bad.Insert(catalog.NewObject(catalog.KindBinary, []byte{0x01}, catalog.Date{Value: catalog.DateTime{Year: catalog.Some(2024)}}))

	err = s.Save(context.Background(), bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrInvalidDateConcerns)

	var storeErr *store.StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "encode", storeErr.Op)

	// the previous document is untouched
	loaded, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sampleCollection().Objects(), loaded.Objects())
}
