package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tendant/simple-catalog/pkg/catalog"
	"github.com/tendant/simple-catalog/pkg/catalog/store"
)

// Store keeps the collection in a single file on an afero filesystem
type Store struct {
	fs     afero.Fs
	path   string
	codec  store.Codec
	logger *slog.Logger
}

// Option configures a Store
type Option func(*Store)

// WithCodec overrides the codec picked from the file extension
func WithCodec(codec store.Codec) Option {
	return func(s *Store) {
		if codec != nil {
			s.codec = codec
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a file store at path. A nil fs means the OS filesystem.
func New(fs afero.Fs, path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("store path is required")
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}

	s := &Store{
		fs:     fs,
		path:   path,
		codec:  store.CodecForPath(path),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the file the store reads and writes
func (s *Store) Path() string {
	return s.path
}

// Load reads and decodes the file. A missing or empty file yields an empty
// collection.
func (s *Store) Load(ctx context.Context) (*catalog.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Info("Store file not found, starting empty", "path", s.path)
		return catalog.NewCollection(), nil
	} else if err != nil {
		return nil, &store.StoreError{Location: s.path, Op: "load", Err: err}
	}

	if len(data) == 0 {
		return catalog.NewCollection(), nil
	}

	coll, err := s.codec.Decode(data)
	if err != nil {
		return nil, &store.StoreError{
			Location: s.path,
			Op:       "load",
			Err:      fmt.Errorf("%w: %s: %v", store.ErrCorrupt, s.codec.Name(), err),
		}
	}

	s.logger.Debug("Loaded collection", "path", s.path, "objects", coll.Len())
	return coll, nil
}

// Save encodes the collection into a temporary file next to the target and
// renames it into place.
func (s *Store) Save(ctx context.Context, coll *catalog.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := s.codec.Encode(coll)
	if err != nil {
		return &store.StoreError{Location: s.path, Op: "encode", Err: err}
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return &store.StoreError{Location: s.path, Op: "save", Err: fmt.Errorf("failed to create directory: %w", err)}
	}

	tmp, err := afero.TempFile(s.fs, dir, filepath.Base(s.path)+".tmp-")
	if err != nil {
		return &store.StoreError{Location: s.path, Op: "save", Err: fmt.Errorf("failed to create temp file: %w", err)}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		s.fs.Remove(tmpName)
		return &store.StoreError{Location: s.path, Op: "save", Err: fmt.Errorf("failed to write file: %w", err)}
	}
	if err := tmp.Close(); err != nil {
		s.fs.Remove(tmpName)
		return &store.StoreError{Location: s.path, Op: "save", Err: fmt.Errorf("failed to close file: %w", err)}
	}
	if err := s.fs.Rename(tmpName, s.path); err != nil {
		s.fs.Remove(tmpName)
		return &store.StoreError{Location: s.path, Op: "save", Err: fmt.Errorf("failed to rename file: %w", err)}
	}

	s.logger.Debug("Saved collection", "path", s.path, "objects", coll.Len(), "bytes", len(data))
	return nil
}
