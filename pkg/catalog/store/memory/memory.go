package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/tendant/simple-catalog/pkg/catalog"
	"github.com/tendant/simple-catalog/pkg/catalog/store"
)

// Store is an in-memory implementation of store.Store. It keeps the encoded
// document, so every Load decodes a fresh collection.
type Store struct {
	mu    sync.RWMutex
	codec store.Codec
	data  []byte
}

// New creates a new in-memory store. A nil codec means JSON.
func New(codec store.Codec) *Store {
	if codec == nil {
		codec = store.JSONCodec{}
	}
	return &Store{codec: codec}
}

// Load decodes the last saved document
func (s *Store) Load(ctx context.Context) (*catalog.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return catalog.NewCollection(), nil
	}

	coll, err := s.codec.Decode(s.data)
	if err != nil {
		return nil, &store.StoreError{
			Location: "memory",
			Op:       "load",
			Err:      fmt.Errorf("%w: %v", store.ErrCorrupt, err),
		}
	}
	return coll, nil
}

// Save encodes and keeps the collection
func (s *Store) Save(ctx context.Context, coll *catalog.Collection) error {
	data, err := s.codec.Encode(coll)
	if err != nil {
		return &store.StoreError{Location: "memory", Op: "encode", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = data
	return nil
}

// Snapshot returns a copy of the encoded document, or nil if nothing was saved
func (s *Store) Snapshot() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out
}

// Restore replaces the encoded document
func (s *Store) Restore(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = append([]byte(nil), data...)
}
