// Package store persists a catalog collection as a single self-describing
// document. A store is read once when the application starts and written
// once when it exits.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/tendant/simple-catalog/pkg/catalog"
)

// Error types
var (
	// ErrCorrupt indicates the stored document could not be decoded
	ErrCorrupt = errors.New("store is corrupt")
)

// Store loads and saves a whole collection.
type Store interface {
	// Load returns the stored collection, or an empty one when nothing has
	// been saved yet.
	Load(ctx context.Context) (*catalog.Collection, error)
	// Save replaces the stored collection.
	Save(ctx context.Context, coll *catalog.Collection) error
}

// StoreError represents an error related to store operations
type StoreError struct {
	Location string
	Op       string
	Err      error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store operation %s failed for %s: %v", e.Op, e.Location, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
