package catalog

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrObjectNotFound indicates no object in the collection matched
	ErrObjectNotFound = errors.New("object not found")

	// ErrAmbiguousDigest indicates a digest prefix matched more than one object
	ErrAmbiguousDigest = errors.New("digest prefix matches more than one object")

	// ErrInvalidKind indicates an unknown kind string
	ErrInvalidKind = errors.New("invalid kind")

	// ErrInvalidDateConcerns indicates an unknown date concerns string
	ErrInvalidDateConcerns = errors.New("invalid date concerns")

	// ErrUnknownTagType indicates a serialized tag with an unrecognized type
	ErrUnknownTagType = errors.New("unknown tag type")
)

// ObjectError represents an error related to an operation on one object
type ObjectError struct {
	Digest string
	Op     string
	Err    error
}

func (e *ObjectError) Error() string {
	return fmt.Sprintf("object operation %s failed for object %s: %v", e.Op, e.Digest, e.Err)
}

func (e *ObjectError) Unwrap() error {
	return e.Err
}
