package catalog

import (
	"fmt"
	"strings"
)

// Kind is the content type of an object. It decides which tag extraction and
// which search strategy apply.
type Kind string

// Kind constants (typed).
const (
	KindEmpty       Kind = "empty"
	KindPlainText   Kind = "plain_text"
	KindTypesetText Kind = "typeset_text"
	KindBinary      Kind = "binary"
	KindApp         Kind = "app"
	KindPhoto       Kind = "photo"
	KindSound       Kind = "sound"
	KindVideo       Kind = "video"
	KindModel3D     Kind = "model_3d"
	KindArchive     Kind = "archive"
)

const otherPrefix = "other:"

var knownKinds = []Kind{
	KindEmpty,
	KindPlainText,
	KindTypesetText,
	KindBinary,
	KindApp,
	KindPhoto,
	KindSound,
	KindVideo,
	KindModel3D,
	KindArchive,
}

// OtherKind returns a kind outside the built-in set, identified by label.
func OtherKind(label string) Kind {
	return Kind(otherPrefix + label)
}

// Label returns the label of a kind created with OtherKind, or "" for
// built-in kinds.
func (k Kind) Label() string {
	if strings.HasPrefix(string(k), otherPrefix) {
		return strings.TrimPrefix(string(k), otherPrefix)
	}
	return ""
}

// IsOther reports whether k was created with OtherKind.
func (k Kind) IsOther() bool {
	return strings.HasPrefix(string(k), otherPrefix)
}

// IsValid reports whether k is a built-in kind or an OtherKind value.
func (k Kind) IsValid() bool {
	if k.IsOther() {
		return true
	}
	for _, known := range knownKinds {
		if k == known {
			return true
		}
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind converts a string into a Kind, rejecting unknown values.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
	return k, nil
}

// Kinds returns the built-in kinds in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(knownKinds))
	copy(out, knownKinds)
	return out
}
