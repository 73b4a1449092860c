package catalog

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"

	blake2b "github.com/minio/blake2b-simd"
	"gopkg.in/yaml.v3"
)

// ObjectKey is the identity of an object: its payload bytes held as a string
// so it can be used as a map key.
type ObjectKey string

// Object is a classified payload with the tags derived from it.
//
// Identity covers the payload only. Equal and Key ignore tags and kind, so
// two objects built from the same bytes are the same object no matter how
// they were tagged.
type Object struct {
	data []byte
	tags TagSet
	kind Kind
}

// NewObject builds an object of the given kind carrying data verbatim.
func NewObject(kind Kind, data []byte, tags ...Tag) Object {
	return Object{
		data: bytes.Clone(data),
		tags: NewTagSet(tags...),
		kind: kind,
	}
}

// Data returns the payload. The slice must not be modified: the object's
// identity is computed from it.
func (o Object) Data() []byte {
	return o.data
}

// Size returns the payload length in bytes.
func (o Object) Size() int {
	return len(o.data)
}

// Kind returns the content kind.
func (o Object) Kind() Kind {
	return o.kind
}

// Tags returns the tags in insertion order.
func (o Object) Tags() []Tag {
	return o.tags.All()
}

// TagSet returns a copy of the tag set.
func (o Object) TagSet() TagSet {
	return o.tags.clone()
}

// Key returns the identity key used for equality and hashing.
func (o Object) Key() ObjectKey {
	return ObjectKey(o.data)
}

// Equal reports whether both objects carry the same payload bytes.
func (o Object) Equal(other Object) bool {
	return bytes.Equal(o.data, other.data)
}

// Digest returns the hex encoded BLAKE2b-256 sum of the payload. It is a
// short handle for display and lookup, not the identity.
func (o Object) Digest() string {
	sum := blake2b.Sum256(o.data)
	return hex.EncodeToString(sum[:])
}

// objectRecord is the serialized shape of an object.
type objectRecord struct {
	Kind Kind   `json:"kind" yaml:"kind"`
	Data string `json:"data" yaml:"data"`
	Tags TagSet `json:"tags" yaml:"tags"`
}

func (o Object) record() (objectRecord, error) {
	if !o.kind.IsValid() {
		return objectRecord{}, fmt.Errorf("%w: %q", ErrInvalidKind, o.kind)
	}
	return objectRecord{
		Kind: o.kind,
		Data: base64.StdEncoding.EncodeToString(o.data),
		Tags: o.tags,
	}, nil
}

func (r objectRecord) object() (Object, error) {
	if !r.Kind.IsValid() {
		return Object{}, fmt.Errorf("%w: %q", ErrInvalidKind, r.Kind)
	}
	data, err := base64.StdEncoding.DecodeString(r.Data)
	if err != nil {
		return Object{}, fmt.Errorf("invalid object data: %w", err)
	}
	return Object{data: data, tags: r.Tags, kind: r.Kind}, nil
}

func (o Object) MarshalJSON() ([]byte, error) {
	r, err := o.record()
	if err != nil {
		return nil, err
	}
	return json.Marshal(r)
}

func (o *Object) UnmarshalJSON(data []byte) error {
	var r objectRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	decoded, err := r.object()
	if err != nil {
		return err
	}
	*o = decoded
	return nil
}

func (o Object) MarshalYAML() (interface{}, error) {
	return o.record()
}

func (o *Object) UnmarshalYAML(value *yaml.Node) error {
	var r objectRecord
	if err := value.Decode(&r); err != nil {
		return err
	}
	decoded, err := r.object()
	if err != nil {
		return err
	}
	*o = decoded
	return nil
}
