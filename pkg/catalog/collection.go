package catalog

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Collection is a set of objects keyed by payload identity. Insertion order
// is kept for listing. It is not safe for concurrent use.
type Collection struct {
	order   []ObjectKey
	objects map[ObjectKey]Object
}

// NewCollection returns a collection holding objs, first occurrence winning.
func NewCollection(objs ...Object) *Collection {
	c := &Collection{objects: make(map[ObjectKey]Object)}
	for _, o := range objs {
		c.Insert(o)
	}
	return c
}

// Insert adds o unless an object with the same payload is already present,
// in which case the existing object, with its tags and kind, is kept.
// It reports whether o was added.
func (c *Collection) Insert(o Object) bool {
	if c.objects == nil {
		c.objects = make(map[ObjectKey]Object)
	}
	key := o.Key()
	if _, exists := c.objects[key]; exists {
		return false
	}
	c.objects[key] = o
	c.order = append(c.order, key)
	return true
}

// Remove deletes the object with the same payload as o and reports whether
// one was present.
func (c *Collection) Remove(o Object) bool {
	return c.RemoveKey(o.Key())
}

// RemoveKey deletes the object with the given key.
func (c *Collection) RemoveKey(key ObjectKey) bool {
	if _, exists := c.objects[key]; !exists {
		return false
	}
	delete(c.objects, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports whether an object with the same payload as o is present.
func (c *Collection) Contains(o Object) bool {
	_, exists := c.objects[o.Key()]
	return exists
}

// Get returns the stored object for key.
func (c *Collection) Get(key ObjectKey) (Object, bool) {
	o, exists := c.objects[key]
	return o, exists
}

// Find returns the single object whose digest starts with prefix.
func (c *Collection) Find(prefix string) (Object, error) {
	prefix = strings.ToLower(prefix)
	var (
		found Object
		n     int
	)
	for _, key := range c.order {
		o := c.objects[key]
		if strings.HasPrefix(o.Digest(), prefix) {
			found = o
			n++
		}
	}
	switch {
	case n == 0:
		return Object{}, &ObjectError{Digest: prefix, Op: "find", Err: ErrObjectNotFound}
	case n > 1:
		return Object{}, &ObjectError{Digest: prefix, Op: "find", Err: ErrAmbiguousDigest}
	}
	return found, nil
}

// Len returns the number of objects.
func (c *Collection) Len() int {
	return len(c.order)
}

// Objects returns the objects in insertion order.
func (c *Collection) Objects() []Object {
	out := make([]Object, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.objects[key])
	}
	return out
}

// Search returns the objects matching query, in insertion order.
func (c *Collection) Search(query string) []Object {
	var out []Object
	for _, key := range c.order {
		if o := c.objects[key]; o.Matches(query) {
			out = append(out, o)
		}
	}
	return out
}

// OfKind returns the objects of the given kind, in insertion order.
func (c *Collection) OfKind(kind Kind) []Object {
	var out []Object
	for _, key := range c.order {
		if o := c.objects[key]; o.kind == kind {
			out = append(out, o)
		}
	}
	return out
}

// Equal reports whether both collections hold the same payloads.
func (c *Collection) Equal(other *Collection) bool {
	if c.Len() != other.Len() {
		return false
	}
	for key := range c.objects {
		if _, exists := other.objects[key]; !exists {
			return false
		}
	}
	return true
}

func (c *Collection) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Objects())
}

func (c *Collection) UnmarshalJSON(data []byte) error {
	var objs []Object
	if err := json.Unmarshal(data, &objs); err != nil {
		return err
	}
	*c = *NewCollection(objs...)
	return nil
}

func (c *Collection) MarshalYAML() (interface{}, error) {
	return c.Objects(), nil
}

func (c *Collection) UnmarshalYAML(value *yaml.Node) error {
	var objs []Object
	if err := value.Decode(&objs); err != nil {
		return err
	}
	*c = *NewCollection(objs...)
	return nil
}
