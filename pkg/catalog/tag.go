package catalog

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Tag is a descriptive fact about an object. The set of cases is closed:
// Category, Exif, Title, Author, Date and OtherTag. Every case is a plain
// comparable value, so two tags are the same tag when all their fields match.
type Tag interface {
	fmt.Stringer
	isTag()
}

// Category files an object under a user-chosen category.
type Category struct {
	Text string
}

// Exif is one key/value pair read from embedded image metadata.
type Exif struct {
	Name  string
	Value string
}

// Title is the title of a document or work.
type Title struct {
	Text string
}

// Author names whoever produced the object.
type Author struct {
	Text string
}

// Date records a point in time and what it refers to.
type Date struct {
	Value    DateTime
	Concerns DateConcerns
}

// OtherTag is a free-form key/value pair.
type OtherTag struct {
	Name  string
	Value string
}

func (Category) isTag() {}
func (Exif) isTag()     {}
func (Title) isTag()    {}
func (Author) isTag()   {}
func (Date) isTag()     {}
func (OtherTag) isTag() {}

func (t Category) String() string { return "Category | " + t.Text }
func (t Exif) String() string     { return fmt.Sprintf("EXIF %s | %s", t.Name, t.Value) }
func (t Title) String() string    { return "Title | " + t.Text }
func (t Author) String() string   { return "Author | " + t.Text }
func (t Date) String() string     { return fmt.Sprintf("Date %s | %s", t.Concerns, t.Value) }
func (t OtherTag) String() string { return fmt.Sprintf("Other %s | %s", t.Name, t.Value) }

// TagSet is a set of tags that remembers insertion order. Order only affects
// iteration; membership is by value.
type TagSet struct {
	order []Tag
	index map[Tag]struct{}
}

// NewTagSet returns a set holding tags, dropping duplicates.
func NewTagSet(tags ...Tag) TagSet {
	var s TagSet
	for _, t := range tags {
		s.Add(t)
	}
	return s
}

// Add inserts t and reports whether it was not already present.
func (s *TagSet) Add(t Tag) bool {
	if t == nil {
		return false
	}
	if s.index == nil {
		s.index = make(map[Tag]struct{})
	}
	if _, exists := s.index[t]; exists {
		return false
	}
	s.index[t] = struct{}{}
	s.order = append(s.order, t)
	return true
}

// Has reports whether t is in the set.
func (s TagSet) Has(t Tag) bool {
	_, exists := s.index[t]
	return exists
}

// Len returns the number of tags.
func (s TagSet) Len() int {
	return len(s.order)
}

// All returns the tags in insertion order.
func (s TagSet) All() []Tag {
	out := make([]Tag, len(s.order))
	copy(out, s.order)
	return out
}

// Equal reports whether both sets hold the same tags, ignoring order.
func (s TagSet) Equal(other TagSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, t := range s.order {
		if !other.Has(t) {
			return false
		}
	}
	return true
}

func (s TagSet) clone() TagSet {
	return NewTagSet(s.order...)
}

// Tag type discriminators used in serialized form
const (
	tagTypeCategory = "category"
	tagTypeExif     = "exif"
	tagTypeTitle    = "title"
	tagTypeAuthor   = "author"
	tagTypeDate     = "date"
	tagTypeOther    = "other"
)

// tagRecord is the serialized shape of a single tag.
type tagRecord struct {
	Type     string       `json:"type" yaml:"type"`
	Text     string       `json:"text,omitempty" yaml:"text,omitempty"`
	Name     string       `json:"name,omitempty" yaml:"name,omitempty"`
	Value    string       `json:"value,omitempty" yaml:"value,omitempty"`
	Date     *DateTime    `json:"date,omitempty" yaml:"date,omitempty"`
	Concerns DateConcerns `json:"concerns,omitempty" yaml:"concerns,omitempty"`
}

func recordFromTag(t Tag) (tagRecord, error) {
	switch v := t.(type) {
	case Category:
		return tagRecord{Type: tagTypeCategory, Text: v.Text}, nil
	case Exif:
		return tagRecord{Type: tagTypeExif, Name: v.Name, Value: v.Value}, nil
	case Title:
		return tagRecord{Type: tagTypeTitle, Text: v.Text}, nil
	case Author:
		return tagRecord{Type: tagTypeAuthor, Text: v.Text}, nil
	case Date:
		// decoding rejects unknown concerns, so encoding must too
		if !v.Concerns.IsValid() {
			return tagRecord{}, fmt.Errorf("%w: %q", ErrInvalidDateConcerns, v.Concerns)
		}
		value := v.Value
		return tagRecord{Type: tagTypeDate, Date: &value, Concerns: v.Concerns}, nil
	case OtherTag:
		return tagRecord{Type: tagTypeOther, Name: v.Name, Value: v.Value}, nil
	}
	return tagRecord{}, fmt.Errorf("%w: %T", ErrUnknownTagType, t)
}

func (r tagRecord) tag() (Tag, error) {
	switch r.Type {
	case tagTypeCategory:
		return Category{Text: r.Text}, nil
	case tagTypeExif:
		return Exif{Name: r.Name, Value: r.Value}, nil
	case tagTypeTitle:
		return Title{Text: r.Text}, nil
	case tagTypeAuthor:
		return Author{Text: r.Text}, nil
	case tagTypeDate:
		if !r.Concerns.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDateConcerns, r.Concerns)
		}
		var value DateTime
		if r.Date != nil {
			value = *r.Date
		}
		return Date{Value: value, Concerns: r.Concerns}, nil
	case tagTypeOther:
		return OtherTag{Name: r.Name, Value: r.Value}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTagType, r.Type)
}

func (s TagSet) records() ([]tagRecord, error) {
	records := make([]tagRecord, 0, len(s.order))
	for _, t := range s.order {
		r, err := recordFromTag(t)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func tagSetFromRecords(records []tagRecord) (TagSet, error) {
	var s TagSet
	for _, r := range records {
		t, err := r.tag()
		if err != nil {
			return TagSet{}, err
		}
		s.Add(t)
	}
	return s, nil
}

func (s TagSet) MarshalJSON() ([]byte, error) {
	records, err := s.records()
	if err != nil {
		return nil, err
	}
	return json.Marshal(records)
}

func (s *TagSet) UnmarshalJSON(data []byte) error {
	var records []tagRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	decoded, err := tagSetFromRecords(records)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}

func (s TagSet) MarshalYAML() (interface{}, error) {
	return s.records()
}

func (s *TagSet) UnmarshalYAML(value *yaml.Node) error {
	var records []tagRecord
	if err := value.Decode(&records); err != nil {
		return err
	}
	decoded, err := tagSetFromRecords(records)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}
