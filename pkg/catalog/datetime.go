package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Component is one optional part of a DateTime.
type Component struct {
	Value int
	Valid bool
}

// Some returns a present component.
func Some(v int) Component {
	return Component{Value: v, Valid: true}
}

// None is the absent component.
var None = Component{}

func (c Component) format(width int) string {
	if !c.Valid {
		return strings.Repeat("#", width)
	}
	return fmt.Sprintf("%0*d", width, c.Value)
}

func (c Component) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

func (c *Component) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = None
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid date component: %w", err)
	}
	*c = Some(v)
	return nil
}

func (c Component) MarshalYAML() (interface{}, error) {
	if !c.Valid {
		return nil, nil
	}
	return c.Value, nil
}

func (c *Component) UnmarshalYAML(value *yaml.Node) error {
	if value.ShortTag() == "!!null" {
		*c = None
		return nil
	}
	var v int
	if err := value.Decode(&v); err != nil {
		return fmt.Errorf("invalid date component: %w", err)
	}
	*c = Some(v)
	return nil
}

// DateTime is a calendar timestamp whose parts may each be unknown, e.g. a
// photo whose metadata records only the year.
type DateTime struct {
	Year   Component `json:"year" yaml:"year"`
	Month  Component `json:"month" yaml:"month"`
	Day    Component `json:"day" yaml:"day"`
	Hour   Component `json:"hour" yaml:"hour"`
	Minute Component `json:"minute" yaml:"minute"`
	Second Component `json:"second" yaml:"second"`
}

// DateTimeFromTime returns a DateTime with every component present.
func DateTimeFromTime(t time.Time) DateTime {
	return DateTime{
		Year:   Some(t.Year()),
		Month:  Some(int(t.Month())),
		Day:    Some(t.Day()),
		Hour:   Some(t.Hour()),
		Minute: Some(t.Minute()),
		Second: Some(t.Second()),
	}
}

// String renders the timestamp as "YYYY-MM-DD HH:MM:SS", with "####" or
// "##" standing in for absent components.
func (d DateTime) String() string {
	return fmt.Sprintf("%s-%s-%s %s:%s:%s",
		d.Year.format(4),
		d.Month.format(2),
		d.Day.format(2),
		d.Hour.format(2),
		d.Minute.format(2),
		d.Second.format(2),
	)
}

// DateConcerns says what a Date tag refers to.
type DateConcerns string

// DateConcerns constants (typed).
const (
	ConcernsCreated DateConcerns = "created" // when the object was created
	ConcernsAdded   DateConcerns = "added"   // when the object was added to the catalog
	ConcernsEdited  DateConcerns = "edited"  // when the object was last edited
)

// OtherConcerns returns a DateConcerns outside the built-in set.
func OtherConcerns(label string) DateConcerns {
	return DateConcerns(otherPrefix + label)
}

// IsValid reports whether c is a built-in value or an OtherConcerns value.
func (c DateConcerns) IsValid() bool {
	switch c {
	case ConcernsCreated, ConcernsAdded, ConcernsEdited:
		return true
	}
	return strings.HasPrefix(string(c), otherPrefix)
}

func (c DateConcerns) String() string {
	switch c {
	case ConcernsCreated:
		return "Created"
	case ConcernsAdded:
		return "Added"
	case ConcernsEdited:
		return "Edited"
	}
	return strings.TrimPrefix(string(c), otherPrefix)
}

// Location is a named place with a fixed-point coordinate pair scaled by
// 10000. No builder produces it yet.
type Location struct {
	Place     *string `json:"place" yaml:"place"`
	Latitude  uint64  `json:"latitude" yaml:"latitude"`
	Longitude uint64  `json:"longitude" yaml:"longitude"`
}

const locationScale = 10000

// NewLocation converts degrees to the scaled representation. Negative
// coordinates are clamped to zero.
func NewLocation(place string, lat, long float64) Location {
	loc := Location{
		Latitude:  scaleDegrees(lat),
		Longitude: scaleDegrees(long),
	}
	if place != "" {
		loc.Place = &place
	}
	return loc
}

func scaleDegrees(v float64) uint64 {
	if v <= 0 {
		return 0
	}
	return uint64(v*locationScale + 0.5)
}

// Degrees returns the coordinate pair in degrees.
func (l Location) Degrees() (lat, long float64) {
	return float64(l.Latitude) / locationScale, float64(l.Longitude) / locationScale
}
