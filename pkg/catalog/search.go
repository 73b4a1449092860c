package catalog

import (
	"encoding/hex"
	"strings"
)

// Matches reports whether the object satisfies a free-text query. Matching
// is literal and case-sensitive; how the payload is searched depends on the
// kind:
//
//   - KindEmpty never matches, not even the empty query.
//   - KindBinary matches when the lowercase hex encoding of the payload
//     contains query.
//   - KindPhoto matches when the value of an Exif tag contains query. The
//     scan stops with no match at the first tag that is not an Exif tag,
//     in insertion order. A photo without tags matches only the empty query.
//   - KindPlainText matches when the payload, decoded as UTF-8 with each
//     invalid sequence replaced by U+FFFD, contains query.
//   - Every other kind never matches.
func (o Object) Matches(query string) bool {
	switch o.kind {
	case KindEmpty:
		return false
	case KindBinary:
		return strings.Contains(hex.EncodeToString(o.data), query)
	case KindPhoto:
		for _, t := range o.tags.order {
			exif, ok := t.(Exif)
			if !ok {
				return false
			}
			if strings.Contains(exif.Value, query) {
				return true
			}
		}
		return o.tags.Len() == 0 && query == ""
	case KindPlainText:
		return strings.Contains(lossyText(o.data), query)
	default:
		return false
	}
}

// Search reports whether obj matches query. See Object.Matches.
func Search(obj Object, query string) bool {
	return obj.Matches(query)
}
