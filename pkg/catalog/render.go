package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// RenderReadable turns an arbitrary payload into display text. Valid UTF-8
// is kept with every backslash doubled; each byte that cannot be decoded is
// written as a backslash followed by its \xHH escape, so a raw 0xFF becomes
// `\\xff`. It never fails.
func RenderReadable(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		switch {
		case r == utf8.RuneError && size <= 1:
			fmt.Fprintf(&sb, "\\\\x%02x", data[0])
			size = 1
		case r == '\\':
			sb.WriteString(`\\`)
		default:
			sb.Write(data[:size])
		}
		data = data[size:]
	}
	return sb.String()
}

// Describe returns a multi-line human-readable view of the object.
func Describe(o Object) string {
	switch o.kind {
	case KindEmpty:
		return "--- empty object ---"
	case KindPlainText:
		return lossyText(o.data)
	case KindPhoto:
		return "Contents --- \n(image data)\nTags --- \n" + o.describeTags()
	default:
		return "Contents --- \n" + RenderReadable(o.data) + "\nTags --- \n" + o.describeTags()
	}
}

func (o Object) describeTags() string {
	lines := make([]string, 0, o.tags.Len())
	for _, t := range o.tags.order {
		lines = append(lines, t.String())
	}
	return strings.Join(lines, "\n")
}

// lossyText decodes data as UTF-8, writing one U+FFFD for each maximal
// invalid subsequence: a byte that cannot start a sequence, or the longest
// prefix of a well-formed sequence that is cut short.
func lossyText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	var sb strings.Builder
	sb.Grow(len(data) + 8)

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size <= 1 {
			sb.WriteRune(utf8.RuneError)
			data = data[invalidPrefixLen(data):]
			continue
		}
		sb.Write(data[:size])
		data = data[size:]
	}
	return sb.String()
}

// invalidPrefixLen returns how many bytes of p, which does not start with a
// valid encoding, belong to the same broken sequence.
func invalidPrefixLen(p []byte) int {
	var n int
	lo, hi := byte(0x80), byte(0xBF)
	switch b := p[0]; {
	case b >= 0xC2 && b <= 0xDF:
		n = 2
	case b == 0xE0:
		n, lo = 3, 0xA0
	case b == 0xED:
		n, hi = 3, 0x9F
	case b >= 0xE1 && b <= 0xEF:
		n = 3
	case b == 0xF0:
		n, lo = 4, 0x90
	case b == 0xF4:
		n, hi = 4, 0x8F
	case b >= 0xF1 && b <= 0xF3:
		n = 4
	default:
		return 1
	}

	i := 1
	for ; i < n && i < len(p); i++ {
		if p[i] < lo || p[i] > hi {
			break
		}
		lo, hi = 0x80, 0xBF
	}
	return i
}
