package catalog

import (
	"bytes"
	"net/http"
	"strings"
	"unicode/utf8"
)

// Rule is one step of a classification chain: when Match accepts the
// payload, the payload is of Kind.
type Rule struct {
	Name  string
	Kind  Kind
	Match func(data []byte) bool
}

var (
	tiffLittleEndian = []byte{0x49, 0x49, 0x2A, 0x00}
	tiffBigEndian    = []byte{0x4D, 0x4D, 0x00, 0x2A}
)

// TIFFRule matches payloads starting with either byte-order variant of the
// TIFF header. Only the prefix is inspected.
func TIFFRule() Rule {
	return Rule{
		Name: "tiff-signature",
		Kind: KindPhoto,
		Match: func(data []byte) bool {
			return bytes.HasPrefix(data, tiffLittleEndian) || bytes.HasPrefix(data, tiffBigEndian)
		},
	}
}

// TextRule matches payloads that are entirely valid UTF-8, including the
// empty payload.
func TextRule() Rule {
	return Rule{
		Name:  "utf8-text",
		Kind:  KindPlainText,
		Match: utf8.Valid,
	}
}

// SniffRules returns rules that map well-known binary signatures onto kinds
// using the MIME sniffing algorithm of net/http. They are meant to follow the
// built-in rules, so text payloads are already claimed by the time they run.
func SniffRules() []Rule {
	return []Rule{
		sniffRule("sniff-image", KindPhoto, "image/"),
		sniffRule("sniff-audio", KindSound, "audio/"),
		sniffRule("sniff-video", KindVideo, "video/"),
		sniffRule("sniff-archive", KindArchive,
			"application/zip", "application/x-gzip", "application/x-rar-compressed"),
		sniffRule("sniff-document", KindTypesetText, "application/pdf", "application/postscript"),
		sniffRule("sniff-wasm", KindApp, "application/wasm"),
		{
			Name: "executable-signature",
			Kind: KindApp,
			Match: func(data []byte) bool {
				return bytes.HasPrefix(data, []byte("\x7fELF")) || bytes.HasPrefix(data, []byte("MZ"))
			},
		},
	}
}

func sniffRule(name string, kind Kind, prefixes ...string) Rule {
	return Rule{
		Name: name,
		Kind: kind,
		Match: func(data []byte) bool {
			if len(data) == 0 {
				return false
			}
			mime := http.DetectContentType(data)
			for _, p := range prefixes {
				if strings.HasPrefix(mime, p) {
					return true
				}
			}
			return false
		},
	}
}

// Classifier tries its rules in order and returns the kind of the first
// match. Payloads no rule accepts are KindBinary.
type Classifier struct {
	rules []Rule
}

// NewClassifier returns a classifier running the built-in rules followed by
// extra. Extra rules never take priority over the built-in ones.
func NewClassifier(extra ...Rule) *Classifier {
	rules := []Rule{TIFFRule(), TextRule()}
	for _, r := range extra {
		if r.Match != nil {
			rules = append(rules, r)
		}
	}
	return &Classifier{rules: rules}
}

// Classify returns the kind of data. It never fails.
func (c *Classifier) Classify(data []byte) Kind {
	kind, _ := c.Explain(data)
	return kind
}

// Explain returns the kind of data and the name of the rule that decided it,
// or "" when nothing matched and the fallback applied.
func (c *Classifier) Explain(data []byte) (Kind, string) {
	for _, r := range c.rules {
		if r.Match(data) {
			return r.Kind, r.Name
		}
	}
	return KindBinary, ""
}

// Rules returns the names of the rules in evaluation order.
func (c *Classifier) Rules() []string {
	names := make([]string, 0, len(c.rules))
	for _, r := range c.rules {
		names = append(names, r.Name)
	}
	return names
}

var defaultClassifier = NewClassifier()

// Classify classifies data with the built-in rules only.
func Classify(data []byte) Kind {
	return defaultClassifier.Classify(data)
}
