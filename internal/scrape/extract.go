package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Normalizer adjusts a raw extracted value for one field. Returning an
// empty string rejects the match and the search moves to the next node.
type Normalizer func(string) string

// spaceSeparatedAttrs are the HTML attributes whose value is a list; only
// the first entry is taken.
var spaceSeparatedAttrs = map[string]bool{
	"class": true,
	"rel":   true,
}

// ExtractField walks the nodes matching locator in document order and
// returns the first value that is non-empty after normalization. With an
// attribute name the attribute value is read, otherwise the node's visible
// text. First structurally successful match wins; there is no scoring.
func ExtractField(doc *goquery.Document, locator, attr string, normalize Normalizer) string {
	if doc == nil || strings.TrimSpace(locator) == "" {
		return ""
	}

	var result string
	doc.Find(locator).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		value := nodeValue(s, attr)
		if value == "" {
			return true
		}
		if normalize != nil {
			value = normalize(value)
			if value == "" {
				return true
			}
		}
		result = value
		return false
	})

	return result
}

// nodeValue reads the attribute value (or visible text) of a single node
func nodeValue(s *goquery.Selection, attr string) string {
	if attr == "" {
		return strings.TrimSpace(s.Text())
	}

	value, exists := s.Attr(attr)
	if !exists {
		return ""
	}
	value = strings.TrimSpace(value)
	if spaceSeparatedAttrs[attr] {
		if fields := strings.Fields(value); len(fields) > 0 {
			value = fields[0]
		}
	}
	return value
}

// NewDocument parses payload HTML into a goquery document. Payload content
// is already UTF-8; raw sampled bytes go through helpers.DecodeToUTF8 first.
func NewDocument(content string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(content))
}
