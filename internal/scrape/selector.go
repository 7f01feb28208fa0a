package scrape

import "strings"

const attrMarker = "::attr("

// ParseSelector splits a field-strategy selector string into a locator and
// an optional attribute name. "div.price::attr(data-price)" yields the
// locator "div.price" and the attribute "data-price"; "h1.title | text"
// yields "h1.title" and "text". A selector without either marker is the
// locator itself with no attribute.
func ParseSelector(selector string) (locator, attr string) {
	if idx := strings.Index(selector, attrMarker); idx >= 0 {
		locator = strings.TrimSpace(selector[:idx])
		attr = strings.TrimSpace(strings.TrimSuffix(selector[idx+len(attrMarker):], ")"))
		return locator, attr
	}

	if strings.Contains(selector, "|") {
		parts := strings.SplitN(selector, "|", 2)
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}

	return strings.TrimSpace(selector), ""
}
