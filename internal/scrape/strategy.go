package scrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page bundles the parsed views of one payload that strategies operate on
type Page struct {
	Doc     *goquery.Document // parsed `content`
	FullDoc *goquery.Document // parsed `fullContent`, may be nil
	Text    string            // raw content text for regex strategies
}

// NewPage parses a payload's HTML views. A view that fails to parse is
// left nil; extraction proceeds on whatever parsed.
func NewPage(payload *Payload) *Page {
	page := &Page{Text: payload.Content}
	if doc, err := NewDocument(payload.Content); err == nil {
		page.Doc = doc
	}
	if payload.FullContent != "" && payload.FullContent != payload.Content {
		if doc, err := NewDocument(payload.FullContent); err == nil {
			page.FullDoc = doc
		}
	}
	return page
}

// attemptFunc is one branch of the strategy variant: attempt extraction
// from a page, returning "" when the branch yields nothing.
type attemptFunc func(st FieldStrategy, page *Page, normalize Normalizer) string

// strategyAttempts is the evaluation order of the strategy kinds. Each
// branch stands alone so it can be tested independently.
var strategyAttempts = []struct {
	kind    FieldKind
	attempt attemptFunc
}{
	{FieldKindCSS, attemptCSS},
	{FieldKindRegex, attemptRegex},
	{FieldKindExternal, attemptExternal},
	{FieldKindFallback, attemptFallback},
}

// Attempt evaluates the strategy against the page, returning the
// normalized value or "" when the strategy yields nothing.
func (st FieldStrategy) Attempt(page *Page, normalize Normalizer) string {
	for _, entry := range strategyAttempts {
		if entry.kind == st.Kind {
			return entry.attempt(st, page, normalize)
		}
	}
	return ""
}

func attemptCSS(st FieldStrategy, page *Page, normalize Normalizer) string {
	locator, attr := ParseSelector(st.Selector)
	if st.Attr != "" {
		attr = st.Attr
	}
	if value := ExtractField(page.Doc, locator, attr, normalize); value != "" {
		return value
	}
	return ExtractField(page.FullDoc, locator, attr, normalize)
}

func attemptRegex(st FieldStrategy, page *Page, normalize Normalizer) string {
	if st.Selector == "" {
		return ""
	}
	// An invalid pattern is skipped, not surfaced
	pattern, err := regexp.Compile(st.Selector)
	if err != nil {
		return ""
	}

	match := pattern.FindStringSubmatch(page.Text)
	if match == nil {
		return ""
	}
	value := match[0]
	if len(match) > 1 && match[1] != "" {
		value = match[1]
	}
	value = strings.TrimSpace(value)
	if value != "" && normalize != nil {
		value = normalize(value)
	}
	return value
}

// attemptExternal resolves to the value cached when the external scrape
// service last ran; the live call belongs to that collaborator.
func attemptExternal(st FieldStrategy, _ *Page, normalize Normalizer) string {
	value := strings.TrimSpace(st.CachedValue)
	if value != "" && normalize != nil {
		value = normalize(value)
	}
	return value
}

// attemptFallback is the explicit "no method known" marker
func attemptFallback(FieldStrategy, *Page, Normalizer) string {
	return ""
}
