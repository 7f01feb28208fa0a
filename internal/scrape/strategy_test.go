package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testPage(t *testing.T, content string) *Page {
	t.Helper()
	return NewPage(&Payload{Content: content})
}

func TestStrategyAttemptCSS(t *testing.T) {
	page := testPage(t, `
		<div class="product">
			<span class="amount" data-price="24,95">24,95 €</span>
		</div>
	`)

	st := FieldStrategy{Kind: FieldKindCSS, Selector: "span.amount::attr(data-price)"}
	assert.Equal(t, "24.95", st.Attempt(page, NormalizePrice))

	// The wire-level attr field overrides an attribute baked into the selector
	st = FieldStrategy{Kind: FieldKindCSS, Selector: "span.amount", Attr: "data-price"}
	assert.Equal(t, "24.95", st.Attempt(page, NormalizePrice))

	st = FieldStrategy{Kind: FieldKindCSS, Selector: "span.amount"}
	assert.Equal(t, "24.95", st.Attempt(page, NormalizePrice))

	st = FieldStrategy{Kind: FieldKindCSS, Selector: ".missing"}
	assert.Equal(t, "", st.Attempt(page, NormalizePrice))
}

func TestStrategyAttemptCSSFallsBackToFullContent(t *testing.T) {
	page := NewPage(&Payload{
		Content:     `<div class="summary">summary only</div>`,
		FullContent: `<div class="summary">summary only</div><span class="sku">A-100</span>`,
	})

	st := FieldStrategy{Kind: FieldKindCSS, Selector: "span.sku"}
	assert.Equal(t, "A-100", st.Attempt(page, nil))
}

func TestStrategyAttemptRegex(t *testing.T) {
	page := testPage(t, `<p>Unsere Preisempfehlung: 1.234,50 EUR inkl. MwSt.</p>`)

	st := FieldStrategy{Kind: FieldKindRegex, Selector: `Preisempfehlung: ([\d.,]+)`}
	assert.Equal(t, "1234.5", st.Attempt(page, NormalizePrice))

	// Without a capture group the whole match is used
	st = FieldStrategy{Kind: FieldKindRegex, Selector: `[\d.]+,\d\d`}
	assert.Equal(t, "1234.5", st.Attempt(page, NormalizePrice))

	// Invalid patterns are skipped, not surfaced
	st = FieldStrategy{Kind: FieldKindRegex, Selector: `([`}
	assert.Equal(t, "", st.Attempt(page, NormalizePrice))

	st = FieldStrategy{Kind: FieldKindRegex, Selector: ""}
	assert.Equal(t, "", st.Attempt(page, nil))
}

func TestStrategyAttemptExternal(t *testing.T) {
	page := testPage(t, `<p>nothing here</p>`)

	st := FieldStrategy{Kind: FieldKindExternal, CachedValue: " 49.90 "}
	assert.Equal(t, "49.9", st.Attempt(page, NormalizePrice))

	st = FieldStrategy{Kind: FieldKindExternal}
	assert.Equal(t, "", st.Attempt(page, NormalizePrice))
}

func TestStrategyAttemptFallback(t *testing.T) {
	page := testPage(t, `<span class="price">19.99</span>`)

	// Fallback is an explicit "no method known" marker and never extracts
	st := FieldStrategy{Kind: FieldKindFallback, CachedValue: "stale"}
	assert.Equal(t, "", st.Attempt(page, nil))

	// Unknown kinds yield nothing as well
	st = FieldStrategy{Kind: FieldKind("bogus"), Selector: "span.price"}
	assert.Equal(t, "", st.Attempt(page, nil))
}
