package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const detectSampleHTML = `
	<html><head>
		<meta property="og:title" content="Standmixer 5000" />
		<meta property="product:price:amount" content="129,00" />
		<meta property="og:image" content="https://cdn.example.com/mixer.jpg" />
	</head><body></body></html>
`

func TestDetectStrategies(t *testing.T) {
	strategies := DetectStrategies([]byte(detectSampleHTML))

	title := strategies[FieldTitle]
	assert.Equal(t, FieldKindCSS, title.Kind)
	assert.Equal(t, `meta[property="og:title"]::attr(content)`, title.Selector)
	assert.Equal(t, "Standmixer 5000", title.CachedValue)

	price := strategies[FieldPrice]
	assert.Equal(t, FieldKindCSS, price.Kind)
	assert.Equal(t, "129", price.CachedValue)

	image := strategies[FieldImage]
	assert.Equal(t, FieldKindCSS, image.Kind)
	assert.Equal(t, "https://cdn.example.com/mixer.jpg", image.CachedValue)
}

func TestDetectStrategiesPriceClassFallback(t *testing.T) {
	html := `
		<html><body>
			<div class="product"><span class="price">49.95</span></div>
		</body></html>
	`
	strategies := DetectStrategies([]byte(html))

	price := strategies[FieldPrice]
	assert.Equal(t, FieldKindCSS, price.Kind)
	assert.Equal(t, priceFallbackSelector, price.Selector)
	assert.Equal(t, "49.95", price.CachedValue)

	// Probed but not found: explicit fallback marker without a cached value
	title := strategies[FieldTitle]
	assert.Equal(t, FieldKindFallback, title.Kind)
	assert.Equal(t, "", title.CachedValue)
}

func TestDetectStrategiesRoundTrip(t *testing.T) {
	strategies := DetectStrategies([]byte(detectSampleHTML))
	page := NewPage(&Payload{Content: detectSampleHTML})

	// Re-applying a detected strategy to the page it was sampled from
	// re-extracts the value it was seeded with
	assert.Equal(t, strategies[FieldTitle].CachedValue, strategies[FieldTitle].Attempt(page, nil))
	assert.Equal(t, strategies[FieldPrice].CachedValue, strategies[FieldPrice].Attempt(page, NormalizePrice))
	assert.Equal(t, strategies[FieldImage].CachedValue, strategies[FieldImage].Attempt(page, nil))
}
