package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testStore = StoreContext{Name: "TestStore", Currency: "eur", Locale: "de"}

func TestParseWithStoreStrategies(t *testing.T) {
	parser := NewParser(testStore)

	payload := &Payload{
		Title: "scraper guess",
		Lang:  "de",
		Meta:  map[string]string{"og:title": "meta guess"},
		Content: `
			<h2 class="product-name">Espressomaschine Classic</h2>
			<span class="sale-amount" data-price="  299,00 ">299,00 €</span>
			<img id="hero" src="//cdn.example.com/espresso.jpg" />
		`,
		Source: "https://shop.example.com/espresso",
	}

	strategies := StrategyMap{
		FieldTitle: {Kind: FieldKindCSS, Selector: "h2.product-name"},
		FieldPrice: {Kind: FieldKindCSS, Selector: "span.sale-amount::attr(data-price)"},
		FieldImage: {Kind: FieldKindCSS, Selector: "img#hero", Attr: "src"},
	}

	meta := parser.Parse(payload, strategies)

	// Explicit strategies win over meta tags and payload guesses
	assert.Equal(t, "Espressomaschine Classic", meta.Title)
	assert.Equal(t, "299", meta.Price)
	assert.Equal(t, "https://cdn.example.com/espresso.jpg", meta.Image)
	assert.Equal(t, "EUR", meta.Currency)
	assert.Equal(t, "de", meta.Locale)
}

func TestParseMetaTagResolution(t *testing.T) {
	parser := NewParser(testStore)

	payload := &Payload{
		Lang: "en",
		Meta: map[string]string{
			"og:title":               "Meta Kettle",
			"product:price:amount":   "34.90",
			"product:price:currency": "usd",
			"og:image":               "https://cdn.example.com/kettle.jpg",
			"og:description":         "A kettle.",
		},
		Content: `<div>nothing useful</div>`,
	}

	meta := parser.Parse(payload, nil)
	assert.Equal(t, "Meta Kettle", meta.Title)
	assert.Equal(t, "34.9", meta.Price)
	assert.Equal(t, "USD", meta.Currency)
	assert.Equal(t, "https://cdn.example.com/kettle.jpg", meta.Image)
	assert.Equal(t, "A kettle.", meta.Description)
	assert.Equal(t, "en", meta.Locale)
}

func TestParseStructuredDataResolution(t *testing.T) {
	parser := NewParser(testStore)

	payload := &Payload{
		Content: `
			<h1>Toaster Deluxe</h1>
			<script type="application/ld+json">
			{"@type": "Product", "offers": {"price": "54.50", "priceCurrency": "chf"}}
			</script>
		`,
	}

	meta := parser.Parse(payload, nil)
	assert.Equal(t, "Toaster Deluxe", meta.Title)
	assert.Equal(t, "54.5", meta.Price)
	assert.Equal(t, "CHF", meta.Currency)
}

func TestParseFallbackHeuristics(t *testing.T) {
	parser := NewParser(testStore)

	payload := &Payload{
		Excerpt: "short excerpt",
		Content: `
			<h1>Blender Pro</h1>
			<div class="price-box"><span class="price">89,90 €</span></div>
		`,
	}

	meta := parser.Parse(payload, StrategyMap{
		FieldPrice: {Kind: FieldKindFallback},
	})

	// A fallback-kind strategy contributes nothing; the generic price
	// class heuristic takes over
	assert.Equal(t, "89.9", meta.Price)
	assert.Equal(t, "Blender Pro", meta.Title)
	assert.Equal(t, "short excerpt", meta.Description)

	// Store defaults fill unresolved currency/locale
	assert.Equal(t, "EUR", meta.Currency)
	assert.Equal(t, "de", meta.Locale)
}

func TestParseNeverFails(t *testing.T) {
	parser := NewParser(StoreContext{})

	meta := parser.Parse(&Payload{Content: "<<<< not html, not useful"}, nil)
	assert.NotNil(t, meta)
	assert.Equal(t, "", meta.Price)
	assert.Equal(t, "", meta.Title)
}
