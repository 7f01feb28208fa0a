package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractOffer(t *testing.T) {
	html := `
		<html><head>
		<script type="application/ld+json">not json at all</script>
		<script type="application/ld+json">
		{
			"@type": "Product",
			"name": "Kettle",
			"offers": {"@type": "Offer", "price": "34.99", "priceCurrency": "eur"}
		}
		</script>
		</head><body></body></html>
	`
	doc, err := NewDocument(html)
	assert.NoError(t, err)

	price, currency := ExtractOffer(doc)
	assert.Equal(t, "34.99", price)
	assert.Equal(t, "EUR", currency)
}

func TestExtractOfferOffersArrayAndNumbers(t *testing.T) {
	html := `
		<script type="application/ld+json">
		[{"@type": "Product", "offers": [{"price": 1299.5, "priceCurrency": "USD"}, {"price": 1399, "priceCurrency": "USD"}]}]
		</script>
	`
	doc, err := NewDocument(html)
	assert.NoError(t, err)

	price, currency := ExtractOffer(doc)
	assert.Equal(t, "1299.5", price)
	assert.Equal(t, "USD", currency)
}

func TestExtractOfferTopLevelFields(t *testing.T) {
	html := `
		<script type="application/ld+json">
		{"@type": "Offer", "price": "15", "priceCurrency": "gbp"}
		</script>
	`
	doc, err := NewDocument(html)
	assert.NoError(t, err)

	price, currency := ExtractOffer(doc)
	assert.Equal(t, "15", price)
	assert.Equal(t, "GBP", currency)
}

func TestExtractOfferAbsent(t *testing.T) {
	testCases := []string{
		`<body><p>no structured data</p></body>`,
		`<script type="application/ld+json">{"@type": "Product", "name": "no offer"}</script>`,
		`<script type="application/ld+json">{"offers": {"price": "12.00"}}</script>`,
	}

	for _, html := range testCases {
		doc, err := NewDocument(html)
		assert.NoError(t, err)

		price, currency := ExtractOffer(doc)
		assert.Equal(t, "", price, "html: %s", html)
		assert.Equal(t, "", currency, "html: %s", html)
	}
}
