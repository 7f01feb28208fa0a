package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractField(t *testing.T) {
	html := `
		<div class="listing">
			<span class="price"></span>
			<span class="price" data-amount="  19.90  ">19,90 €</span>
			<a class="link first" href="/a">first</a>
			<a class="link" href="/b">second</a>
		</div>
	`
	doc, err := NewDocument(html)
	assert.NoError(t, err)

	// Text of the first non-empty node wins
	assert.Equal(t, "19,90 €", ExtractField(doc, "span.price", "", nil))

	// Attribute values are trimmed
	assert.Equal(t, "19.90", ExtractField(doc, "span.price", "data-amount", nil))

	// Document order decides between structurally equal matches
	assert.Equal(t, "/a", ExtractField(doc, "a.link", "href", nil))

	// Multi-valued attributes yield their first entry
	assert.Equal(t, "link", ExtractField(doc, "a", "class", nil))

	// No match yields absence
	assert.Equal(t, "", ExtractField(doc, ".missing", "", nil))
	assert.Equal(t, "", ExtractField(doc, "span.price", "data-missing", nil))
	assert.Equal(t, "", ExtractField(nil, "span.price", "", nil))
	assert.Equal(t, "", ExtractField(doc, "  ", "", nil))
}

func TestExtractFieldNormalizerRejectsMatches(t *testing.T) {
	html := `
		<span class="price">call for price</span>
		<span class="price">1.299,00 €</span>
	`
	doc, err := NewDocument(html)
	assert.NoError(t, err)

	// The first node matches structurally but fails price normalization,
	// so the search continues to the second
	assert.Equal(t, "1299", ExtractField(doc, "span.price", "", NormalizePrice))
}
