package scrape

import "strings"

// Meta-tag keys consulted per field, in order
var (
	metaTitleKeys       = []string{"og:title", "twitter:title"}
	metaDescriptionKeys = []string{"og:description", "description"}
	metaPriceKeys       = []string{"product:price:amount", "og:price:amount"}
	metaCurrencyKeys    = []string{"product:price:currency", "og:price:currency"}
	metaImageKeys       = []string{"og:image", "twitter:image"}
)

// Generic last-resort selectors for fields no strategy or metadata resolved
const (
	priceFallbackSelector = `[itemprop="price"], .price, .product-price, .current-price, [class*="price"]`
	titleFallbackSelector = "h1"
	imageFallbackSelector = `[itemprop="image"], img.product-image, img.main-image`
)

// Parser turns scraper payloads into canonical product metadata using a
// store's field strategies, page metadata, embedded structured data and
// generic fallbacks, in that order.
type Parser struct {
	store StoreContext
}

// NewParser creates a parser with the given store context
func NewParser(store StoreContext) *Parser {
	return &Parser{store: store}
}

// Parse resolves all product fields from the payload. It never fails:
// fields that cannot be resolved stay empty and partial metadata is a
// valid, first-class result.
func (p *Parser) Parse(payload *Payload, strategies StrategyMap) *ProductMetadata {
	page := NewPage(payload)

	meta := &ProductMetadata{
		Title:       p.resolveTitle(page, payload, strategies),
		Description: p.resolveDescription(page, payload, strategies),
		Price:       p.resolvePrice(page, payload, strategies),
		Image:       p.resolveImage(page, payload, strategies),
	}
	meta.Currency = p.resolveCurrency(page, payload, strategies)
	meta.Locale = payload.Lang
	if meta.Locale == "" {
		meta.Locale = p.store.Locale
	}

	return meta
}

func (p *Parser) resolveTitle(page *Page, payload *Payload, strategies StrategyMap) string {
	if value := applyStrategy(strategies, FieldTitle, page, nil); value != "" {
		return value
	}
	if value := metaValue(payload, metaTitleKeys); value != "" {
		return value
	}
	if value := strings.TrimSpace(payload.Title); value != "" {
		return value
	}
	return ExtractField(page.Doc, titleFallbackSelector, "", nil)
}

func (p *Parser) resolveDescription(page *Page, payload *Payload, strategies StrategyMap) string {
	if value := applyStrategy(strategies, FieldDescription, page, nil); value != "" {
		return value
	}
	if value := metaValue(payload, metaDescriptionKeys); value != "" {
		return value
	}
	return strings.TrimSpace(payload.Excerpt)
}

func (p *Parser) resolvePrice(page *Page, payload *Payload, strategies StrategyMap) string {
	if value := applyStrategy(strategies, FieldPrice, page, NormalizePrice); value != "" {
		return value
	}
	if value := NormalizePrice(metaValue(payload, metaPriceKeys)); value != "" {
		return value
	}
	if price, _ := ExtractOffer(page.Doc); price != "" {
		if value := NormalizePrice(price); value != "" {
			return value
		}
	}
	return ExtractField(page.Doc, priceFallbackSelector, "", NormalizePrice)
}

func (p *Parser) resolveCurrency(page *Page, payload *Payload, strategies StrategyMap) string {
	if value := applyStrategy(strategies, FieldCurrency, page, nil); value != "" {
		return strings.ToUpper(value)
	}
	if value := metaValue(payload, metaCurrencyKeys); value != "" {
		return strings.ToUpper(value)
	}
	if _, currency := ExtractOffer(page.Doc); currency != "" {
		return currency
	}
	return strings.ToUpper(p.store.Currency)
}

func (p *Parser) resolveImage(page *Page, payload *Payload, strategies StrategyMap) string {
	value := applyStrategy(strategies, FieldImage, page, nil)
	if value == "" {
		value = metaValue(payload, metaImageKeys)
	}
	if value == "" {
		value = ExtractField(page.Doc, imageFallbackSelector, "src", nil)
	}
	return fixImageScheme(value)
}

// applyStrategy evaluates the store's strategy for a field, if any
func applyStrategy(strategies StrategyMap, field string, page *Page, normalize Normalizer) string {
	st, ok := strategies[field]
	if !ok {
		return ""
	}
	return st.Attempt(page, normalize)
}

// metaValue returns the first non-empty payload meta value for the keys
func metaValue(payload *Payload, keys []string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(payload.Meta[key]); value != "" {
			return value
		}
	}
	return ""
}

// fixImageScheme rewrites protocol-relative image URLs with the secure
// default scheme
func fixImageScheme(url string) string {
	if strings.HasPrefix(url, "//") {
		return "https:" + url
	}
	return url
}
