package scrape

// FieldKind identifies how a field strategy extracts its value.
// The values double as the persisted wire form of the strategy type.
type FieldKind string

const (
	// FieldKindCSS extracts via a CSS locator with an optional attribute
	FieldKindCSS FieldKind = "css"
	// FieldKindRegex extracts via a regular expression over the page text
	FieldKindRegex FieldKind = "regex"
	// FieldKindExternal defers to an external scrape service; only the
	// value cached at detection time is usable locally
	FieldKindExternal FieldKind = "scrape_api"
	// FieldKindFallback marks a field that was probed and not found,
	// as opposed to never attempted
	FieldKindFallback FieldKind = "fallback"
)

// Logical field names used in a store's strategy map
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCurrency    = "currency"
	FieldImage       = "image"
)

// FieldStrategy describes how to extract one logical field from a page.
// It is persisted per store as {"type", "selector", "attr", "data"}.
type FieldStrategy struct {
	Kind        FieldKind `json:"type"`
	Selector    string    `json:"selector,omitempty"`
	Attr        string    `json:"attr,omitempty"`
	CachedValue string    `json:"data,omitempty"`
}

// StrategyMap maps logical field names to their per-store strategies
type StrategyMap map[string]FieldStrategy

// StoreContext carries the store-level defaults applied when extraction
// yields no value of its own
type StoreContext struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Locale   string `json:"locale"`
}

// Payload is a scraper response as delivered by the external fetching
// collaborator. Pages are never fetched here.
type Payload struct {
	Title       string            `json:"title"`
	Excerpt     string            `json:"excerpt"`
	Lang        string            `json:"lang"`
	Meta        map[string]string `json:"meta"`
	Content     string            `json:"content"`
	FullContent string            `json:"full_content"`
	Source      string            `json:"source"`
}

// ProductMetadata is the canonical parse output. An empty field means the
// field could not be resolved; a partially filled result is valid.
type ProductMetadata struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price,omitempty"`
	Currency    string `json:"currency,omitempty"`
	Image       string `json:"image,omitempty"`
	Locale      string `json:"locale,omitempty"`
}
