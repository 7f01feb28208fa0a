package scrape

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"pricemunch/priceworker/helpers"
)

// DetectStrategies samples a single already-downloaded page and derives a
// minimal strategy map for its store. Each detected strategy records the
// value observed at detection time so it is immediately reusable without
// re-fetching; fields that were probed but not found are recorded as
// fallback strategies, distinct from fields never attempted.
func DetectStrategies(rawHTML []byte) StrategyMap {
	doc := detectionDocument(rawHTML)

	strategies := StrategyMap{}
	strategies[FieldTitle] = detectField(doc, []probe{
		{selector: metaSelector("og:title"), normalize: nil},
	})
	strategies[FieldPrice] = detectField(doc, []probe{
		{selector: metaSelector("product:price:amount"), normalize: NormalizePrice},
		{selector: priceFallbackSelector, normalize: NormalizePrice},
	})
	strategies[FieldImage] = detectField(doc, []probe{
		{selector: metaSelector("og:image"), normalize: nil},
	})

	return strategies
}

// probe is one candidate selector tried during detection
type probe struct {
	selector  string
	normalize Normalizer
}

// detectField returns a css strategy pinned to the first probe that
// extracts a value, or a fallback marker when none does
func detectField(doc *goquery.Document, probes []probe) FieldStrategy {
	for _, pr := range probes {
		locator, attr := ParseSelector(pr.selector)
		value := ExtractField(doc, locator, attr, pr.normalize)
		if value == "" {
			continue
		}
		return FieldStrategy{
			Kind:        FieldKindCSS,
			Selector:    pr.selector,
			CachedValue: value,
		}
	}
	return FieldStrategy{Kind: FieldKindFallback}
}

// metaSelector builds the selector for a meta tag's content attribute
func metaSelector(property string) string {
	return fmt.Sprintf(`meta[property=%q]::attr(content)`, property)
}

// detectionDocument decodes sampled page bytes to UTF-8 and parses them;
// a nil document just means nothing will be detected
func detectionDocument(rawHTML []byte) *goquery.Document {
	reader, err := helpers.DecodeToUTF8(rawHTML, "text/html")
	if err != nil {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil
	}
	return doc
}
