package scrape

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const structuredDataSelector = `script[type="application/ld+json"]`

// ExtractOffer scans the document's embedded LD+JSON blocks for an offer
// price/currency pair. Blocks that fail to parse are skipped. Returns
// empty strings when no block yields both values.
func ExtractOffer(doc *goquery.Document) (price, currency string) {
	if doc == nil {
		return "", ""
	}

	doc.Find(structuredDataSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var value interface{}
		if err := json.Unmarshal([]byte(s.Text()), &value); err != nil {
			return true
		}
		p, c := offerFromValue(value)
		if p == "" || c == "" {
			return true
		}
		price = p
		currency = strings.ToUpper(c)
		return false
	})

	return price, currency
}

// offerFromValue searches a parsed LD+JSON value for price and currency,
// preferring a nested offers object (or the first element of an offers
// array) over the value's own fields.
func offerFromValue(value interface{}) (string, string) {
	switch v := value.(type) {
	case []interface{}:
		for _, item := range v {
			if price, currency := offerFromValue(item); price != "" && currency != "" {
				return price, currency
			}
		}
	case map[string]interface{}:
		if offers, ok := v["offers"]; ok {
			switch o := offers.(type) {
			case map[string]interface{}:
				if price, currency := offerFields(o); price != "" && currency != "" {
					return price, currency
				}
			case []interface{}:
				if len(o) > 0 {
					if first, ok := o[0].(map[string]interface{}); ok {
						if price, currency := offerFields(first); price != "" && currency != "" {
							return price, currency
						}
					}
				}
			}
		}
		return offerFields(v)
	}
	return "", ""
}

// offerFields reads price and currency from one candidate object
func offerFields(obj map[string]interface{}) (string, string) {
	price := pickField(obj, "price", "lowPrice")
	currency := pickField(obj, "priceCurrency", "currency")
	return price, currency
}

// pickField returns the first named field rendered as a string; numbers
// keep their shortest representation
func pickField(obj map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		value, ok := obj[key]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case string:
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}
