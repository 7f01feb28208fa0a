// Package pricecache collapses a product's full price history into the
// compact derived cache persisted on the product record.
package pricecache

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Trend values comparing the two most recent price points
const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendNone = "none"
)

// historyWindowDays bounds the per-day display window. Aggregates are
// unaffected and always cover the full history.
const historyWindowDays = 10

const dayFormat = "2006-01-02"

// Point is one immutable price observation
type Point struct {
	Price      decimal.Decimal `json:"price"`
	Currency   string          `json:"currency"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// Aggregates are computed over all history points
type Aggregates struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
	Avg decimal.Decimal `json:"avg"`
}

// StoreContext carries the store fields copied onto the cache entry
type StoreContext struct {
	Name     string
	Currency string
	Locale   string
}

// Entry is the derived price cache. It is recomputed wholesale on every
// rebuild and replaces the previous entry atomically; Price doubles as
// the denormalized current-price scalar for filter/sort queries.
type Entry struct {
	Price      decimal.Decimal            `json:"price"`
	Currency   string                     `json:"currency"`
	Locale     string                     `json:"locale"`
	Trend      string                     `json:"trend"`
	LastScrape time.Time                  `json:"last_scrape"`
	History    map[string]decimal.Decimal `json:"history"`
	Aggregates Aggregates                 `json:"aggregates"`
	StoreName  string                     `json:"store_name"`
}

// Build reduces the complete, unwindowed price history of one product
// into a cache entry. Returns nil when there is no history at all.
func Build(points []Point, store StoreContext) *Entry {
	if len(points) == 0 {
		return nil
	}

	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RecordedAt.Before(sorted[j].RecordedAt)
	})

	current := sorted[len(sorted)-1]

	entry := &Entry{
		Price:      current.Price,
		Currency:   currencyOf(current, store),
		Locale:     store.Locale,
		Trend:      trendOf(sorted),
		LastScrape: current.RecordedAt,
		History:    historyWindow(sorted),
		Aggregates: aggregatesOf(sorted),
		StoreName:  store.Name,
	}

	return entry
}

// trendOf compares only the two most recent points; fewer than two
// points, or equal prices, mean no trend
func trendOf(sorted []Point) string {
	if len(sorted) < 2 {
		return TrendNone
	}
	current := sorted[len(sorted)-1]
	previous := sorted[len(sorted)-2]
	switch current.Price.Cmp(previous.Price) {
	case -1:
		return TrendDown
	case 1:
		return TrendUp
	}
	return TrendNone
}

// historyWindow keeps the last observation of each calendar day and at
// most the ten most recent distinct days
func historyWindow(sorted []Point) map[string]decimal.Decimal {
	byDay := make(map[string]decimal.Decimal)
	var days []string
	for _, pt := range sorted {
		day := pt.RecordedAt.UTC().Format(dayFormat)
		if _, seen := byDay[day]; !seen {
			days = append(days, day)
		}
		byDay[day] = pt.Price
	}

	sort.Strings(days)
	if len(days) > historyWindowDays {
		days = days[len(days)-historyWindowDays:]
	}

	window := make(map[string]decimal.Decimal, len(days))
	for _, day := range days {
		window[day] = byDay[day]
	}
	return window
}

// aggregatesOf spans all points regardless of the display window
func aggregatesOf(sorted []Point) Aggregates {
	min := sorted[0].Price
	max := sorted[0].Price
	sum := decimal.Zero
	for _, pt := range sorted {
		if pt.Price.LessThan(min) {
			min = pt.Price
		}
		if pt.Price.GreaterThan(max) {
			max = pt.Price
		}
		sum = sum.Add(pt.Price)
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(sorted)))).Round(2)
	return Aggregates{Min: min, Max: max, Avg: avg}
}

// currencyOf prefers the point's own currency over the store default
func currencyOf(current Point, store StoreContext) string {
	if current.Currency != "" {
		return current.Currency
	}
	return store.Currency
}
