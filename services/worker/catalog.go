package worker

import (
	"sync"

	"pricemunch/priceworker/internal/pricecache"
)

// MemoryCatalog is an in-memory Catalog. History grows without bound;
// the derived cache holds one entry per product.
type MemoryCatalog struct {
	mu      sync.RWMutex
	history map[string][]pricecache.Point
	cache   map[string]*pricecache.Entry
}

// NewMemoryCatalog creates an empty in-memory catalog
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		history: make(map[string][]pricecache.Point),
		cache:   make(map[string]*pricecache.Entry),
	}
}

// AppendPoint records one price observation
func (c *MemoryCatalog) AppendPoint(productID string, point pricecache.Point) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history[productID] = append(c.history[productID], point)
	return nil
}

// History returns a copy of all recorded points for a product
func (c *MemoryCatalog) History(productID string) ([]pricecache.Point, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	points := make([]pricecache.Point, len(c.history[productID]))
	copy(points, c.history[productID])
	return points, nil
}

// ReplaceCache swaps in a freshly built cache entry
func (c *MemoryCatalog) ReplaceCache(productID string, entry *pricecache.Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[productID] = entry
	return nil
}

// Cache returns the current cache entry for a product, or nil
func (c *MemoryCatalog) Cache(productID string) *pricecache.Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache[productID]
}
