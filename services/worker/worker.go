package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"pricemunch/priceworker/helpers"
	"pricemunch/priceworker/internal/pricecache"
	"pricemunch/priceworker/internal/schedule"
	"pricemunch/priceworker/internal/scrape"
	"pricemunch/priceworker/services/publisher"
)

// ProductPayload couples one product's scraper response with the store
// strategies needed to interpret it
type ProductPayload struct {
	ProductID  string              `json:"product_id"`
	Store      scrape.StoreContext `json:"store"`
	Strategies scrape.StrategyMap  `json:"strategies"`
	Payload    scrape.Payload      `json:"payload"`
}

// Source supplies pending scrape payloads for one logical task
type Source interface {
	// FetchPayloads returns the payloads currently awaiting processing
	FetchPayloads() ([]ProductPayload, error)

	// GetName returns the source name used in logs
	GetName() string

	// GetTask returns the schedule task name this source fulfills
	GetTask() string
}

// Catalog persists price history and the derived per-product cache
type Catalog interface {
	// AppendPoint records one immutable price observation
	AppendPoint(productID string, point pricecache.Point) error

	// History returns all recorded points for a product
	History(productID string) ([]pricecache.Point, error)

	// ReplaceCache swaps in a freshly built cache entry
	ReplaceCache(productID string, entry *pricecache.Entry) error
}

// Worker drains payload sources, parses product metadata, maintains the
// price catalog, and records each source's run for health monitoring
type Worker struct {
	ctx             context.Context
	sources         []Source
	catalog         Catalog
	publisher       publisher.Publisher
	lastRuns        *schedule.LastRunStore
	logger          helpers.LoggerInterface
	refreshInterval time.Duration
	now             func() time.Time
}

// NewWorker creates a new worker
func NewWorker(
	ctx context.Context,
	sources []Source,
	catalog Catalog,
	pub publisher.Publisher,
	lastRuns *schedule.LastRunStore,
	logger helpers.LoggerInterface,
	refreshInterval time.Duration,
) *Worker {
	return &Worker{
		ctx:             ctx,
		sources:         sources,
		catalog:         catalog,
		publisher:       pub,
		lastRuns:        lastRuns,
		logger:          logger,
		refreshInterval: refreshInterval,
		now:             time.Now,
	}
}

// SetClock overrides the time source, used by tests for deterministic
// run timestamps
func (w *Worker) SetClock(now func() time.Time) {
	w.now = now
}

// Start runs the refresh loop until the context is cancelled
func (w *Worker) Start() {
	ticker := time.NewTicker(w.refreshInterval)
	defer ticker.Stop()

	for {
		start := w.now()
		w.RunOnce()
		w.logger.LogInfo("refresh cycle finished in %s", time.Since(start))

		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce drains all sources once and then trims the streams
func (w *Worker) RunOnce() {
	for _, source := range w.sources {
		w.refreshSource(source)
	}

	if err := w.publisher.TrimStreams(); err != nil {
		w.logger.LogError("StreamTrimming", err)
	}
}

// refreshSource processes every pending payload of one source and, on
// success, records the run instant for the source's task
func (w *Worker) refreshSource(source Source) {
	name := source.GetName()

	payloads, err := source.FetchPayloads()
	if err != nil {
		w.logger.LogError(name, err)
		return
	}

	for _, payload := range payloads {
		if err := w.processPayload(payload); err != nil {
			w.logger.LogError(name, err)
		}
	}

	if task := source.GetTask(); task != "" {
		if err := w.lastRuns.Record(task, w.now()); err != nil {
			w.logger.LogError(name, err)
		}
	}
}

// processPayload parses one payload, publishes the resulting metadata,
// and rebuilds the product's price cache when a price was resolved
func (w *Worker) processPayload(p ProductPayload) error {
	parser := scrape.NewParser(p.Store)
	meta := parser.Parse(&p.Payload, p.Strategies)

	metaData, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	if err := w.publisher.Publish(publisher.KeyProductMetadata, metaData); err != nil {
		return err
	}

	// An unresolved price is absence, not an error; the catalog simply
	// gains no new point
	if meta.Price == "" {
		return nil
	}

	price, err := decimal.NewFromString(meta.Price)
	if err != nil {
		return err
	}

	point := pricecache.Point{
		Price:      price,
		Currency:   meta.Currency,
		RecordedAt: w.now().UTC(),
	}
	if err := w.catalog.AppendPoint(p.ProductID, point); err != nil {
		return err
	}

	points, err := w.catalog.History(p.ProductID)
	if err != nil {
		return err
	}

	entry := pricecache.Build(points, pricecache.StoreContext{
		Name:     p.Store.Name,
		Currency: p.Store.Currency,
		Locale:   p.Store.Locale,
	})
	return w.catalog.ReplaceCache(p.ProductID, entry)
}
