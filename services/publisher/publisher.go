package publisher

// Publisher delivers serialized product metadata and schedule alerts to
// downstream consumers
type Publisher interface {
	// Publish publishes a message under the given field key
	Publish(key string, message []byte) error

	// TrimStreams trims all streams to the configured maximum length
	TrimStreams() error

	// Close closes the publisher connection
	Close() error
}

// Field keys used on published stream entries
const (
	KeyProductMetadata = "b64_product_metadata"
	KeyScheduleAlert   = "b64_schedule_alert"
)
