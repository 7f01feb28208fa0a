package schedule

import (
	"strings"
	"time"

	"pricemunch/priceworker/services/cache"
)

// lastRunKeyPrefix namespaces last-run timestamps in the shared
// key-value store
const lastRunKeyPrefix = "schedule.last_run."

// LastRunStore persists one last-run instant per task name as an
// ISO-8601 UTC string in the shared key-value store.
type LastRunStore struct {
	cache cache.CacheService
}

// NewLastRunStore creates a last-run store backed by the given cache
func NewLastRunStore(c cache.CacheService) *LastRunStore {
	return &LastRunStore{cache: c}
}

// Key returns the store key for a task name
func Key(task string) string {
	return lastRunKeyPrefix + task
}

// Record persists the run instant of a task, normalized to UTC
func (s *LastRunStore) Record(task string, at time.Time) error {
	return s.cache.Set(Key(task), []byte(at.UTC().Format(time.RFC3339)), 0)
}

// Get reads the last run of a task; a missing or unreadable value
// reports as never run
func (s *LastRunStore) Get(task string) (time.Time, bool) {
	value, err := s.cache.Get(Key(task))
	if err != nil {
		return time.Time{}, false
	}
	at, err := time.Parse(time.RFC3339, strings.TrimSpace(string(value)))
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}

// Snapshot reads the last runs for the tasks of the given entries,
// keyed by task name. Tasks that never ran are simply absent.
func (s *LastRunStore) Snapshot(entries []Entry) map[string]time.Time {
	runs := make(map[string]time.Time)
	for _, entry := range entries {
		if entry.Task == "" {
			continue
		}
		if _, seen := runs[entry.Task]; seen {
			continue
		}
		if at, ok := s.Get(entry.Task); ok {
			runs[entry.Task] = at
		}
	}
	return runs
}
