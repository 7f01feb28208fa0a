package worker

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pricemunch/priceworker/internal/schedule"
	"pricemunch/priceworker/services/publisher"
)

func writeScheduleConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedule.json")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMonitorPublishesOverdueAlert(t *testing.T) {
	mockLogger := NewMockLogger()
	mockPublisher := NewMockPublisher()
	store := newMemoryCache()
	lastRuns := schedule.NewLastRunStore(store)

	configPath := writeScheduleConfig(t, `{
		"refresh": {"task": "refresh_prices", "schedule": 3600},
		"healthy": {"task": "healthy_task", "schedule": 3600}
	}`)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	assert.NoError(t, lastRuns.Record("refresh_prices", now.Add(-4*time.Hour)))
	assert.NoError(t, lastRuns.Record("healthy_task", now.Add(-30*time.Minute)))

	m := NewMonitor(context.Background(), configPath, lastRuns, mockPublisher, mockLogger, time.Minute, 1.5, 15*time.Minute)
	m.now = func() time.Time { return now }

	m.CheckOnce()

	published := mockPublisher.published(publisher.KeyScheduleAlert)
	assert.Len(t, published, 1)

	var alert schedule.Alert
	assert.NoError(t, json.Unmarshal(published[0], &alert))
	assert.Equal(t, "refresh", alert.Name)
	assert.Equal(t, "refresh_prices", alert.Task)
	assert.Greater(t, alert.Overdue, time.Duration(0))
	assert.Empty(t, mockLogger.errors)
}

func TestMonitorUnreadableConfig(t *testing.T) {
	mockLogger := NewMockLogger()
	mockPublisher := NewMockPublisher()
	lastRuns := schedule.NewLastRunStore(newMemoryCache())

	m := NewMonitor(context.Background(), "/nonexistent/schedule.json", lastRuns, mockPublisher, mockLogger, time.Minute, 1.5, 15*time.Minute)
	m.CheckOnce()

	assert.NotEmpty(t, mockLogger.errors)
	assert.Empty(t, mockPublisher.published(publisher.KeyScheduleAlert))
}
