package worker

import (
	"context"
	"encoding/json"
	"time"

	"pricemunch/priceworker/helpers"
	"pricemunch/priceworker/internal/schedule"
	"pricemunch/priceworker/services/publisher"
)

// Monitor periodically reloads the schedule configuration, compares
// last-run timestamps against estimated intervals, and publishes an
// alert per overdue entry. It only estimates and flags; it never fires
// jobs.
type Monitor struct {
	ctx           context.Context
	configPath    string
	lastRuns      *schedule.LastRunStore
	publisher     publisher.Publisher
	logger        helpers.LoggerInterface
	checkInterval time.Duration
	multiplier    float64
	grace         time.Duration
	now           func() time.Time
}

// NewMonitor creates a schedule health monitor
func NewMonitor(
	ctx context.Context,
	configPath string,
	lastRuns *schedule.LastRunStore,
	pub publisher.Publisher,
	logger helpers.LoggerInterface,
	checkInterval time.Duration,
	multiplier float64,
	grace time.Duration,
) *Monitor {
	return &Monitor{
		ctx:           ctx,
		configPath:    configPath,
		lastRuns:      lastRuns,
		publisher:     pub,
		logger:        logger,
		checkInterval: checkInterval,
		multiplier:    multiplier,
		grace:         grace,
		now:           time.Now,
	}
}

// SetClock overrides the time source, used by tests for deterministic
// health checks
func (m *Monitor) SetClock(now func() time.Time) {
	m.now = now
}

// Start runs the health check loop until the context is cancelled
func (m *Monitor) Start() {
	ticker := time.NewTicker(m.checkInterval)
	defer ticker.Stop()

	for {
		m.CheckOnce()

		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// CheckOnce performs one full health pass. The configuration is
// re-read every pass so external edits take effect without a restart.
func (m *Monitor) CheckOnce() {
	entries, err := schedule.LoadFile(m.configPath)
	if err != nil {
		m.logger.LogError("ScheduleMonitor", err)
		return
	}

	lastRuns := m.lastRuns.Snapshot(entries)
	alerts := schedule.CheckHealth(entries, lastRuns, m.now(), m.multiplier, m.grace)

	for _, alert := range alerts {
		data, err := json.Marshal(alert)
		if err != nil {
			m.logger.LogError("ScheduleMonitor", err)
			continue
		}
		if err := m.publisher.Publish(publisher.KeyScheduleAlert, data); err != nil {
			m.logger.LogError("ScheduleMonitor", err)
			continue
		}
		m.logger.LogInfo("schedule entry %s overdue by %s", alert.Name, alert.Overdue)
	}
}
