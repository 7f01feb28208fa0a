package schedule

import "time"

// Alert flags one entry whose actual last run lags its estimated next
// due instant by more than the configured slack. Alerts are derived,
// never persisted, and recomputed on every check.
type Alert struct {
	Name      string        `json:"name"`
	Task      string        `json:"task"`
	LastRunAt time.Time     `json:"last_run_at"`
	DueAt     time.Time     `json:"due_at"`
	Interval  time.Duration `json:"interval"`
	Overdue   time.Duration `json:"overdue"`
}

// CheckHealth compares each entry's last observed run against its
// estimated interval. It is a pure function of its arguments and holds
// no state between invocations. Entries that are disabled, have never
// run, or yield no interval estimate are skipped.
func CheckHealth(entries []Entry, lastRuns map[string]time.Time, now time.Time, multiplier float64, grace time.Duration) []Alert {
	var alerts []Alert
	for _, entry := range entries {
		if !entry.Enabled {
			continue
		}
		lastRun, ok := lastRuns[entry.Task]
		if !ok {
			continue
		}
		interval, ok := EstimateInterval(entry, now)
		if !ok || interval <= 0 {
			continue
		}

		elapsed := now.Sub(lastRun)
		if elapsed <= interval {
			continue
		}

		threshold := time.Duration(float64(interval) * multiplier)
		if threshold < grace {
			threshold = grace
		}
		if elapsed <= threshold {
			continue
		}

		dueAt := lastRun.Add(interval)
		overdue := now.Sub(dueAt)
		if overdue <= 0 {
			continue
		}

		alerts = append(alerts, Alert{
			Name:      entry.Name,
			Task:      entry.Task,
			LastRunAt: lastRun,
			DueAt:     dueAt,
			Interval:  interval,
			Overdue:   overdue,
		})
	}
	return alerts
}
