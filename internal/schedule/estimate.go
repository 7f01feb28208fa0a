package schedule

import "time"

// defaultInterval applies to entries that carry no recognizable
// schedule form at all. This is a documented default, not an error.
const defaultInterval = 6 * time.Hour

// EstimateInterval computes the typical run interval of an entry. For
// interval forms it is the configured duration; non-positive values are
// rejected. For cron forms it is the gap between the next two matching
// instants after the reference, which samples the next gap as a proxy
// for the typical cadence. Exact for regular expressions, approximate
// for irregular ones. Malformed specs yield no estimate.
func EstimateInterval(entry Entry, reference time.Time) (time.Duration, bool) {
	switch entry.kind {
	case specNone:
		return defaultInterval, true
	case specInterval:
		if entry.interval <= 0 {
			return 0, false
		}
		return entry.interval, true
	case specCron:
		first, ok := entry.cron.nextMatch(reference)
		if !ok {
			return 0, false
		}
		second, ok := entry.cron.nextMatch(first)
		if !ok {
			return 0, false
		}
		return second.Sub(first), true
	}
	return 0, false
}

// NextRun computes the next expected run instant. Interval forms
// advance from the last run when known, else from the reference. Cron
// forms forward-search from whichever of reference and last run is
// later.
func NextRun(entry Entry, reference time.Time, lastRun *time.Time) (time.Time, bool) {
	switch entry.kind {
	case specNone:
		return anchor(reference, lastRun).Add(defaultInterval), true
	case specInterval:
		if entry.interval <= 0 {
			return time.Time{}, false
		}
		return anchor(reference, lastRun).Add(entry.interval), true
	case specCron:
		from := reference
		if lastRun != nil && lastRun.After(from) {
			from = *lastRun
		}
		return entry.cron.nextMatch(from)
	}
	return time.Time{}, false
}

func anchor(reference time.Time, lastRun *time.Time) time.Time {
	if lastRun != nil {
		return *lastRun
	}
	return reference
}
