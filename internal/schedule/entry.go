// Package schedule interprets heterogeneous schedule specifications and
// monitors whether their tasks actually run on time. It never fires jobs.
package schedule

import (
	"encoding/json"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	apperrors "pricemunch/priceworker/pkg/errors"
)

// specKind classifies how an entry's schedule specification was read
type specKind int

const (
	// specNone means the entry carries no recognizable schedule form and
	// the documented default interval applies
	specNone specKind = iota
	// specInterval is a fixed interval in seconds
	specInterval
	// specCron is a five-field cron constraint
	specCron
	// specMalformed means a schedule was present but unusable; the entry
	// still renders, it just yields no estimate
	specMalformed
)

// Entry is one named periodic task from the persisted schedule
// configuration. The configuration is externally edited; entries are
// read-only here.
type Entry struct {
	Name    string
	Task    string
	Enabled bool

	kind     specKind
	interval time.Duration
	cron     cronFields
}

// rawEntry mirrors the persisted JSON shape
type rawEntry struct {
	Task        string          `json:"task"`
	Schedule    json.RawMessage `json:"schedule"`
	Args        json.RawMessage `json:"args"`
	Kwargs      json.RawMessage `json:"kwargs"`
	Enabled     *bool           `json:"enabled"`
	Minute      json.RawMessage `json:"minute"`
	Hour        json.RawMessage `json:"hour"`
	DayOfWeek   json.RawMessage `json:"day_of_week"`
	DayOfMonth  json.RawMessage `json:"day_of_month"`
	MonthOfYear json.RawMessage `json:"month_of_year"`
}

// scheduleMapping is the {"interval": N} / {"cron": "expr"} shape
type scheduleMapping struct {
	Interval *json.Number `json:"interval"`
	Cron     *string      `json:"cron"`
}

// LoadFile reads and parses the persisted schedule configuration
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewSchedule(path, "failed to read schedule configuration", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes the schedule configuration: a JSON object keyed by
// entry name. A single malformed entry never fails the whole load - it is
// kept with a spec that yields no estimate so listings still render the
// remaining entries.
func ParseConfig(data []byte) ([]Entry, error) {
	var config map[string]json.RawMessage
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, apperrors.NewSchedule("", "schedule configuration is not a JSON object", err)
	}

	entries := make([]Entry, 0, len(config))
	for name, raw := range config {
		entries = append(entries, parseEntry(name, raw))
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// parseEntry decodes one named entry; any unusable shape degrades to a
// malformed spec instead of an error
func parseEntry(name string, raw json.RawMessage) Entry {
	entry := Entry{Name: name, Enabled: true, kind: specMalformed}

	var re rawEntry
	if err := json.Unmarshal(raw, &re); err != nil {
		return entry
	}

	entry.Task = re.Task
	if re.Enabled != nil {
		entry.Enabled = *re.Enabled
	}

	switch {
	case len(re.Schedule) > 0:
		entry.kind, entry.interval, entry.cron = parseScheduleSpec(re.Schedule)
	case len(re.Minute) > 0 || len(re.Hour) > 0 || len(re.DayOfWeek) > 0 ||
		len(re.DayOfMonth) > 0 || len(re.MonthOfYear) > 0:
		cron, ok := cronFromRawFields(re)
		if ok {
			entry.kind, entry.cron = specCron, cron
		}
	default:
		entry.kind = specNone
	}

	return entry
}

// parseScheduleSpec reads the polymorphic `schedule` value: a numeric
// interval in seconds, a numeric string, a five-field cron expression
// string, or a mapping {"interval": N} / {"cron": "expr"}
func parseScheduleSpec(raw json.RawMessage) (specKind, time.Duration, cronFields) {
	var number json.Number
	if err := json.Unmarshal(raw, &number); err == nil {
		if seconds, err := number.Float64(); err == nil {
			return specInterval, time.Duration(seconds * float64(time.Second)), cronFields{}
		}
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		text = strings.TrimSpace(text)
		if seconds, err := strconv.ParseFloat(text, 64); err == nil {
			return specInterval, time.Duration(seconds * float64(time.Second)), cronFields{}
		}
		if cron, ok := parseCronExpression(text); ok {
			return specCron, 0, cron
		}
		return specMalformed, 0, cronFields{}
	}

	var mapping scheduleMapping
	if err := json.Unmarshal(raw, &mapping); err == nil {
		if mapping.Interval != nil {
			if seconds, err := mapping.Interval.Float64(); err == nil {
				return specInterval, time.Duration(seconds * float64(time.Second)), cronFields{}
			}
		}
		if mapping.Cron != nil {
			if cron, ok := parseCronExpression(*mapping.Cron); ok {
				return specCron, 0, cron
			}
		}
		return specMalformed, 0, cronFields{}
	}

	// Wrong shape entirely, e.g. an array
	return specMalformed, 0, cronFields{}
}

// cronFromRawFields builds a cron constraint from the bare top-level
// fields; unset fields default to every value
func cronFromRawFields(re rawEntry) (cronFields, bool) {
	cron := everyCron()
	fields := []struct {
		raw    json.RawMessage
		target *cronField
	}{
		{re.Minute, &cron.minute},
		{re.Hour, &cron.hour},
		{re.DayOfWeek, &cron.dayOfWeek},
		{re.DayOfMonth, &cron.dayOfMonth},
		{re.MonthOfYear, &cron.monthOfYear},
	}
	for _, f := range fields {
		if len(f.raw) == 0 {
			continue
		}
		parsed, ok := parseRawCronField(f.raw)
		if !ok {
			return cronFields{}, false
		}
		*f.target = parsed
	}
	return cron, true
}

// parseRawCronField accepts a JSON number or a string field value
func parseRawCronField(raw json.RawMessage) (cronField, bool) {
	var number int
	if err := json.Unmarshal(raw, &number); err == nil {
		return cronField{literal: &number}, true
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return parseCronField(text)
	}
	return cronField{}, false
}
