package schedule

import (
	"strconv"
	"strings"
	"time"
)

// maxCronSearchMinutes bounds the forward search so expressions with no
// matching instant still terminate. Two years covers every satisfiable
// five-field expression.
const maxCronSearchMinutes = 2 * 366 * 24 * 60

// cronField is one of the five schedule components: every value, a
// literal integer, or a */N step
type cronField struct {
	literal *int
	step    int
}

// cronFields is a five-field cron constraint. Day-of-week uses cron
// numbering where both 0 and 7 mean Sunday.
type cronFields struct {
	minute      cronField
	hour        cronField
	dayOfMonth  cronField
	monthOfYear cronField
	dayOfWeek   cronField
}

func everyCron() cronFields {
	return cronFields{}
}

// parseCronExpression reads a standard five-field expression in the
// order minute hour day-of-month month day-of-week
func parseCronExpression(expr string) (cronFields, bool) {
	parts := strings.Fields(expr)
	if len(parts) != 5 {
		return cronFields{}, false
	}

	cron := everyCron()
	targets := []*cronField{&cron.minute, &cron.hour, &cron.dayOfMonth, &cron.monthOfYear, &cron.dayOfWeek}
	for i, part := range parts {
		field, ok := parseCronField(part)
		if !ok {
			return cronFields{}, false
		}
		*targets[i] = field
	}
	return cron, true
}

// parseCronField accepts "*", a literal integer, or "*/N" with N > 0
func parseCronField(text string) (cronField, bool) {
	text = strings.TrimSpace(text)
	if text == "*" {
		return cronField{}, true
	}
	if rest, found := strings.CutPrefix(text, "*/"); found {
		step, err := strconv.Atoi(rest)
		if err != nil || step <= 0 {
			return cronField{}, false
		}
		return cronField{step: step}, true
	}
	literal, err := strconv.Atoi(text)
	if err != nil || literal < 0 {
		return cronField{}, false
	}
	return cronField{literal: &literal}, true
}

// matches tests one component value against the field constraint
func (f cronField) matches(value int) bool {
	if f.literal != nil {
		return value == *f.literal
	}
	if f.step > 0 {
		return value%f.step == 0
	}
	return true
}

// matchesInstant tests a minute-granularity instant against all five
// field constraints
func (c cronFields) matchesInstant(t time.Time) bool {
	weekday := int(t.Weekday())
	dayOfWeekOK := c.dayOfWeek.matches(weekday)
	// Cron allows 7 for Sunday alongside 0
	if !dayOfWeekOK && weekday == 0 {
		dayOfWeekOK = c.dayOfWeek.matches(7)
	}
	return c.minute.matches(t.Minute()) &&
		c.hour.matches(t.Hour()) &&
		c.dayOfMonth.matches(t.Day()) &&
		c.monthOfYear.matches(int(t.Month())) &&
		dayOfWeekOK
}

// nextMatch forward-searches minute by minute from the instant strictly
// after `from`. The search horizon guarantees termination even for
// expressions with no solution.
func (c cronFields) nextMatch(from time.Time) (time.Time, bool) {
	candidate := from.Truncate(time.Minute).Add(time.Minute)
	for i := 0; i < maxCronSearchMinutes; i++ {
		if c.matchesInstant(candidate) {
			return candidate, true
		}
		candidate = candidate.Add(time.Minute)
	}
	return time.Time{}, false
}
