// Package dateutil handles calendar dates as local YYYY-MM-DD strings.
// Dates must never round-trip through a UTC parse: for users west of UTC
// that shifts the day window by one.
package dateutil

import (
	"fmt"
	"time"
)

const Layout = "2006-01-02"

// ParseLocal parses a YYYY-MM-DD string into midnight of that day in the
// local time zone.
func ParseLocal(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Format renders a time as its local calendar date string.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Today returns today's local date string.
func Today() string {
	return Format(time.Now())
}

// Yesterday returns the date string one calendar day before s.
func Yesterday(s string) (string, error) {
	return addDays(s, -1)
}

// Tomorrow returns the date string one calendar day after s.
func Tomorrow(s string) (string, error) {
	return addDays(s, 1)
}

func addDays(s string, days int) (string, error) {
	t, err := ParseLocal(s)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, days)), nil
}

// DayWindow returns the inclusive [00:00:00.000, 23:59:59.999] bounds of the
// local calendar day. Both ends are built from the calendar date rather than
// a 24h offset, so DST transition days (23h or 25h long) still end on the
// same date.
func DayWindow(day time.Time) (start, end time.Time) {
	start = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end = time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 999e6, day.Location())
	return start, end
}
