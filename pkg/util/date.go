package util

import (
	"time"
)

// DayFormat is the calendar-day layout used across the API.
const DayFormat = "2006-01-02"

// ParseDay parses an ISO calendar day ("2024-01-02") into UTC midnight.
// Returns (t, true) if it parsed.
func ParseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseDayDefault parses a day or returns default if empty/invalid.
func ParseDayDefault(s string, def time.Time) time.Time {
	if t, ok := ParseDay(s); ok {
		return t
	}
	return def
}

// Day truncates t to a UTC calendar day (midnight, no time-of-day).
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// CountTradingDays counts the days in [from, to] that would be emitted:
// all calendar days when includeWeekends, weekdays otherwise.
func CountTradingDays(from, to time.Time, includeWeekends bool) int {
	n := 0
	for d := Day(from); !d.After(Day(to)); d = d.AddDate(0, 0, 1) {
		if !includeWeekends && IsWeekend(d) {
			continue
		}
		n++
	}
	return n
}
