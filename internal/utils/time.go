package utils

import "time"

// StartOfDay floors a timestamp to 00:00:00 in its own location. Used when a
// provider's query grammar only supports whole-day date bounds.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay ceils a timestamp to the last nanosecond of its day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
