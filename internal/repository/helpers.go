package repository

import "time"

// instantLayout matches the ISO-8601 form JavaScript's toISOString emits,
// so histories written by either side reload unchanged.
const instantLayout = "2006-01-02T15:04:05.000Z07:00"

// formatInstant renders t in UTC with millisecond precision.
func formatInstant(t time.Time) string {
	return t.UTC().Format(instantLayout)
}

// formatNullableInstant returns nil for a nil time.
func formatNullableInstant(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatInstant(*t)
	return &s
}

// parseInstant accepts any RFC 3339 timestamp, with or without fractional
// seconds, and returns it in UTC.
func parseInstant(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
