package handler

import (
	"strconv"
	"time"
)

// parseIntParam parses an optional numeric query parameter. An empty value
// yields 0 (the service applies its defaults); a non-numeric value is an
// error rather than a silent fallback.
func parseIntParam(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

// parseDateParam accepts RFC 3339 timestamps or plain dates (2006-01-02).
// For a plain date used as an upper bound, the whole day is covered.
func parseDateParam(value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
