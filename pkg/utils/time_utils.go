package utils

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseOptionalDate accepts "" or a YYYY-MM-DD date. Full RFC3339 timestamps
// are accepted too and truncated to their date.
func ParseOptionalDate(value string) (time.Time, bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false, nil
	}
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, true, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true, nil
	}
	return time.Time{}, false, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidInput, value)
}

// NormalizeDateRange validates an optional start/end pair and returns both in
// YYYY-MM-DD form.
func NormalizeDateRange(start, end string) (string, string, error) {
	s, hasStart, err := ParseOptionalDate(start)
	if err != nil {
		return "", "", err
	}
	e, hasEnd, err := ParseOptionalDate(end)
	if err != nil {
		return "", "", err
	}
	if hasStart && hasEnd && e.Before(s) {
		return "", "", fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	var outStart, outEnd string
	if hasStart {
		outStart = s.Format(DateLayout)
	}
	if hasEnd {
		outEnd = e.Format(DateLayout)
	}
	return outStart, outEnd, nil
}

func FormatDisplayDate(value string) string {
	t, ok, err := ParseOptionalDate(value)
	if err != nil || !ok {
		return value
	}
	return t.Format("Jan 2, 2006")
}
