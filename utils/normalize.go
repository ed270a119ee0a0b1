package utils

import (
	"strings"
	"time"
	"unicode"
)

// NormalizePhone strips every non-numeric character. Empty input yields an
// empty string, so "+1 (555) 123-4567" and "15551234567" compare equal.
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeEmail lowercases and trims surrounding whitespace.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeDate truncates a date to UTC midnight so dates compare by calendar
// day only, ignoring time-of-day and local timezone. Nil passes through.
func NormalizeDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	d := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// DayRange returns the inclusive [00:00:00.000, 23:59:59.999] UTC bounds of
// the calendar day containing t. Used for date-of-birth range lookups.
func DayRange(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Millisecond)
	return start, end
}
