package utils

import (
	"fmt"
	"time"
)

// DateLayout is the ISO-8601 calendar date layout used in storage and reports.
const DateLayout = "2006-01-02"

// ParseISODate parses a YYYY-MM-DD string into a UTC midnight time.
// Example: "2025-05-01" -> 2025-05-01T00:00:00Z
func ParseISODate(value string) (time.Time, error) {
	date, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}

	return date, nil
}

// FormatISODate formats a date as YYYY-MM-DD.
func FormatISODate(date time.Time) string {
	return date.Format(DateLayout)
}

// TruncateToDate drops the clock part and moves the date to UTC.
func TruncateToDate(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from start to end.
// Example: 2025-05-01, 2025-05-08 -> 7
func DaysBetween(start, end time.Time) int {
	return int(TruncateToDate(end).Sub(TruncateToDate(start)).Hours() / 24)
}

// FormatDollar formats an amount the way the report prints it.
// Example: 1234.5 -> "$1234.50"
func FormatDollar(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
