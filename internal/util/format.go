package util

import (
	"fmt"
	"time"
)

// FormatNumber formats an int64 with K/M suffix for readability.
// Examples: 500 -> "500", 1500 -> "1.5K", 1500000 -> "1.5M"
func FormatNumber(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000)
}

// FormatHours rounds hours to one decimal place.
// Examples: 2 -> "2.0", 12.345 -> "12.3"
func FormatHours(h float64) string {
	return fmt.Sprintf("%.1f", h)
}

// FormatTimestamp formats t the way the log stores it (2006-01-02 15:04:05).
// The zero time renders as "-".
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDateISO formats t as 2006-01-02, or "-" for the zero time.
func FormatDateISO(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
