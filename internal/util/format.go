package util

import (
	"fmt"
	"math"
	"time"
)

// FormatPercent formats a ratio in [0,1] as a whole percentage.
// Examples: 0.8 -> "80%", 0.925 -> "93%"
func FormatPercent(r float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(r*100)))
}

// FormatDuration formats a duration with millisecond precision below one second.
// Examples: 1.5ms -> "1.50ms", 2s -> "2.00s"
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// FormatDateISO formats a time to ISO date format (2006-01-02).
// Returns "-" for the zero time.
func FormatDateISO(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// ParseTimeRFC3339 parses an RFC3339 timestamp string to time.Time.
// Returns zero time if parsing fails.
func ParseTimeRFC3339(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
