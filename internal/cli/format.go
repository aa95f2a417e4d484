// Package cli provides formatting and rendering utilities for terminal
// output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatDuration formats a duration into a compact human form.
// e.g., 3725s -> "1h 2m", 125s -> "2m", 45s -> "45s"
func FormatDuration(d time.Duration) string {
	secs := int64(d.Seconds())
	if secs <= 0 {
		return "0s"
	}

	hours := secs / 3600
	mins := (secs % 3600) / 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	if mins > 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%ds", secs)
}

// FormatScore formats a 0-100 quality score.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f/100", score)
}

// FormatEnergy formats an average creative-energy rating.
func FormatEnergy(avg float64) string {
	return fmt.Sprintf("%.1f/3", avg)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatRate formats a per-session average, e.g. "3.2/session".
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.1f/session", rate)
}

// Truncate shortens a string to maxLen runes with an ellipsis.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
