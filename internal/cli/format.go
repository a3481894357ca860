// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/grihastudio/griha/internal/compass"
)

// FormatMoney formats an amount in the given currency.
// e.g., ("USD", 1234.5) -> "$1,235", ("INR", 85000) -> "₹85,000"
func FormatMoney(currency string, amount float64) string {
	symbol := ""
	switch strings.ToUpper(currency) {
	case "USD", "":
		symbol = "$"
	case "INR":
		symbol = "₹"
	case "EUR":
		symbol = "€"
	case "GBP":
		symbol = "£"
	default:
		return fmt.Sprintf("%s %.2f", currency, amount)
	}

	if amount >= 1000 {
		return symbol + FormatNumber(int64(math.Round(amount)))
	}
	if amount >= 100 {
		return fmt.Sprintf("%s%.0f", symbol, amount)
	}
	if amount >= 10 {
		return fmt.Sprintf("%s%.1f", symbol, amount)
	}
	return fmt.Sprintf("%s%.2f", symbol, amount)
}

// FormatCost formats a USD amount.
func FormatCost(cost float64) string {
	return FormatMoney("USD", cost)
}

// FormatAngle formats a facing angle with its nearest compass letter.
// e.g., 200 -> "200° S"
func FormatAngle(deg int) string {
	return fmt.Sprintf("%d° %s", deg, CardinalLetter(compass.FacingCardinal(float64(deg))))
}

// CardinalLetter abbreviates a cardinal to its single letter.
func CardinalLetter(c compass.Cardinal) string {
	switch c {
	case compass.North:
		return "N"
	case compass.East:
		return "E"
	case compass.South:
		return "S"
	case compass.West:
		return "W"
	}
	return "?"
}

// FormatRoomType turns a wire room type into a display label.
// e.g., "living_room" -> "Living Room"
func FormatRoomType(rt string) string {
	words := strings.Split(rt, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// FormatDuration formats seconds into a human-readable duration.
// e.g., 3725 -> "1h 2m", 125 -> "2m", 45 -> "45s"
func FormatDuration(secs int64) string {
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

// FormatAgo formats how long ago t was, for cache and refresh labels.
// e.g., "just now", "5m ago", "3h ago", "2d ago"
func FormatAgo(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
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

// FormatPercent formats a 0-100 integer as a percentage string.
func FormatPercent(pct int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return fmt.Sprintf("%d%%", pct)
}

// FormatStatus maps a lifecycle status to a short display form.
func FormatStatus(status string) string {
	switch status {
	case "queued":
		return "queued"
	case "processing":
		return "working"
	case "completed":
		return "done"
	case "failed":
		return "failed"
	}
	return status
}
