package render

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatTimeUntil renders a time-to-resolution as CLOSED, minutes, hours,
// days or weeks depending on its magnitude.
func FormatTimeUntil(d time.Duration) string {
	hours := d.Hours()
	switch {
	case hours < 0:
		return "CLOSED"
	case hours < 1:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case hours < 24:
		return fmt.Sprintf("%.1fh", hours)
	case hours < 168:
		return fmt.Sprintf("%.1fd", hours/24)
	default:
		return fmt.Sprintf("%.1fw", hours/24/7)
	}
}

// Truncate shortens s to at most max runes, marking the cut with "..".
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max || max < 2 {
		return s
	}
	return string(r[:max-2]) + ".."
}

// FormatCents renders a price as whole cents, or an em dash when unquoted.
func FormatCents(price decimal.Decimal) string {
	if price.IsZero() {
		return "—"
	}
	return fmt.Sprintf("%d¢", price.Shift(2).IntPart())
}

// FormatDollars renders a price as $0.00.
func FormatDollars(price decimal.Decimal) string {
	return "$" + price.StringFixed(2)
}

// FormatPercent renders a percentage with the given number of decimals.
func FormatPercent(pct decimal.Decimal, places int32) string {
	return pct.StringFixed(places) + "%"
}

// FormatVolume renders a contract count with thousands separators.
func FormatVolume(v int64) string {
	return humanize.Comma(v)
}
