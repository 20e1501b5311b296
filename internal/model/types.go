package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WideSpreadThreshold is the YES spread at or above which a market is flagged
// as illiquid (10¢ on a $1 contract).
var WideSpreadThreshold = decimal.New(10, -2)

var (
	hundred  = decimal.NewFromInt(100)
	two      = decimal.NewFromInt(2)
	fiftyPct = decimal.New(5, -1)
)

// TimeSource names the upstream field a market's resolution time came from.
type TimeSource string

const (
	// TimeSourceExpectedExpiration is the expected settlement time. Authoritative.
	TimeSourceExpectedExpiration TimeSource = "expected_expiration_time"

	// TimeSourceCloseTime is the trading-halt time, used only when the
	// expected settlement time is absent.
	TimeSourceCloseTime TimeSource = "close_time"
)

// Market represents one open prediction market from a listing snapshot.
type Market struct {
	Ticker   string // Primary key (e.g., "KXHIGHNY-25JAN15-T40")
	Title    string // Display title
	Subtitle string // Optional subtitle, "" when absent

	// Top-of-book quotes as fractions of $1. Zero means no quote.
	YesBid decimal.Decimal
	YesAsk decimal.Decimal
	NoBid  decimal.Decimal
	NoAsk  decimal.Decimal

	ResolutionTime time.Time  // When the outcome is determined (UTC), never zero
	TimeSource     TimeSource // Which upstream field ResolutionTime came from

	Volume   int64  // Total contracts traded
	Status   string // Upstream status (e.g., "active")
	Category string // Upstream category, may be empty
}

// Spread returns YesAsk - YesBid. Inverted quotes produce a negative spread;
// the value is not clamped.
func (m Market) Spread() decimal.Decimal {
	return m.YesAsk.Sub(m.YesBid)
}

// SpreadPercent returns the spread in percentage points.
func (m Market) SpreadPercent() decimal.Decimal {
	return m.Spread().Mul(hundred)
}

// IsWideSpread reports whether the spread is at or above WideSpreadThreshold.
func (m Market) IsWideSpread() bool {
	return m.Spread().GreaterThanOrEqual(WideSpreadThreshold)
}

// HasInvertedQuote reports whether the ask is below the bid. Such markets
// are kept as delivered and are never wide.
func (m Market) HasInvertedQuote() bool {
	return m.Spread().IsNegative()
}

// Midpoint returns the mid of the YES quotes, or 0.5 when either side is missing.
func (m Market) Midpoint() decimal.Decimal {
	if m.YesBid.IsZero() || m.YesAsk.IsZero() {
		return fiftyPct
	}
	return m.YesBid.Add(m.YesAsk).Div(two)
}

// TimeUntilResolution returns ResolutionTime - now. Negative once resolved.
func (m Market) TimeUntilResolution(now time.Time) time.Duration {
	return m.ResolutionTime.Sub(now)
}

// HoursUntilResolution returns TimeUntilResolution in fractional hours.
func (m Market) HoursUntilResolution(now time.Time) float64 {
	return m.TimeUntilResolution(now).Hours()
}

// ResolvesWithin reports whether now < ResolutionTime <= now+window.
func (m Market) ResolvesWithin(now time.Time, window time.Duration) bool {
	return m.ResolutionTime.After(now) && !m.ResolutionTime.After(now.Add(window))
}
