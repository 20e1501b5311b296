package market

import (
	"math"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rickgao/kalshi-analyzer/internal/model"
)

// FilterClosingWithin returns the markets that resolve after now and no later
// than now+hours, sorted ascending by resolution time. Windows too large for
// a time.Duration saturate instead of wrapping negative.
func FilterClosingWithin(markets []model.Market, now time.Time, hours int) []model.Market {
	window := hoursWindow(hours)

	out := make([]model.Market, 0, len(markets))
	for _, m := range markets {
		if m.ResolvesWithin(now, window) {
			out = append(out, m)
		}
	}

	slices.SortStableFunc(out, func(a, b model.Market) int {
		return a.ResolutionTime.Compare(b.ResolutionTime)
	})
	return out
}

func hoursWindow(hours int) time.Duration {
	if int64(hours) > math.MaxInt64/int64(time.Hour) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(hours) * time.Hour
}

// FilterByMinVolume returns the markets with volume >= minVolume, in input order.
func FilterByMinVolume(markets []model.Market, minVolume int64) []model.Market {
	out := make([]model.Market, 0, len(markets))
	for _, m := range markets {
		if m.Volume >= minVolume {
			out = append(out, m)
		}
	}
	return out
}

// FilterBySpread returns the markets with spread >= minSpread, in input order.
func FilterBySpread(markets []model.Market, minSpread decimal.Decimal) []model.Market {
	out := make([]model.Market, 0, len(markets))
	for _, m := range markets {
		if m.Spread().GreaterThanOrEqual(minSpread) {
			out = append(out, m)
		}
	}
	return out
}

// WideSpreadMarkets returns the wide-spread markets, widest first.
func WideSpreadMarkets(markets []model.Market) []model.Market {
	out := FilterBySpread(markets, model.WideSpreadThreshold)
	slices.SortStableFunc(out, func(a, b model.Market) int {
		return b.Spread().Cmp(a.Spread())
	})
	return out
}

// TopByVolume returns the n markets with the greatest volume, descending.
// Returns an empty slice when n <= 0.
func TopByVolume(markets []model.Market, n int) []model.Market {
	if n <= 0 {
		return []model.Market{}
	}

	out := slices.Clone(markets)
	slices.SortStableFunc(out, func(a, b model.Market) int {
		switch {
		case a.Volume > b.Volume:
			return -1
		case a.Volume < b.Volume:
			return 1
		}
		return 0
	})

	if len(out) > n {
		out = out[:n]
	}
	if out == nil {
		out = []model.Market{}
	}
	return out
}
