package market

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rickgao/kalshi-analyzer/internal/model"
)

// Window is a named look-ahead horizon used in summaries.
type Window struct {
	Name  string
	Hours int
}

// Duration returns the window length.
func (w Window) Duration() time.Duration {
	return time.Duration(w.Hours) * time.Hour
}

// Standard summary windows.
var (
	Window24h = Window{Name: "24 hours", Hours: 24}
	Window48h = Window{Name: "48 hours", Hours: 48}
	Window7d  = Window{Name: "7 days", Hours: 7 * 24}
)

// DefaultWindows returns the summary windows in ascending length.
func DefaultWindows() []Window {
	return []Window{Window24h, Window48h, Window7d}
}

// WindowCount is the number of markets resolving within a window.
type WindowCount struct {
	Window Window
	Count  int
	Wide   int // Subset of Count with a wide spread
}

// CountWindows counts markets resolving within each window. Windows overlap:
// a market within 24h also counts toward 48h and 7d.
func CountWindows(markets []model.Market, now time.Time, windows []Window) []WindowCount {
	counts := make([]WindowCount, len(windows))
	for i, w := range windows {
		counts[i].Window = w
		d := w.Duration()
		for _, m := range markets {
			if !m.ResolvesWithin(now, d) {
				continue
			}
			counts[i].Count++
			if m.IsWideSpread() {
				counts[i].Wide++
			}
		}
	}
	return counts
}

// Summary holds aggregate statistics over a full listing.
type Summary struct {
	Total      int
	Within24h  int
	Within48h  int
	Within7d   int
	WideSpread int

	// AvgSpreadPercent is the mean SpreadPercent, 0 for an empty set.
	AvgSpreadPercent decimal.Decimal

	TotalVolume int64

	// InvertedQuotes counts markets quoted with ask below bid. They are kept
	// unclamped and never count as wide.
	InvertedQuotes int
}

// SummaryStatistics computes Summary over markets as of now.
func SummaryStatistics(markets []model.Market, now time.Time) Summary {
	s := Summary{
		Total:            len(markets),
		AvgSpreadPercent: decimal.Zero,
	}
	if len(markets) == 0 {
		return s
	}

	windows := CountWindows(markets, now, DefaultWindows())
	s.Within24h = windows[0].Count
	s.Within48h = windows[1].Count
	s.Within7d = windows[2].Count

	sum := decimal.Zero
	for _, m := range markets {
		sum = sum.Add(m.SpreadPercent())
		s.TotalVolume += m.Volume
		if m.IsWideSpread() {
			s.WideSpread++
		}
		if m.HasInvertedQuote() {
			s.InvertedQuotes++
		}
	}
	s.AvgSpreadPercent = sum.Div(decimal.NewFromInt(int64(len(markets))))

	return s
}
