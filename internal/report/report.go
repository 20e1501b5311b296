// Package report assembles the analyzer's named views from a normalized
// listing. A Report is pure data; rendering and export consume it.
package report

import (
	"time"

	"github.com/rickgao/kalshi-analyzer/internal/market"
	"github.com/rickgao/kalshi-analyzer/internal/model"
)

// Defaults used when Options fields are unset.
const (
	DefaultHours = 24
	DefaultTopN  = 10
)

// Options selects which markets land in each view.
type Options struct {
	Hours     int   // Closing-soon window, hours
	MinVolume int64 // Volume floor for the closing-soon view
	TopN      int   // Size of the top-volume view
	WideOnly  bool  // Restrict the closing-soon view to wide spreads
}

func (o Options) withDefaults() Options {
	if o.Hours <= 0 {
		o.Hours = DefaultHours
	}
	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}
	return o
}

// Report is the set of views produced from one listing snapshot.
type Report struct {
	GeneratedAt time.Time
	Options     Options

	// All is the full normalized listing the other views are derived from.
	All []model.Market

	// ClosingSoon holds markets resolving within Options.Hours that meet the
	// volume floor, soonest first.
	ClosingSoon []model.Market

	// Fallback is the 7-day view, filled only when ClosingSoon is empty and
	// the window is the default 24 hours.
	Fallback []model.Market

	// WideSpread holds every wide-spread market, widest first. Independent
	// of the volume floor.
	WideSpread []model.Market

	// TopVolume holds the Options.TopN busiest markets. Independent of the
	// window.
	TopVolume []model.Market

	// Summary and Windows are computed over All, not a filtered subset.
	Summary market.Summary
	Windows []market.WindowCount
}

// Assemble builds a Report over all as of now.
func Assemble(all []model.Market, now time.Time, opts Options) *Report {
	opts = opts.withDefaults()

	floored := market.FilterByMinVolume(all, opts.MinVolume)
	closing := market.FilterClosingWithin(floored, now, opts.Hours)
	if opts.WideOnly {
		closing = market.FilterBySpread(closing, model.WideSpreadThreshold)
	}

	r := &Report{
		GeneratedAt: now,
		Options:     opts,
		All:         all,
		ClosingSoon: closing,
		WideSpread:  market.WideSpreadMarkets(all),
		TopVolume:   market.TopByVolume(all, opts.TopN),
		Summary:     market.SummaryStatistics(all, now),
		Windows:     market.CountWindows(all, now, market.DefaultWindows()),
	}

	if len(closing) == 0 && opts.Hours == DefaultHours {
		r.Fallback = market.FilterClosingWithin(floored, now, market.Window7d.Hours)
		if opts.WideOnly {
			r.Fallback = market.FilterBySpread(r.Fallback, model.WideSpreadThreshold)
		}
	}

	return r
}

// ExportSet returns the markets written by structured exports: the
// closing-soon view when it has entries, otherwise the full listing.
func (r *Report) ExportSet() []model.Market {
	if len(r.ClosingSoon) > 0 {
		return r.ClosingSoon
	}
	return r.All
}

// HasFallback reports whether the 7-day fallback view was populated.
func (r *Report) HasFallback() bool {
	return len(r.Fallback) > 0
}
