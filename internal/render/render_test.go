package render

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rickgao/kalshi-analyzer/internal/model"
	"github.com/rickgao/kalshi-analyzer/internal/report"
)

var now = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

func mk(ticker, title string, offset time.Duration, bid, ask, volume int64) model.Market {
	return model.Market{
		Ticker:         ticker,
		Title:          title,
		YesBid:         decimal.New(bid, -2),
		YesAsk:         decimal.New(ask, -2),
		NoBid:          decimal.New(100-ask, -2),
		ResolutionTime: now.Add(offset),
		Volume:         volume,
	}
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q\n%s", w, out)
		}
	}
}

func TestRendererPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.Banner()

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("non-terminal sink received ANSI escapes: %q", buf.String())
	}
	assertContains(t, buf.String(), "Kalshi Market Analyzer")
}

func TestClosingSoon(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	markets := []model.Market{
		mk("A", "Will it rain in NYC tomorrow?", 2*time.Hour, 45, 62, 1200),
		mk("B", strings.Repeat("x", 60), 30*time.Minute, 50, 53, 7),
	}
	r.ClosingSoon("Markets Closing in 24 Hours", markets, now)

	out := buf.String()
	assertContains(t, out,
		"Markets Closing in 24 Hours",
		"Found 2 markets",
		"Will it rain in NYC tomorrow?",
		strings.Repeat("x", 48)+"..",
		"45¢", "38¢", "17%⚠", "3%",
		"2.0h", "30m", "1,200",
	)
	if strings.Contains(out, strings.Repeat("x", 49)) {
		t.Error("long title was not truncated")
	}
	if strings.Contains(out, "more markets") {
		t.Error("unexpected overflow footer")
	}
	if err := r.Err(); err != nil {
		t.Errorf("Err() = %v", err)
	}
}

func TestClosingSoonOverflow(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, WithDisplayRows(3))

	var markets []model.Market
	for i := range 5 {
		markets = append(markets, mk(fmt.Sprintf("M%d", i), fmt.Sprintf("Market number %d", i), time.Duration(i+1)*time.Hour, 40, 45, 1))
	}
	r.ClosingSoon("Closing", markets, now)

	out := buf.String()
	assertContains(t, out, "Market number 2", "... and 2 more markets")
	if strings.Contains(out, "Market number 3") {
		t.Error("rendered more rows than the display limit")
	}
}

func TestClosingSoonEmpty(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).ClosingSoon("Markets Closing in 6 Hours", nil, now)
	assertContains(t, buf.String(), "No markets found for: Markets Closing in 6 Hours")
}

func TestWideSpreads(t *testing.T) {
	t.Run("alert", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf).WideSpreads([]model.Market{mk("A", "Wide one", 5*24*time.Hour, 45, 62, 1)}, now)
		assertContains(t, buf.String(), "WIDE SPREAD ALERT: 1 markets", "Wide one", "17%", "45¢ → 62¢", "5.0d")
	})

	t.Run("all clear", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf).WideSpreads(nil, now)
		assertContains(t, buf.String(), "No markets with wide spreads")
	})
}

func TestTopVolume(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).TopVolume([]model.Market{
		mk("A", "Busy", time.Hour, 45, 62, 98765),
		mk("B", "Quiet", time.Hour, 50, 53, 10),
	}, 10)

	assertContains(t, buf.String(), "TOP 10 HIGHEST VOLUME MARKETS", "#1", "#2", "Busy", "98,765", "$0.45", "17.0%", "3.0%")
}

func TestReport(t *testing.T) {
	all := []model.Market{
		mk("FAR", "Far market", 3*24*time.Hour, 20, 30, 5000),
	}
	rep := report.Assemble(all, now, report.Options{Hours: 24})
	run := report.NewRun(now, 500)
	run.Record(1, 2, map[string]int{"bad_time": 2})

	var buf bytes.Buffer
	r := New(&buf)
	r.Report(rep, run)
	r.Complete(now)

	assertContains(t, buf.String(),
		"No markets found for: Markets Closing in 24 Hours",
		"Showing 7-day window",
		"Markets Closing in 7 Days",
		"WIDE SPREAD ALERT: 1 markets",
		"Summary Statistics",
		"Total Markets Analyzed",
		"Closing in 7 days",
		"1 (1 wide spread)",
		"5,000 contracts",
		"10.00%",
		"Records Skipped",
		"Analysis complete!",
		"2025-01-15 12:00:00 UTC",
	)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRendererWriteError(t *testing.T) {
	r := New(failWriter{})
	r.Banner()
	r.WideSpreads(nil, now)

	if err := r.Err(); err == nil || err.Error() != "disk full" {
		t.Errorf("Err() = %v, want disk full", err)
	}
}
