package export

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rickgao/kalshi-analyzer/internal/market"
	"github.com/rickgao/kalshi-analyzer/internal/model"
	"github.com/rickgao/kalshi-analyzer/internal/report"
)

// Snapshot is everything an export writes.
type Snapshot struct {
	Run         report.Run
	GeneratedAt time.Time
	Markets     []model.Market // Exported market set
	Wide        []model.Market // Wide-spread alert, widest first
	Summary     market.Summary
	Windows     []market.WindowCount
}

// NewSnapshot captures rep's export set for run.
func NewSnapshot(rep *report.Report, run report.Run) *Snapshot {
	return &Snapshot{
		Run:         run,
		GeneratedAt: rep.GeneratedAt,
		Markets:     rep.ExportSet(),
		Wide:        rep.WideSpread,
		Summary:     rep.Summary,
		Windows:     rep.Windows,
	}
}

// Column order shared by CSV, SQLite and the flat JSON record.
var columns = []string{
	"ticker",
	"title",
	"subtitle",
	"yes_bid",
	"yes_ask",
	"no_bid",
	"no_ask",
	"spread",
	"spread_percent",
	"is_wide_spread",
	"resolution_time",
	"time_source",
	"hours_until_resolution",
	"volume",
	"status",
	"category",
}

// marketRecord is the flat export form of a model.Market. Decimals travel as
// json.Number so they stay exact and serialize as JSON numbers.
type marketRecord struct {
	Ticker               string      `json:"ticker"`
	Title                string      `json:"title"`
	Subtitle             string      `json:"subtitle"`
	YesBid               json.Number `json:"yes_bid"`
	YesAsk               json.Number `json:"yes_ask"`
	NoBid                json.Number `json:"no_bid"`
	NoAsk                json.Number `json:"no_ask"`
	Spread               json.Number `json:"spread"`
	SpreadPercent        json.Number `json:"spread_percent"`
	IsWideSpread         bool        `json:"is_wide_spread"`
	ResolutionTime       string      `json:"resolution_time"`
	TimeSource           string      `json:"time_source"`
	HoursUntilResolution json.Number `json:"hours_until_resolution"`
	Volume               int64       `json:"volume"`
	Status               string      `json:"status"`
	Category             string      `json:"category"`
}

func newMarketRecord(m model.Market, now time.Time) marketRecord {
	hours := decimal.NewFromFloat(m.HoursUntilResolution(now)).Round(2)
	return marketRecord{
		Ticker:               m.Ticker,
		Title:                m.Title,
		Subtitle:             m.Subtitle,
		YesBid:               number(m.YesBid),
		YesAsk:               number(m.YesAsk),
		NoBid:                number(m.NoBid),
		NoAsk:                number(m.NoAsk),
		Spread:               number(m.Spread()),
		SpreadPercent:        number(m.SpreadPercent()),
		IsWideSpread:         m.IsWideSpread(),
		ResolutionTime:       m.ResolutionTime.UTC().Format(time.RFC3339Nano),
		TimeSource:           string(m.TimeSource),
		HoursUntilResolution: number(hours),
		Volume:               m.Volume,
		Status:               m.Status,
		Category:             m.Category,
	}
}

// values returns the record in column order.
func (r marketRecord) values() []string {
	return []string{
		r.Ticker,
		r.Title,
		r.Subtitle,
		r.YesBid.String(),
		r.YesAsk.String(),
		r.NoBid.String(),
		r.NoAsk.String(),
		r.Spread.String(),
		r.SpreadPercent.String(),
		strconv.FormatBool(r.IsWideSpread),
		r.ResolutionTime,
		r.TimeSource,
		r.HoursUntilResolution.String(),
		strconv.FormatInt(r.Volume, 10),
		r.Status,
		r.Category,
	}
}

// market converts a record back to its stored fields.
func (r marketRecord) market() (model.Market, error) {
	m := model.Market{
		Ticker:     r.Ticker,
		Title:      r.Title,
		Subtitle:   r.Subtitle,
		TimeSource: model.TimeSource(r.TimeSource),
		Volume:     r.Volume,
		Status:     r.Status,
		Category:   r.Category,
	}

	for _, f := range []struct {
		name string
		in   json.Number
		out  *decimal.Decimal
	}{
		{"yes_bid", r.YesBid, &m.YesBid},
		{"yes_ask", r.YesAsk, &m.YesAsk},
		{"no_bid", r.NoBid, &m.NoBid},
		{"no_ask", r.NoAsk, &m.NoAsk},
	} {
		d, err := decimal.NewFromString(f.in.String())
		if err != nil {
			return model.Market{}, fmt.Errorf("market %s %s: %w", r.Ticker, f.name, err)
		}
		*f.out = d
	}

	t, err := time.Parse(time.RFC3339Nano, r.ResolutionTime)
	if err != nil {
		return model.Market{}, fmt.Errorf("market %s resolution_time: %w", r.Ticker, err)
	}
	m.ResolutionTime = t.UTC()

	return m, nil
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func records(markets []model.Market, now time.Time) []marketRecord {
	out := make([]marketRecord, len(markets))
	for i, m := range markets {
		out[i] = newMarketRecord(m, now)
	}
	return out
}

// summaryRows is the summary block as ordered metric/value pairs.
func summaryRows(s *Snapshot) [][2]string {
	rows := [][2]string{
		{"Total Markets Analyzed", strconv.Itoa(s.Summary.Total)},
		{"Markets Exported", strconv.Itoa(len(s.Markets))},
	}
	for _, w := range s.Windows {
		rows = append(rows, [2]string{
			"Closing in " + w.Window.Name,
			fmt.Sprintf("%d (%d wide spread)", w.Count, w.Wide),
		})
	}
	rows = append(rows,
		[2]string{"Wide Spread Markets (>=10%)", strconv.Itoa(s.Summary.WideSpread)},
		[2]string{"Average Spread", s.Summary.AvgSpreadPercent.StringFixed(2) + "%"},
		[2]string{"Total Volume", strconv.FormatInt(s.Summary.TotalVolume, 10)},
		[2]string{"Records Skipped", strconv.Itoa(s.Run.Skipped)},
		[2]string{"Inverted Quotes", strconv.Itoa(s.Summary.InvertedQuotes)},
		[2]string{"Run ID", s.Run.ID.String()},
		[2]string{"Report Generated", s.GeneratedAt.UTC().Format("2006-01-02 15:04:05") + " UTC"},
	)
	return rows
}
