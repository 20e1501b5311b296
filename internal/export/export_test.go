package export

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/rickgao/kalshi-analyzer/internal/model"
	"github.com/rickgao/kalshi-analyzer/internal/report"
)

var now = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

// dollars mirrors the normalizer's cents/100 conversion.
func dollars(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
}

func testMarkets() []model.Market {
	return []model.Market{
		{
			Ticker:         "KXHIGHNY-25JAN15-T40",
			Title:          "Will the high in NYC be above 40°?",
			Subtitle:       "41° or above",
			YesBid:         dollars(45),
			YesAsk:         dollars(62),
			NoBid:          dollars(38),
			NoAsk:          dollars(55),
			ResolutionTime: now.Add(time.Hour),
			TimeSource:     model.TimeSourceExpectedExpiration,
			Volume:         1200,
			Status:         "active",
			Category:       "Climate",
		},
		{
			Ticker:         "KXFED-25JAN-T4.50",
			Title:          "Fed rate, \"upper bound\", above 4.50%",
			YesBid:         dollars(50),
			YesAsk:         dollars(53),
			ResolutionTime: now.Add(2*time.Hour + 123*time.Millisecond),
			TimeSource:     model.TimeSourceCloseTime,
			Volume:         10,
			Status:         "active",
		},
	}
}

func testSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	rep := report.Assemble(testMarkets(), now, report.Options{Hours: 24})
	run := report.NewRun(now, 500)
	run.Record(2, 1, map[string]int{"bad_time": 1})
	return NewSnapshot(rep, run)
}

func TestNewSnapshot(t *testing.T) {
	s := testSnapshot(t)
	if len(s.Markets) != 2 {
		t.Errorf("Markets = %d, want 2", len(s.Markets))
	}
	if len(s.Wide) != 1 || s.Wide[0].Ticker != "KXHIGHNY-25JAN15-T40" {
		t.Errorf("Wide = %v", s.Wide)
	}
	if !s.GeneratedAt.Equal(now) {
		t.Errorf("GeneratedAt = %v, want %v", s.GeneratedAt, now)
	}
}

// TestJSONRoundTrip checks every stored field survives an export and re-parse.
func TestJSONRoundTrip(t *testing.T) {
	s := testSnapshot(t)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, s); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if len(got) != len(s.Markets) {
		t.Fatalf("ReadJSON() returned %d markets, want %d", len(got), len(s.Markets))
	}

	for i, want := range s.Markets {
		g := got[i]
		if g.Ticker != want.Ticker || g.Title != want.Title || g.Subtitle != want.Subtitle {
			t.Errorf("[%d] strings = %q/%q/%q, want %q/%q/%q", i, g.Ticker, g.Title, g.Subtitle, want.Ticker, want.Title, want.Subtitle)
		}
		if !g.YesBid.Equal(want.YesBid) || !g.YesAsk.Equal(want.YesAsk) || !g.NoBid.Equal(want.NoBid) || !g.NoAsk.Equal(want.NoAsk) {
			t.Errorf("[%d] prices = %s/%s/%s/%s, want %s/%s/%s/%s", i,
				g.YesBid, g.YesAsk, g.NoBid, g.NoAsk, want.YesBid, want.YesAsk, want.NoBid, want.NoAsk)
		}
		if !g.ResolutionTime.Equal(want.ResolutionTime) {
			t.Errorf("[%d] ResolutionTime = %v, want %v", i, g.ResolutionTime, want.ResolutionTime)
		}
		if g.TimeSource != want.TimeSource || g.Volume != want.Volume || g.Status != want.Status || g.Category != want.Category {
			t.Errorf("[%d] = %+v, want %+v", i, g, want)
		}
	}
}

func TestJSONDocumentShape(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, testSnapshot(t)); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	var doc map[string]any
	dec := json.NewDecoder(&buf)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}

	run := doc["run"].(map[string]any)
	if run["skipped"] != json.Number("1") || run["requested"] != json.Number("500") {
		t.Errorf("run = %v", run)
	}

	markets := doc["markets"].([]any)
	first := markets[0].(map[string]any)
	if first["spread_percent"] != json.Number("17") {
		t.Errorf("spread_percent = %#v, want JSON number 17", first["spread_percent"])
	}
	if first["resolution_time"] != "2025-01-15T13:00:00Z" {
		t.Errorf("resolution_time = %v", first["resolution_time"])
	}
	if first["is_wide_spread"] != true {
		t.Errorf("is_wide_spread = %v, want true", first["is_wide_spread"])
	}

	summary := doc["summary"].(map[string]any)
	if summary["total"] != json.Number("2") || summary["wide_spread"] != json.Number("1") {
		t.Errorf("summary = %v", summary)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{`},
		{"bad price", `{"markets":[{"ticker":"X","yes_bid":"abc","yes_ask":0,"no_bid":0,"no_ask":0,"resolution_time":"2025-01-15T12:00:00Z"}]}`},
		{"bad time", `{"markets":[{"ticker":"X","yes_bid":0,"yes_ask":0,"no_bid":0,"no_ask":0,"resolution_time":"soon"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.doc)); err == nil {
				t.Error("ReadJSON() error = nil, want error")
			}
		})
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testSnapshot(t)); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(columns, ",") {
		t.Errorf("header = %v, want %v", rows[0], columns)
	}
	if rows[1][0] != "KXHIGHNY-25JAN15-T40" || rows[1][3] != "0.45" || rows[1][8] != "17" || rows[1][9] != "true" {
		t.Errorf("row 1 = %v", rows[1])
	}
	if rows[2][1] != `Fed rate, "upper bound", above 4.50%` {
		t.Errorf("quoted title = %q", rows[2][1])
	}
}

func TestWriteExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := WriteExcel(path, testSnapshot(t)); err != nil {
		t.Fatalf("WriteExcel() error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := []string{SheetAllMarkets, SheetWide, SheetSummary}
	if strings.Join(sheets, "|") != strings.Join(want, "|") {
		t.Errorf("sheets = %v, want %v", sheets, want)
	}

	all, err := f.GetRows(SheetAllMarkets)
	if err != nil {
		t.Fatalf("GetRows(%s): %v", SheetAllMarkets, err)
	}
	if len(all) != 3 {
		t.Errorf("%s rows = %d, want 3", SheetAllMarkets, len(all))
	}
	if all[0][0] != "Ticker" || all[1][2] != "$0.45" || all[1][7] != "YES" || all[2][7] != "NO" {
		t.Errorf("%s rows = %v", SheetAllMarkets, all)
	}

	wide, err := f.GetRows(SheetWide)
	if err != nil {
		t.Fatalf("GetRows(%s): %v", SheetWide, err)
	}
	if len(wide) != 2 || wide[1][2] != "17.0%" || wide[1][3] != "$0.45 → $0.62" {
		t.Errorf("%s rows = %v", SheetWide, wide)
	}

	summary, err := f.GetRows(SheetSummary)
	if err != nil {
		t.Fatalf("GetRows(%s): %v", SheetSummary, err)
	}
	if summary[0][0] != "Metric" || summary[1][0] != "Total Markets Analyzed" || summary[1][1] != "2" {
		t.Errorf("%s rows = %v", SheetSummary, summary)
	}
}

func TestWriteSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "report.db")
	s := testSnapshot(t)

	// Two writes leave exactly one run in the file.
	for range 2 {
		if err := WriteSQLite(ctx, path, s); err != nil {
			t.Fatalf("WriteSQLite() error: %v", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM markets`).Scan(&count); err != nil {
		t.Fatalf("count markets: %v", err)
	}
	if count != 2 {
		t.Errorf("markets rows = %d, want 2", count)
	}

	var runID string
	var volume int64
	if err := db.QueryRow(`SELECT run_id, volume FROM markets WHERE ticker = ?`, "KXHIGHNY-25JAN15-T40").Scan(&runID, &volume); err != nil {
		t.Fatalf("select market: %v", err)
	}
	if runID != s.Run.ID.String() || volume != 1200 {
		t.Errorf("run_id/volume = %s/%d, want %s/1200", runID, volume, s.Run.ID)
	}

	var metric, value string
	if err := db.QueryRow(`SELECT metric, value FROM summary WHERE position = 0`).Scan(&metric, &value); err != nil {
		t.Fatalf("select summary: %v", err)
	}
	if metric != "Total Markets Analyzed" || value != "2" {
		t.Errorf("summary[0] = %s=%s", metric, value)
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	targets := Targets{
		JSON:   filepath.Join(dir, "out.json"),
		Excel:  filepath.Join(dir, "out.xlsx"),
		CSV:    filepath.Join(dir, "out.csv"),
		SQLite: filepath.Join(dir, "out.db"),
	}

	results, err := Write(context.Background(), testSnapshot(t), targets, nil)
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("results = %d, want 4", len(results))
	}
	for _, r := range results {
		if _, err := os.Stat(r.Path); err != nil {
			t.Errorf("%s export missing: %v", r.Format, err)
		}
		if r.Rows != 2 {
			t.Errorf("%s rows = %d, want 2", r.Format, r.Rows)
		}
	}
}

func TestWriteSkipsEmptyTargets(t *testing.T) {
	if !(Targets{}).Empty() {
		t.Error("Targets{}.Empty() = false, want true")
	}

	dir := t.TempDir()
	results, err := Write(context.Background(), testSnapshot(t), Targets{CSV: filepath.Join(dir, "only.csv")}, nil)
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if len(results) != 1 || results[0].Format != "csv" {
		t.Errorf("results = %+v, want csv only", results)
	}
}

func TestWriteFailure(t *testing.T) {
	dir := t.TempDir()
	targets := Targets{
		JSON: filepath.Join(dir, "ok.json"),
		CSV:  filepath.Join(dir, "missing", "out.csv"),
	}

	results, err := Write(context.Background(), testSnapshot(t), targets, nil)
	if err == nil {
		t.Fatal("Write() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "export csv") {
		t.Errorf("error = %v, want csv context", err)
	}
	if len(results) != 1 || results[0].Format != "json" {
		t.Errorf("results = %+v, want json written before failure", results)
	}
}
