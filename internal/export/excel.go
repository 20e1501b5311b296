package export

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/rickgao/kalshi-analyzer/internal/model"
	"github.com/rickgao/kalshi-analyzer/internal/render"
)

// Workbook sheet names.
const (
	SheetAllMarkets = "All Markets"
	SheetWide       = "Wide Spreads Alert"
	SheetSummary    = "Summary"
)

const (
	headerFill     = "1F4E79"
	wideHeaderFill = "C62828"
	wideRowFill    = "FFCDD2"
)

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

type workbookStyles struct {
	header     int
	wideHeader int
	cell       int
	wideCell   int
}

func newWorkbookStyles(f *excelize.File) (workbookStyles, error) {
	var ws workbookStyles
	var err error

	headerStyle := func(fill string) *excelize.Style {
		return &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
			Border:    thinBorder,
		}
	}

	if ws.header, err = f.NewStyle(headerStyle(headerFill)); err != nil {
		return ws, err
	}
	if ws.wideHeader, err = f.NewStyle(headerStyle(wideHeaderFill)); err != nil {
		return ws, err
	}
	if ws.cell, err = f.NewStyle(&excelize.Style{Border: thinBorder}); err != nil {
		return ws, err
	}
	ws.wideCell, err = f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{wideRowFill}, Pattern: 1},
		Border: thinBorder,
	})
	return ws, err
}

// sheetWriter writes rows into one sheet, stopping at the first error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (sw *sheetWriter) row(rowNum, style int, values ...any) {
	if sw.err != nil {
		return
	}
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			sw.err = err
			return
		}
		if err := sw.f.SetCellValue(sw.sheet, cell, v); err != nil {
			sw.err = err
			return
		}
	}
	first, _ := excelize.CoordinatesToCellName(1, rowNum)
	last, _ := excelize.CoordinatesToCellName(len(values), rowNum)
	sw.err = sw.f.SetCellStyle(sw.sheet, first, last, style)
}

func (sw *sheetWriter) widths(widths ...float64) {
	for i, w := range widths {
		if sw.err != nil {
			return
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			sw.err = err
			return
		}
		sw.err = sw.f.SetColWidth(sw.sheet, col, col, w)
	}
}

// WriteExcel writes s as a three-sheet workbook at path.
func WriteExcel(path string, s *Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newWorkbookStyles(f)
	if err != nil {
		return fmt.Errorf("create workbook styles: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetAllMarkets); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeAllMarkets(f, styles, s); err != nil {
		return fmt.Errorf("write %s sheet: %w", SheetAllMarkets, err)
	}

	if _, err := f.NewSheet(SheetWide); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := writeWideSpreads(f, styles, s); err != nil {
		return fmt.Errorf("write %s sheet: %w", SheetWide, err)
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := writeSummary(f, styles, s); err != nil {
		return fmt.Errorf("write %s sheet: %w", SheetSummary, err)
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeAllMarkets(f *excelize.File, st workbookStyles, s *Snapshot) error {
	sw := &sheetWriter{f: f, sheet: SheetAllMarkets}
	sw.row(1, st.header,
		"Ticker", "Market", "Yes Bid", "Yes Ask", "No Bid", "No Ask",
		"Spread %", "Wide Spread", "Expires In", "Hours Left", "Volume")

	for i, m := range s.Markets {
		style := st.cell
		if m.IsWideSpread() {
			style = st.wideCell
		}
		sw.row(i+2, style,
			m.Ticker,
			excelTitle(m.Title, 60),
			render.FormatDollars(m.YesBid),
			render.FormatDollars(m.YesAsk),
			render.FormatDollars(m.NoBid),
			render.FormatDollars(m.NoAsk),
			render.FormatPercent(m.SpreadPercent(), 1),
			yesNo(m.IsWideSpread()),
			render.FormatTimeUntil(m.TimeUntilResolution(s.GeneratedAt)),
			hoursLeft(m, s),
			m.Volume,
		)
	}

	sw.widths(30, 50, 10, 10, 10, 10, 10, 12, 12, 10, 10)
	return sw.err
}

func writeWideSpreads(f *excelize.File, st workbookStyles, s *Snapshot) error {
	sw := &sheetWriter{f: f, sheet: SheetWide}
	sw.row(1, st.wideHeader, "Ticker", "Market", "Spread %", "Bid → Ask", "Expires", "Volume")

	for i, m := range s.Wide {
		sw.row(i+2, st.wideCell,
			m.Ticker,
			excelTitle(m.Title, 50),
			render.FormatPercent(m.SpreadPercent(), 1),
			render.FormatDollars(m.YesBid)+" → "+render.FormatDollars(m.YesAsk),
			render.FormatTimeUntil(m.TimeUntilResolution(s.GeneratedAt)),
			m.Volume,
		)
	}

	sw.widths(30, 45, 10, 20, 10, 10)
	return sw.err
}

func writeSummary(f *excelize.File, st workbookStyles, s *Snapshot) error {
	sw := &sheetWriter{f: f, sheet: SheetSummary}
	sw.row(1, st.header, "Metric", "Value")
	for i, kv := range summaryRows(s) {
		sw.row(i+2, st.cell, kv[0], kv[1])
	}
	sw.widths(30, 40)
	return sw.err
}

func excelTitle(title string, max int) string {
	r := []rune(title)
	if len(r) <= max {
		return title
	}
	return string(r[:max]) + "..."
}

func hoursLeft(m model.Market, s *Snapshot) float64 {
	return decimal.NewFromFloat(m.HoursUntilResolution(s.GeneratedAt)).Round(1).InexactFloat64()
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
