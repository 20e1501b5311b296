// Package render writes the analyzer's console report. Every Renderer writes
// to an explicit io.Writer; color is enabled only when that writer is a
// terminal.
package render

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rickgao/kalshi-analyzer/internal/market"
	"github.com/rickgao/kalshi-analyzer/internal/model"
	"github.com/rickgao/kalshi-analyzer/internal/report"
)

// Defaults for Renderer options.
const (
	DefaultDisplayRows = 15
	WideAlertRows      = 10
)

// Renderer writes report views to a sink.
type Renderer struct {
	w           io.Writer
	lg          *lipgloss.Renderer
	displayRows int
	styles      styles
	err         error
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithDisplayRows caps the number of rows in the closing-soon tables.
func WithDisplayRows(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.displayRows = n
		}
	}
}

type styles struct {
	title   lipgloss.Style
	dim     lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	wide    lipgloss.Style
	tight   lipgloss.Style
	alert   lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	volume  lipgloss.Style
	panel   lipgloss.Style
	border  lipgloss.Style
	metric  lipgloss.Style
	numeric lipgloss.Style
}

func newStyles(lg *lipgloss.Renderer) styles {
	return styles{
		title:   lg.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		dim:     lg.NewStyle().Faint(true),
		header:  lg.NewStyle().Bold(true).Padding(0, 1),
		cell:    lg.NewStyle().Padding(0, 1),
		wide:    lg.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		tight:   lg.NewStyle().Foreground(lipgloss.Color("46")),
		alert:   lg.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		ok:      lg.NewStyle().Foreground(lipgloss.Color("46")),
		warn:    lg.NewStyle().Foreground(lipgloss.Color("226")),
		volume:  lg.NewStyle().Bold(true).Foreground(lipgloss.Color("201")),
		panel:   lg.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("39")).Padding(0, 1),
		border:  lg.NewStyle().Foreground(lipgloss.Color("240")),
		metric:  lg.NewStyle().Foreground(lipgloss.Color("51")).Padding(0, 1),
		numeric: lg.NewStyle().Padding(0, 1).Align(lipgloss.Right),
	}
}

// New returns a Renderer writing to w.
func New(w io.Writer, opts ...Option) *Renderer {
	lg := lipgloss.NewRenderer(w)
	r := &Renderer{
		w:           w,
		lg:          lg,
		displayRows: DefaultDisplayRows,
		styles:      newStyles(lg),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Err returns the first write error, if any.
func (r *Renderer) Err() error {
	return r.err
}

func (r *Renderer) println(a ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintln(r.w, a...)
}

func (r *Renderer) newTable(headers ...string) *table.Table {
	s := r.styles
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		BorderColumn(false).
		BorderLeft(false).
		BorderRight(false).
		BorderTop(false).
		BorderBottom(false).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header
			}
			return s.cell
		})
}

func isWide(markets []model.Market, row int) bool {
	return row >= 0 && row < len(markets) && markets[row].IsWideSpread()
}

// Banner prints the report heading.
func (r *Renderer) Banner() {
	r.println(r.styles.panel.Render(
		r.styles.title.Render("Kalshi Market Analyzer") + "\n" +
			r.styles.dim.Render("Real-time prediction market analysis"),
	))
	r.println()
}

// Status prints a one-line progress note.
func (r *Renderer) Status(msg string) {
	r.println(r.styles.ok.Render("✓ " + msg))
}

// Report prints every view of rep, in reading order.
func (r *Renderer) Report(rep *report.Report, run report.Run) {
	now := rep.GeneratedAt

	r.ClosingSoon(fmt.Sprintf("Markets Closing in %d Hours", rep.Options.Hours), rep.ClosingSoon, now)
	if rep.HasFallback() {
		r.println()
		r.println(r.styles.warn.Render(fmt.Sprintf("No markets closing in %dh. Showing 7-day window:", rep.Options.Hours)))
		r.ClosingSoon("Markets Closing in 7 Days", rep.Fallback, now)
	}

	r.WideSpreads(rep.WideSpread, now)
	r.TopVolume(rep.TopVolume, rep.Options.TopN)
	r.Summary(rep.Summary, rep.Windows, run)
}

// ClosingSoon prints the closing-soon table, capped at the display row limit.
// An empty view prints a notice panel instead.
func (r *Renderer) ClosingSoon(title string, markets []model.Market, now time.Time) {
	s := r.styles
	if len(markets) == 0 {
		r.println(s.panel.BorderForeground(lipgloss.Color("226")).Render(
			s.warn.Render("No markets found for: " + title)))
		return
	}

	r.println()
	r.println(s.title.Render(title))
	r.println(s.dim.Render(fmt.Sprintf("Found %d markets", len(markets))))
	r.println()

	shown := markets[:min(len(markets), r.displayRows)]
	t := r.newTable("Market", "Yes", "No", "Spread", "Expires", "Vol").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return s.header
			case col == 3 && isWide(shown, row):
				return s.wide.Padding(0, 1).Align(lipgloss.Right)
			case col == 3:
				return s.tight.Padding(0, 1).Align(lipgloss.Right)
			case col > 0:
				return s.numeric
			}
			return s.cell
		})

	for _, m := range shown {
		spread := FormatPercent(m.SpreadPercent(), 0)
		if m.IsWideSpread() {
			spread += "⚠"
		}
		t.Row(
			Truncate(m.Title, 50),
			FormatCents(m.YesBid),
			FormatCents(m.NoBid),
			spread,
			FormatTimeUntil(m.TimeUntilResolution(now)),
			FormatVolume(m.Volume),
		)
	}

	r.println(t.String())
	if more := len(markets) - len(shown); more > 0 {
		r.println(s.dim.Render(fmt.Sprintf("... and %d more markets", more)))
	}
}

// WideSpreads prints the wide-spread alert. markets must already be ordered
// widest first.
func (r *Renderer) WideSpreads(markets []model.Market, now time.Time) {
	s := r.styles
	if len(markets) == 0 {
		r.println()
		r.println(s.ok.Render("✓ No markets with wide spreads (>10%) found."))
		return
	}

	r.println()
	r.println(s.alert.Render(fmt.Sprintf("WIDE SPREAD ALERT: %d markets", len(markets))))
	r.println(s.dim.Render("Markets with bid-ask spread >= 10% (potential liquidity issues)"))
	r.println()

	shown := markets[:min(len(markets), WideAlertRows)]
	t := r.newTable("Market", "Spread", "Bid→Ask", "Exp").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return s.header.Foreground(lipgloss.Color("196"))
			case col == 1:
				return s.wide.Padding(0, 1).Align(lipgloss.Right)
			case col > 1:
				return s.numeric
			}
			return s.cell
		})

	for _, m := range shown {
		t.Row(
			Truncate(m.Title, 45),
			FormatPercent(m.SpreadPercent(), 0),
			fmt.Sprintf("%d¢ → %d¢", m.YesBid.Shift(2).IntPart(), m.YesAsk.Shift(2).IntPart()),
			FormatTimeUntil(m.TimeUntilResolution(now)),
		)
	}

	r.println(t.String())
}

// TopVolume prints the busiest markets, ranked.
func (r *Renderer) TopVolume(markets []model.Market, topN int) {
	s := r.styles
	if len(markets) == 0 {
		return
	}

	r.println()
	r.println(s.volume.Render(fmt.Sprintf("TOP %d HIGHEST VOLUME MARKETS", topN)))
	r.println()

	t := r.newTable("Rank", "Market", "Volume", "Yes $", "Spread").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return s.header.Foreground(lipgloss.Color("201"))
			case col == 4 && isWide(markets, row):
				return s.wide.UnsetBold().Padding(0, 1).Align(lipgloss.Right)
			case col == 4:
				return s.tight.Padding(0, 1).Align(lipgloss.Right)
			case col == 1:
				return s.cell
			}
			return s.numeric
		})

	for i, m := range markets {
		t.Row(
			"#"+strconv.Itoa(i+1),
			Truncate(m.Title, 45),
			FormatVolume(m.Volume),
			FormatDollars(m.YesBid),
			FormatPercent(m.SpreadPercent(), 1),
		)
	}

	r.println(t.String())
}

// Summary prints aggregate statistics over the full listing.
func (r *Renderer) Summary(sum market.Summary, windows []market.WindowCount, run report.Run) {
	s := r.styles

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.border).
		Headers("Metric", "Value").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return s.header
			case col == 0:
				return s.metric
			}
			return s.numeric
		})

	t.Row("Total Markets Analyzed", FormatVolume(int64(sum.Total)))
	for _, w := range windows {
		t.Row("Closing in "+w.Window.Name, fmt.Sprintf("%s (%d wide spread)", FormatVolume(int64(w.Count)), w.Wide))
	}
	t.Row("Total Volume (all markets)", FormatVolume(sum.TotalVolume)+" contracts")
	t.Row("Average Spread", FormatPercent(sum.AvgSpreadPercent, 2))
	t.Row("Wide Spread Markets (>=10%)", strconv.Itoa(sum.WideSpread))
	if run.Skipped > 0 {
		t.Row("Records Skipped", strconv.Itoa(run.Skipped))
	}
	if sum.InvertedQuotes > 0 {
		t.Row("Inverted Quotes (ask < bid)", strconv.Itoa(sum.InvertedQuotes))
	}

	r.println()
	r.println(s.title.Render("Summary Statistics"))
	r.println(t.String())
}

// Complete prints the closing line with the fetch time.
func (r *Renderer) Complete(fetchedAt time.Time) {
	r.println()
	r.println(r.styles.ok.Bold(true).Render("✓ Analysis complete!"))
	r.println(r.styles.dim.Render("Data fetched from Kalshi Public API at " +
		fetchedAt.UTC().Format("2006-01-02 15:04:05") + " UTC"))
	r.println()
}
