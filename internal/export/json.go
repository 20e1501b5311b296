package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rickgao/kalshi-analyzer/internal/model"
)

type jsonDocument struct {
	Run     runRecord      `json:"run"`
	Summary summaryRecord  `json:"summary"`
	Markets []marketRecord `json:"markets"`
}

type runRecord struct {
	ID          string         `json:"id"`
	FetchedAt   string         `json:"fetched_at"`
	GeneratedAt string         `json:"generated_at"`
	Requested   int            `json:"requested"`
	Fetched     int            `json:"fetched"`
	Accepted    int            `json:"accepted"`
	Skipped     int            `json:"skipped"`
	Rejections  map[string]int `json:"rejections"`
}

type windowRecord struct {
	Name  string `json:"name"`
	Hours int    `json:"hours"`
	Count int    `json:"count"`
	Wide  int    `json:"wide"`
}

type summaryRecord struct {
	Total            int            `json:"total"`
	Exported         int            `json:"exported"`
	Within24h        int            `json:"within_24h"`
	Within48h        int            `json:"within_48h"`
	Within7d         int            `json:"within_7d"`
	WideSpread       int            `json:"wide_spread"`
	AvgSpreadPercent json.Number    `json:"avg_spread_percent"`
	TotalVolume      int64          `json:"total_volume"`
	InvertedQuotes   int            `json:"inverted_quotes"`
	Windows          []windowRecord `json:"windows"`
}

// WriteJSON writes s as an indented JSON document.
func WriteJSON(w io.Writer, s *Snapshot) error {
	rejections := s.Run.Rejections
	if rejections == nil {
		rejections = map[string]int{}
	}

	doc := jsonDocument{
		Run: runRecord{
			ID:          s.Run.ID.String(),
			FetchedAt:   s.Run.FetchedAt.UTC().Format(time.RFC3339),
			GeneratedAt: s.GeneratedAt.UTC().Format(time.RFC3339),
			Requested:   s.Run.Requested,
			Fetched:     s.Run.Fetched,
			Accepted:    s.Run.Accepted,
			Skipped:     s.Run.Skipped,
			Rejections:  rejections,
		},
		Summary: summaryRecord{
			Total:            s.Summary.Total,
			Exported:         len(s.Markets),
			Within24h:        s.Summary.Within24h,
			Within48h:        s.Summary.Within48h,
			Within7d:         s.Summary.Within7d,
			WideSpread:       s.Summary.WideSpread,
			AvgSpreadPercent: number(s.Summary.AvgSpreadPercent.Round(4)),
			TotalVolume:      s.Summary.TotalVolume,
			InvertedQuotes:   s.Summary.InvertedQuotes,
			Windows:          make([]windowRecord, 0, len(s.Windows)),
		},
		Markets: records(s.Markets, s.GeneratedAt),
	}
	for _, wc := range s.Windows {
		doc.Summary.Windows = append(doc.Summary.Windows, windowRecord{
			Name:  wc.Window.Name,
			Hours: wc.Window.Hours,
			Count: wc.Count,
			Wide:  wc.Wide,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode json export: %w", err)
	}
	return nil
}

// ReadJSON parses a document written by WriteJSON back into markets.
// Derived fields in the document are ignored.
func ReadJSON(r io.Reader) ([]model.Market, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc jsonDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode json export: %w", err)
	}

	markets := make([]model.Market, 0, len(doc.Markets))
	for _, rec := range doc.Markets {
		m, err := rec.market()
		if err != nil {
			return nil, err
		}
		markets = append(markets, m)
	}
	return markets, nil
}
