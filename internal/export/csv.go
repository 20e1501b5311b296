package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes one header row then one row per exported market.
func WriteCSV(w io.Writer, s *Snapshot) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range records(s.Markets, s.GeneratedAt) {
		if err := cw.Write(rec.values()); err != nil {
			return fmt.Errorf("write csv row %s: %w", rec.Ticker, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
