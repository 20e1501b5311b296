package export

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
DROP TABLE IF EXISTS markets;
DROP TABLE IF EXISTS summary;

CREATE TABLE markets (
	run_id                 TEXT    NOT NULL,
	ticker                 TEXT    NOT NULL,
	title                  TEXT    NOT NULL,
	subtitle               TEXT    NOT NULL DEFAULT '',
	yes_bid                NUMERIC NOT NULL,
	yes_ask                NUMERIC NOT NULL,
	no_bid                 NUMERIC NOT NULL,
	no_ask                 NUMERIC NOT NULL,
	spread                 NUMERIC NOT NULL,
	spread_percent         NUMERIC NOT NULL,
	is_wide_spread         TEXT    NOT NULL,
	resolution_time        TEXT    NOT NULL,
	time_source            TEXT    NOT NULL,
	hours_until_resolution NUMERIC NOT NULL,
	volume                 INTEGER NOT NULL,
	status                 TEXT    NOT NULL,
	category               TEXT    NOT NULL DEFAULT ''
);

CREATE TABLE summary (
	run_id   TEXT    NOT NULL,
	position INTEGER NOT NULL,
	metric   TEXT    NOT NULL,
	value    TEXT    NOT NULL,
	PRIMARY KEY (run_id, position)
);
`

// WriteSQLite writes s into the database file at path. Both tables are
// dropped and recreated, so the file always holds exactly one run.
func WriteSQLite(ctx context.Context, path string, s *Snapshot) error {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(1)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin sqlite tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("init export schema: %w", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)+1), ", ")
	insertMarket, err := tx.PrepareContext(ctx,
		`INSERT INTO markets (run_id, `+strings.Join(columns, ", ")+`) VALUES (`+placeholders+`)`)
	if err != nil {
		return fmt.Errorf("prepare market insert: %w", err)
	}
	defer insertMarket.Close()

	runID := s.Run.ID.String()
	for _, rec := range records(s.Markets, s.GeneratedAt) {
		vals := rec.values()
		args := make([]any, 0, len(vals)+1)
		args = append(args, runID)
		for i, v := range vals {
			if columns[i] == "volume" {
				args = append(args, rec.Volume)
				continue
			}
			args = append(args, v)
		}
		if _, err := insertMarket.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert market %s: %w", rec.Ticker, err)
		}
	}

	for i, kv := range summaryRows(s) {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO summary (run_id, position, metric, value) VALUES (?, ?, ?, ?)`,
			runID, i, kv[0], kv[1]); err != nil {
			return fmt.Errorf("insert summary %q: %w", kv[0], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit sqlite export: %w", err)
	}
	return nil
}
