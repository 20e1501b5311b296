package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Targets names the output file for each format. Empty paths are skipped.
type Targets struct {
	JSON   string
	Excel  string
	CSV    string
	SQLite string
}

// Empty reports whether no format was requested.
func (t Targets) Empty() bool {
	return t.JSON == "" && t.Excel == "" && t.CSV == "" && t.SQLite == ""
}

// Result records one written export.
type Result struct {
	Format string
	Path   string
	Rows   int
}

// Write writes s to every requested target in a fixed order, stopping at the
// first failure. Results for targets written before the failure are returned.
func Write(ctx context.Context, s *Snapshot, t Targets, logger *slog.Logger) ([]Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	steps := []struct {
		format string
		path   string
		write  func(path string) error
	}{
		{"json", t.JSON, func(p string) error { return writeFile(p, s, WriteJSON) }},
		{"excel", t.Excel, func(p string) error { return WriteExcel(p, s) }},
		{"csv", t.CSV, func(p string) error { return writeFile(p, s, WriteCSV) }},
		{"sqlite", t.SQLite, func(p string) error { return WriteSQLite(ctx, p, s) }},
	}

	var results []Result
	for _, step := range steps {
		if step.path == "" {
			continue
		}
		if err := step.write(step.path); err != nil {
			return results, fmt.Errorf("export %s to %s: %w", step.format, step.path, err)
		}

		logger.Info("export written",
			"format", step.format,
			"path", step.path,
			"markets", len(s.Markets),
			"run_id", s.Run.ID,
		)
		results = append(results, Result{Format: step.format, Path: step.path, Rows: len(s.Markets)})
	}

	return results, nil
}

func writeFile(path string, s *Snapshot, write func(io.Writer, *Snapshot) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
