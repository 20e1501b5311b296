// Package export writes report snapshots to structured files.
//
// Four formats share one flat per-market record layout:
//
//	JSON    run metadata, summary block and market records (read back by ReadJSON)
//	CSV     market records only
//	Excel   "All Markets", "Wide Spreads Alert" and "Summary" sheets
//	SQLite  markets and summary tables, recreated on every write
//
// Prices and spreads are written as exact decimal strings so a JSON export
// parses back to identical stored fields.
package export
