package main

import (
	"flag"
	"fmt"

	"github.com/rickgao/kalshi-analyzer/internal/config"
)

type cliOptions struct {
	configPath  string
	envFile     string
	showVersion bool

	// Values below override the config file only when the flag was set.
	set       map[string]bool
	apiURL    string
	series    string
	hours     int
	limit     int
	minVolume int64
	wideOnly  bool
	jsonPath  string
	excelPath string
	csvPath   string
	dbPath    string
	logLevel  string
	logFile   string
}

func parseFlags(args []string) (*cliOptions, error) {
	o := &cliOptions{set: map[string]bool{}}

	fs := flag.NewFlagSet("analyzer", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Analyze Kalshi prediction markets closing soon and flag wide bid-ask spreads.")
		fmt.Fprintln(fs.Output())
		fs.PrintDefaults()
	}

	fs.StringVar(&o.configPath, "config", "", "path to config file (defaults used when empty)")
	fs.StringVar(&o.envFile, "env", ".env", "path to .env file, skipped when missing")
	fs.BoolVar(&o.showVersion, "version", false, "print version and exit")

	fs.StringVar(&o.apiURL, "api-url", config.DefaultRestURL, "Kalshi REST base URL")
	fs.StringVar(&o.series, "series", "", "only fetch markets in this series ticker")
	fs.IntVar(&o.hours, "hours", config.DefaultHours, "time window in hours")
	fs.IntVar(&o.limit, "limit", config.DefaultLimit, "max markets to fetch")
	fs.Int64Var(&o.minVolume, "min-volume", 0, "minimum volume for the closing-soon view")
	fs.BoolVar(&o.wideOnly, "wide-only", false, "show only wide spread markets in the closing-soon view")
	fs.StringVar(&o.jsonPath, "json", "", "export results to JSON `file`")
	fs.StringVar(&o.excelPath, "excel", "", "export results to Excel `file` (.xlsx)")
	fs.StringVar(&o.csvPath, "csv", "", "export results to CSV `file`")
	fs.StringVar(&o.dbPath, "sqlite", "", "export results to SQLite `file`")
	fs.StringVar(&o.logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&o.logFile, "log-file", "", "also write logs to this rotated `file`")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	return o, nil
}

// loadConfig loads the config file (or defaults), applies flag overrides and
// validates the result.
func (o *cliOptions) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.LoadWithDefaults(o.configPath); err != nil {
			return nil, err
		}
	}

	o.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (o *cliOptions) apply(cfg *config.Config) {
	overrides := map[string]func(){
		"api-url":    func() { cfg.API.RestURL = o.apiURL },
		"series":     func() { cfg.API.SeriesTicker = o.series },
		"hours":      func() { cfg.Analysis.Hours = o.hours },
		"limit":      func() { cfg.Analysis.Limit = o.limit },
		"min-volume": func() { cfg.Analysis.MinVolume = o.minVolume },
		"wide-only":  func() { cfg.Analysis.WideOnly = o.wideOnly },
		"json":       func() { cfg.Export.JSON = o.jsonPath },
		"excel":      func() { cfg.Export.Excel = o.excelPath },
		"csv":        func() { cfg.Export.CSV = o.csvPath },
		"sqlite":     func() { cfg.Export.SQLite = o.dbPath },
		"log-level":  func() { cfg.Log.Level = o.logLevel },
		"log-file":   func() { cfg.Log.File = o.logFile },
	}
	for name := range o.set {
		if fn, ok := overrides[name]; ok {
			fn()
		}
	}
}
