package config

import "time"

// Config is the root analyzer configuration.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Export   ExportConfig   `yaml:"export"`
	Log      LogConfig      `yaml:"log"`
}

// APIConfig holds Kalshi API settings.
type APIConfig struct {
	RestURL      string        `yaml:"rest_url"`
	Timeout      time.Duration `yaml:"timeout"`
	RateLimit    float64       `yaml:"rate_limit"`    // Requests per second
	SeriesTicker string        `yaml:"series_ticker"` // Optional listing filter
	EventTicker  string        `yaml:"event_ticker"`  // Optional listing filter
}

// AnalysisConfig holds the report window and view sizes.
type AnalysisConfig struct {
	Hours       int   `yaml:"hours"`
	MinVolume   int64 `yaml:"min_volume"`
	Limit       int   `yaml:"limit"` // Max records to request
	TopN        int   `yaml:"top_n"`
	DisplayRows int   `yaml:"display_rows"`
	WideOnly    bool  `yaml:"wide_only"`
}

// ExportConfig holds output paths. Empty paths disable that format.
type ExportConfig struct {
	JSON   string `yaml:"json"`
	Excel  string `yaml:"excel"`
	CSV    string `yaml:"csv"`
	SQLite string `yaml:"sqlite"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `yaml:"level"` // debug, info, warn, error
	File       string `yaml:"file"`  // Optional rotated log file
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}
