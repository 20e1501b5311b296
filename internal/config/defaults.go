package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultRestURL     = "https://api.elections.kalshi.com/trade-api/v2"
	DefaultAPITimeout  = 30 * time.Second
	DefaultRateLimit   = 10.0
	DefaultHours       = 24
	MaxHours           = 10 * 365 * 24
	DefaultLimit       = 500
	DefaultTopN        = 10
	DefaultDisplayRows = 15
	DefaultLogLevel    = "info"
	DefaultLogMaxSize  = 10
	DefaultLogBackups  = 3
	DefaultLogMaxAge   = 28
)

func (c *Config) applyDefaults() {
	// API defaults
	if c.API.RestURL == "" {
		c.API.RestURL = DefaultRestURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.RateLimit == 0 {
		c.API.RateLimit = DefaultRateLimit
	}

	// Analysis defaults
	if c.Analysis.Hours == 0 {
		c.Analysis.Hours = DefaultHours
	}
	if c.Analysis.Limit == 0 {
		c.Analysis.Limit = DefaultLimit
	}
	if c.Analysis.TopN == 0 {
		c.Analysis.TopN = DefaultTopN
	}
	if c.Analysis.DisplayRows == 0 {
		c.Analysis.DisplayRows = DefaultDisplayRows
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = DefaultLogMaxSize
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = DefaultLogBackups
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = DefaultLogMaxAge
	}
}
