package config

import (
	"errors"
	"fmt"
	"strings"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.API.RestURL == "" {
		return errors.New("api.rest_url is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be > 0, got %s", c.API.Timeout)
	}
	if c.API.RateLimit <= 0 {
		return fmt.Errorf("api.rate_limit must be > 0, got %g", c.API.RateLimit)
	}

	if c.Analysis.Hours < 1 {
		return errors.New("analysis.hours must be >= 1")
	}
	if c.Analysis.Hours > MaxHours {
		return fmt.Errorf("analysis.hours must be <= %d, got %d", MaxHours, c.Analysis.Hours)
	}
	if c.Analysis.MinVolume < 0 {
		return errors.New("analysis.min_volume must be >= 0")
	}
	if c.Analysis.Limit < 1 {
		return errors.New("analysis.limit must be >= 1")
	}
	if c.Analysis.TopN < 1 {
		return errors.New("analysis.top_n must be >= 1")
	}
	if c.Analysis.DisplayRows < 1 {
		return errors.New("analysis.display_rows must be >= 1")
	}

	level := strings.ToLower(c.Log.Level)
	valid := false
	for _, l := range validLogLevels {
		if level == l {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("log.level must be one of %s, got %q", strings.Join(validLogLevels, ", "), c.Log.Level)
	}

	return nil
}
