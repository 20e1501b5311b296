package render

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatTimeUntil(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{-time.Minute, "CLOSED"},
		{0, "0m"},
		{45 * time.Minute, "45m"},
		{59*time.Minute + 59*time.Second, "59m"},
		{time.Hour, "1.0h"},
		{90 * time.Minute, "1.5h"},
		{23*time.Hour + 30*time.Minute, "23.5h"},
		{24 * time.Hour, "1.0d"},
		{36 * time.Hour, "1.5d"},
		{167 * time.Hour, "7.0d"},
		{168 * time.Hour, "1.0w"},
		{21 * 24 * time.Hour, "3.0w"},
	}

	for _, tt := range tests {
		if got := FormatTimeUntil(tt.d); got != tt.want {
			t.Errorf("FormatTimeUntil(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 50, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"exactly eleven", 11, "exactly e.."},
		{"héllo wörld", 7, "héllo.."},
		{"", 5, ""},
	}

	for _, tt := range tests {
		if got := Truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestFormatPrices(t *testing.T) {
	p := decimal.RequireFromString("0.45")

	if got := FormatCents(p); got != "45¢" {
		t.Errorf("FormatCents(0.45) = %q, want 45¢", got)
	}
	if got := FormatCents(decimal.Zero); got != "—" {
		t.Errorf("FormatCents(0) = %q, want —", got)
	}
	if got := FormatDollars(p); got != "$0.45" {
		t.Errorf("FormatDollars(0.45) = %q, want $0.45", got)
	}
	if got := FormatPercent(decimal.RequireFromString("6.4"), 2); got != "6.40%" {
		t.Errorf("FormatPercent(6.4, 2) = %q, want 6.40%%", got)
	}
	if got := FormatVolume(1234567); got != "1,234,567" {
		t.Errorf("FormatVolume(1234567) = %q, want 1,234,567", got)
	}
}
