package telemetry

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rickgao/kalshi-analyzer/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := newLogger(&buf, config.LogConfig{Level: "warn"})
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("shown", "count", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record logged at warn level: %q", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "count=3") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestNewLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analyzer.log")

	var buf bytes.Buffer
	logger, closer := newLogger(&buf, config.LogConfig{Level: "info", File: path, MaxSizeMB: 1})
	logger.Info("to both", "run_id", "abc")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "run_id=abc") {
		t.Errorf("log file = %q, want record", data)
	}
	if !strings.Contains(buf.String(), "run_id=abc") {
		t.Errorf("console = %q, want record", buf.String())
	}
}
