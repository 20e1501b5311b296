// Package telemetry builds the analyzer's structured logger.
package telemetry

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rickgao/kalshi-analyzer/internal/config"
)

// ParseLogLevel converts a string level name to slog.Level. Unknown names
// map to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger returns a text logger writing to stderr and, when cfg.File is
// set, to a size-rotated log file. The returned closer releases the file and
// is never nil.
func NewLogger(cfg config.LogConfig) (*slog.Logger, io.Closer) {
	return newLogger(os.Stderr, cfg)
}

func newLogger(console io.Writer, cfg config.LogConfig) (*slog.Logger, io.Closer) {
	var (
		w      = console
		closer io.Closer = nopCloser{}
	)

	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		w = io.MultiWriter(console, file)
		closer = file
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLogLevel(cfg.Level),
	}))
	return logger, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
