// Package logging builds the process logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects the logger's threshold and output format.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // text or json
	Writer io.Writer
}

// New creates a slog.Logger from cfg. It does not set the global logger.
// Unknown levels fall back to info and unknown formats to text; a nil
// Writer means stderr.
func New(cfg Config) *slog.Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
