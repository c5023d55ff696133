package app

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger. Production runs typically set
// LOG_FORMAT=json; anything else gets a human-readable text handler with
// debug output enabled.
func NewLogger(cfg *Config) *slog.Logger {
	if cfg != nil && cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
	}
	opts := &slog.HandlerOptions{AddSource: true, Level: slog.LevelDebug}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
