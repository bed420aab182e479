package logger

import (
	"log/slog"
	"os"
)

// New returns a structured JSON logger writing to stdout. The dev
// environment gets debug level and source positions; everything else logs
// at info.
func New(environment string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if environment == "dev" {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
