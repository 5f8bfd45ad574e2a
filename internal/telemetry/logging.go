// Package telemetry configures diagnostic logging for the CLI.
package telemetry

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel reads the level from LOG_LEVEL.
// Accepted values: DEBUG, INFO, WARN, ERROR. Defaults to WARN so that normal
// command output is not interleaved with log lines.
func LogLevel() slog.Level {
	switch strings.ToUpper(os.Getenv("LOG_LEVEL")) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// NewLogger builds a logger writing to w.
//
// LOG_FORMAT selects the handler:
//   - "text" (default): key=value lines
//   - "json": one JSON object per line
//
// verbose forces the DEBUG level regardless of LOG_LEVEL.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := LogLevel()
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
