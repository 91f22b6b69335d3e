// Package logging builds the structured logger shared by the CLI, the
// reminder daemon and the MCP server.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config configures New.
type Config struct {
	Level  string
	Format Format
	// Output defaults to os.Stderr so logs never mix with command output.
	Output io.Writer
}

// New returns a logger for cfg. Unknown levels fall back to info.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var h slog.Handler
	switch Format(strings.ToLower(string(cfg.Format))) {
	case FormatJSON:
		h = slog.NewJSONHandler(out, opts)
	default:
		h = slog.NewTextHandler(out, opts)
	}
	return slog.New(h)
}

// Discard drops everything. Packages use it when no logger is injected.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel maps debug, info, warn(ing) and error to slog levels.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
