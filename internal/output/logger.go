/*
PURPOSE:
  Provides a structured logger for ei-reports.
  Wraps slog for consistent output.

REQUIREMENTS:
  User-specified:
  - Every error reaches the operator; per-record failures carry the person's identity.

  Implementation-discovered:
  - Needs Debug/Info/Warn/Error levels selectable from config.
  - JSON output is handy when runs are scheduled and scraped.

ARCHITECTURE INTEGRATION:
  - Used everywhere.

IMPLEMENTATION RULES:
  - Use `log/slog` (Go 1.21+).
  - Messages in Title Case, context as key/value pairs.

USAGE:
  output.Logger.Info("message", "key", "value")
*/

package output

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

var Logger *slog.Logger

func init() {
	Logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// SetLogger allows overriding the default logger (e.g. for testing or config changes)
func SetLogger(l *slog.Logger) {
	Logger = l
}

// Configure replaces the global logger with one writing to w at the given
// level ("debug", "info", "warn", "error") and format ("text" or "json").
func Configure(level, format string, w io.Writer) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "", "text":
		SetLogger(slog.New(slog.NewTextHandler(w, opts)))
	case "json":
		SetLogger(slog.New(slog.NewJSONHandler(w, opts)))
	default:
		return fmt.Errorf("invalid log format %q", format)
	}
	return nil
}
