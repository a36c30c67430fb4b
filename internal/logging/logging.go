// Package logging installs the process-wide structured logger for the alert
// engine. All components log through log/slog; the JSON handler keeps feed
// loop and API output machine-parseable for log shipping.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Setup replaces the default slog logger with a JSON handler writing to w
// at the given level. Unrecognized levels fall back to info, matching the
// config default.
func Setup(w io.Writer, level string) {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	slog.SetDefault(slog.New(handler))
}

// ParseLevel maps the config's level string onto a slog.Level.
func ParseLevel(level string) slog.Level {
	switch level {
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

// Fatalf logs at error level and exits. For wiring failures in main only;
// running components return errors instead.
func Fatalf(format string, args ...any) {
	slog.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}
