// Package logger configures the process-wide slog logger from the log_format
// and log_level config keys.
package logger

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// LogFormat selects the slog handler backing the default logger.
type LogFormat string

const (
	LogFormatPretty LogFormat = "pretty" // colorized tint output for terminals
	LogFormatJSON   LogFormat = "json"
	LogFormatText   LogFormat = "text"
)

// InitLogger installs the default slog logger. Called once during config
// setup, before anything else logs.
func InitLogger(format LogFormat, level slog.Level) {
	var handler slog.Handler

	switch format {
	case LogFormatJSON:
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	case LogFormatText:
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	default:
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.DateTime,
		})
	}

	slog.SetDefault(slog.New(handler))
}

// ParseLogFormat maps the log_format config value to a LogFormat.
// Unrecognized values fall back to pretty.
func ParseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	case "text":
		return LogFormatText
	default:
		return LogFormatPretty
	}
}

// ParseLogLevel maps the log_level config value to a slog.Level.
// Unrecognized values fall back to info.
func ParseLogLevel(s string) slog.Level {
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
