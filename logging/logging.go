package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// LoggerConfig holds configuration for the logger.
type LoggerConfig struct {
	Level   string
	Format  string
	Service string
}

// NewLogger creates a new slog.Logger writing to w.
// The level defaults to INFO and the format to JSON when empty or unknown.
// A non-empty Service is attached to every record.
func NewLogger(config LoggerConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource:   false,
		Level:       parseLevel(config.Level),
		ReplaceAttr: nil,
	}

	var handler slog.Handler
	if parseFormat(config.Format) == FormatText {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler)
	if config.Service != "" {
		logger = logger.With(slog.String("service", config.Service))
	}

	return logger
}

func parseFormat(format string) string {
	if strings.EqualFold(format, FormatText) {
		return FormatText
	}

	return FormatJSON
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
