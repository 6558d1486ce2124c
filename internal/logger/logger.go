// Package logger configures the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup builds the global logger: human-readable console output in
// development, JSON lines everywhere else.
func Setup(env, level string) zerolog.Logger {
	var w io.Writer = os.Stderr
	if env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	zl := zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
	log.Logger = zl
	return zl
}

// ParseLevel maps a config string to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
