// Package logger owns the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ServiceName tags every log line
const ServiceName = "messdesk"

var base zerolog.Logger

// LogLevel is one of debug, info, warn, error
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// Config represents logger configuration
type Config struct {
	Level  LogLevel
	Pretty bool      // console output instead of JSON
	Output io.Writer // defaults to os.Stdout
}

// ConfigFrom builds a Config from the level and format (json|text) settings
func ConfigFrom(level, format string) Config {
	return Config{
		Level:  LogLevel(strings.ToLower(strings.TrimSpace(level))),
		Pretty: strings.EqualFold(strings.TrimSpace(format), "text"),
	}
}

// Configure replaces the process logger and returns it. Unknown levels fall back to info.
func Configure(config Config) zerolog.Logger {
	out := config.Output
	if out == nil {
		out = os.Stdout
	}
	if config.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(string(config.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.DurationFieldUnit = time.Millisecond

	base = zerolog.New(out).With().Timestamp().Str("service", ServiceName).Logger()
	log.Logger = base
	return base
}

// Component returns the process logger tagged with a component name
func Component(name string) zerolog.Logger {
	return base.With().Str("component", name).Logger()
}

// Debug starts a debug entry on the process logger
func Debug() *zerolog.Event { return base.Debug() }

// Info starts an info entry on the process logger
func Info() *zerolog.Event { return base.Info() }

// Warn starts a warning entry on the process logger
func Warn() *zerolog.Event { return base.Warn() }

// Error starts an error entry on the process logger
func Error() *zerolog.Event { return base.Error() }

func init() {
	Configure(Config{Level: InfoLevel, Pretty: true})
}
