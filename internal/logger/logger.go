package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var Logger *log.Logger

// Init initializes the logger with default settings on stderr.
func Init() {
	Initialize("info", os.Stderr)
}

// Initialize sets up the global logger. The TUI owns the terminal, so callers
// usually pass a log file rather than stderr.
func Initialize(logLevel string, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	Logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		ReportCaller:    true,
	})
	Logger.SetLevel(ParseLevel(logLevel))

	Logger.Debug("Logger initialized", "level", strings.ToLower(logLevel))
}

// ParseLevel maps a level name to a log.Level, defaulting to info.
func ParseLevel(logLevel string) log.Level {
	switch strings.ToLower(strings.TrimSpace(logLevel)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// Discard points the global logger at io.Discard. Used by tests.
func Discard() {
	Logger = log.New(io.Discard)
}

// Get returns the global logger instance
func Get() *log.Logger {
	if Logger == nil {
		Init()
	}
	return Logger
}

// WithContext creates a new logger with additional context fields
func WithContext(fields ...any) *log.Logger {
	return Get().With(fields...)
}

// Service creates a logger for a specific service
func Service(serviceName string) *log.Logger {
	return WithContext("service", serviceName)
}

// HTTP creates a logger for remote API calls
func HTTP() *log.Logger {
	return WithContext("component", "http")
}

// Storage creates a logger for the local session cache
func Storage() *log.Logger {
	return WithContext("component", "storage")
}

// UI creates a logger for a TUI screen
func UI(screen string) *log.Logger {
	return WithContext("component", "ui", "screen", screen)
}
