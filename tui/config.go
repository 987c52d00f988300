package tui

import "time"

// Config tunes the interactive client.
type Config struct {
	// PageSize is the number of trades per directory page.
	PageSize int
	// ResolveConcurrency bounds parallel creature lookups on the detail screen.
	ResolveConcurrency int
	// RequestTimeout caps every request the UI issues. Zero means no limit.
	RequestTimeout time.Duration
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		PageSize:           20,
		ResolveConcurrency: 8,
	}
}
