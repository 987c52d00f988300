package service

import "github.com/zappabad/poketrade/internal/trade"

// Config holds configuration for the trade service.
type Config struct {
	// PageSize is the directory page size used when ListParams leaves it zero.
	PageSize int
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{PageSize: trade.DefaultPageSize}
}
