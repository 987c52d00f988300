package api

import (
	"net/http"
	"time"
)

type Config struct {
	BaseURL string

	// Timeout bounds each request. Zero leaves requests unbounded.
	Timeout time.Duration

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client

	// OnUnauthorized runs after any 401 response, before the error is returned.
	OnUnauthorized func()

	// MaxErrorBody caps how much of an error response is read.
	MaxErrorBody int64
}

func DefaultConfig() Config {
	return Config{
		BaseURL:      "https://localhost:8000",
		MaxErrorBody: 1 << 20,
	}
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultConfig().BaseURL
	}
	if c.MaxErrorBody <= 0 {
		c.MaxErrorBody = 1 << 20
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	return c
}
