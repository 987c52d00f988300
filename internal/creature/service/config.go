package service

// Config holds configuration for the creature service.
type Config struct {
	// Concurrency bounds in-flight lookups during ResolveAll.
	Concurrency int
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{Concurrency: 8}
}
