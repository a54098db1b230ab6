package metric

import "time"

// GatherConfig configures how the queries to the datasources are executed.
type GatherConfig struct {
	// EnableCaching enables the metric cache.
	EnableCaching bool

	// CacheSize is the maximum number of cache entries.
	CacheSize int

	// CacheTTL is how long cache entries remain valid.
	CacheTTL time.Duration

	// QueryTimeout is the timeout of a single query.
	QueryTimeout time.Duration

	// MaxConcurrentQueries limits parallel query execution.
	MaxConcurrentQueries int
}

// DefaultGatherConfig returns the default configuration.
func DefaultGatherConfig() GatherConfig {
	return GatherConfig{
		EnableCaching:        true,
		CacheSize:            100,
		CacheTTL:             10 * time.Second,
		QueryTimeout:         10 * time.Second,
		MaxConcurrentQueries: 10,
	}
}

func (g *GatherConfig) defaults() {
	def := DefaultGatherConfig()
	if g.CacheSize <= 0 {
		g.CacheSize = def.CacheSize
	}
	if g.CacheTTL <= 0 {
		g.CacheTTL = def.CacheTTL
	}
	if g.QueryTimeout <= 0 {
		g.QueryTimeout = def.QueryTimeout
	}
	if g.MaxConcurrentQueries <= 0 {
		g.MaxConcurrentQueries = def.MaxConcurrentQueries
	}
}
