package metric

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/whaeuser/plotterm/internal/model"
)

// CacheKey represents a unique cache key for range queries. The key uses the
// size of the range instead of its bounds so queries over a sliding window
// made close in time share the entry.
type CacheKey struct {
	DatasourceID string
	Query        string
	Range        time.Duration
	Step         time.Duration
}

// NewCacheKey creates a cache key from query parameters.
func NewCacheKey(datasourceID, query string, tr model.TimeRange, step time.Duration) CacheKey {
	return CacheKey{
		DatasourceID: datasourceID,
		Query:        query,
		Range:        tr.Duration().Round(time.Second),
		Step:         step,
	}
}

func (c CacheKey) hash() string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(fmt.Sprintf("%s:%s:%d:%d", c.DatasourceID, c.Query, c.Range, c.Step))))
}

// cacheEntry holds cached metric data with expiration.
type cacheEntry struct {
	data    []model.MetricSeries
	created time.Time
	expires time.Time
}

// MetricCache provides thread-safe caching for metric data.
type MetricCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	maxSize int
	maxAge  time.Duration
	hits    int64
	misses  int64
	now     func() time.Time
}

// NewMetricCache creates a new metric cache.
func NewMetricCache(maxSize int, maxAge time.Duration) *MetricCache {
	return &MetricCache{
		entries: make(map[string]*cacheEntry),
		maxSize: maxSize,
		maxAge:  maxAge,
		now:     time.Now,
	}
}

// Run removes the expired entries periodically until the context is done.
func (mc *MetricCache) Run(ctx context.Context) {
	tk := time.NewTicker(mc.maxAge)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			mc.mu.Lock()
			mc.evictExpired()
			mc.mu.Unlock()
		}
	}
}

// Get retrieves metrics from cache if available.
func (mc *MetricCache) Get(key CacheKey) ([]model.MetricSeries, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	h := key.hash()
	if entry, ok := mc.entries[h]; ok {
		if mc.now().Before(entry.expires) {
			mc.hits++
			return entry.data, true
		}
		delete(mc.entries, h)
	}

	mc.misses++
	return nil, false
}

// Set stores metrics in cache.
func (mc *MetricCache) Set(key CacheKey, data []model.MetricSeries) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if len(mc.entries) >= mc.maxSize {
		mc.evictExpired()
	}
	if len(mc.entries) >= mc.maxSize {
		mc.evictOldest()
	}

	now := mc.now()
	mc.entries[key.hash()] = &cacheEntry{
		data:    data,
		created: now,
		expires: now.Add(mc.maxAge),
	}
}

// Stats returns cache statistics.
func (mc *MetricCache) Stats() CacheStats {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	total := mc.hits + mc.misses
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(mc.hits) / float64(total) * 100
	}

	return CacheStats{
		Hits:    mc.hits,
		Misses:  mc.misses,
		HitRate: hitRate,
		Size:    len(mc.entries),
	}
}

// Clear removes all entries from cache.
func (mc *MetricCache) Clear() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.entries = make(map[string]*cacheEntry)
	mc.hits = 0
	mc.misses = 0
}

// evictExpired must be called with the lock held.
func (mc *MetricCache) evictExpired() {
	now := mc.now()
	for key, entry := range mc.entries {
		if now.After(entry.expires) {
			delete(mc.entries, key)
		}
	}
}

// evictOldest must be called with the lock held.
func (mc *MetricCache) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
	)
	for key, entry := range mc.entries {
		if oldestKey == "" || entry.created.Before(oldest) {
			oldestKey = key
			oldest = entry.created
		}
	}
	delete(mc.entries, oldestKey)
}

// CacheStats provides cache performance metrics.
type CacheStats struct {
	Hits    int64
	Misses  int64
	HitRate float64
	Size    int
}
