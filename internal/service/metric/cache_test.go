package metric

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/whaeuser/plotterm/internal/model"
)

func TestNewCacheKeyUsesRangeSize(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	tr1 := model.TimeRange{Start: t0, End: t0.Add(time.Hour)}
	tr2 := model.TimeRange{Start: t0.Add(time.Minute), End: t0.Add(time.Hour + time.Minute)}

	k1 := NewCacheKey("ds", "up", tr1, time.Minute)
	k2 := NewCacheKey("ds", "up", tr2, time.Minute)
	k3 := NewCacheKey("ds", "up", tr2, time.Second)

	assert.Equal(t, k1.hash(), k2.hash())
	assert.NotEqual(t, k1.hash(), k3.hash())
}

func TestMetricCache(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	key := CacheKey{DatasourceID: "ds", Query: "up", Range: time.Hour}
	data := []model.MetricSeries{{ID: "s1"}}

	tests := []struct {
		name     string
		run      func(c *MetricCache) ([]model.MetricSeries, bool)
		expData  []model.MetricSeries
		expFound bool
	}{
		{
			name: "Missing entry should not be found",
			run: func(c *MetricCache) ([]model.MetricSeries, bool) {
				return c.Get(key)
			},
		},
		{
			name: "Stored entry should be found",
			run: func(c *MetricCache) ([]model.MetricSeries, bool) {
				c.Set(key, data)
				return c.Get(key)
			},
			expData:  data,
			expFound: true,
		},
		{
			name: "Expired entry should not be found",
			run: func(c *MetricCache) ([]model.MetricSeries, bool) {
				c.Set(key, data)
				c.now = func() time.Time { return now.Add(time.Minute) }
				return c.Get(key)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c := NewMetricCache(10, 10*time.Second)
			c.now = func() time.Time { return now }

			got, found := tt.run(c)
			assert.Equal(t, tt.expFound, found)
			assert.Equal(t, tt.expData, got)
		})
	}
}

func TestMetricCacheEvictsWhenFull(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	c := NewMetricCache(2, time.Minute)

	for i, q := range []string{"a", "b", "c"} {
		at := now.Add(time.Duration(i) * time.Second)
		c.now = func() time.Time { return at }
		c.Set(CacheKey{Query: q}, nil)
	}

	_, found := c.Get(CacheKey{Query: "a"})
	assert.False(t, found, "oldest entry should be evicted")
	_, found = c.Get(CacheKey{Query: "c"})
	assert.True(t, found)
	assert.Equal(t, 2, c.Stats().Size)
}

func TestMetricCacheStats(t *testing.T) {
	c := NewMetricCache(10, time.Minute)
	key := CacheKey{Query: "up"}

	c.Get(key)
	c.Set(key, nil)
	c.Get(key)
	c.Get(key)

	stats := c.Stats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 66.66, stats.HitRate, 0.01)

	c.Clear()
	assert.Equal(t, CacheStats{}, c.Stats())
}
