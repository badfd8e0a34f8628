package cache

import (
	"context"
	"testing"
	"time"

	"github.com/dpup/prefab/logging"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpup/postmile/server/internal/metrics"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestCache() (*Cache, *clock) {
	clk := &clock{t: time.Date(2025, 3, 6, 12, 0, 0, 0, time.UTC)}
	c := NewCache()
	c.now = clk.now
	return c, clk
}

func gaugeValue(t *testing.T, state string) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, metrics.CacheEntries.WithLabelValues(state).Write(&m))
	return m.GetGauge().GetValue()
}

func TestCache_SetGet(t *testing.T) {
	c, clk := newTestCache()

	c.Set("dataset:d12/ORA/5/NB", []int{1, 2, 3}, time.Minute, "dataset")

	value, found := c.Get("dataset:d12/ORA/5/NB")
	require.True(t, found)
	assert.Equal(t, []int{1, 2, 3}, value)

	_, found = c.Get("dataset:missing")
	assert.False(t, found)

	clk.t = clk.t.Add(2 * time.Minute)
	_, found = c.Get("dataset:d12/ORA/5/NB")
	assert.False(t, found, "expired entries are not served")

	stats := c.Stats()
	assert.Equal(t, 1, stats.TotalEntries, "expired entries stay until cleanup")
	assert.Equal(t, 1, stats.StaleEntries)
}

func TestCache_StatsAndCleanup(t *testing.T) {
	c, clk := newTestCache()

	c.Set("a", 1, time.Minute, "test")
	clk.t = clk.t.Add(30 * time.Second)
	c.Set("b", 2, time.Hour, "test")
	clk.t = clk.t.Add(time.Minute)

	stats := c.Stats()
	assert.Equal(t, 2, stats.TotalEntries)
	assert.Equal(t, 1, stats.FreshEntries)
	assert.Equal(t, 1, stats.StaleEntries)
	assert.True(t, stats.OldestEntry.Before(stats.NewestEntry))

	assert.Equal(t, 1, c.CleanupStale())
	stats = c.Stats()
	assert.Equal(t, 1, stats.TotalEntries)
	assert.Equal(t, 0, stats.StaleEntries)

	_, found := c.Get("b")
	assert.True(t, found)
}

func TestCache_ReportStats(t *testing.T) {
	c, clk := newTestCache()

	c.Set("a", 1, time.Minute, "test")
	c.Set("b", 2, time.Hour, "test")
	c.Set("c", 3, time.Hour, "test")
	clk.t = clk.t.Add(2 * time.Minute)

	stats := c.ReportStats()
	assert.Equal(t, 3, stats.TotalEntries)
	assert.Equal(t, 2.0, gaugeValue(t, "fresh"))
	assert.Equal(t, 1.0, gaugeValue(t, "stale"))

	c.CleanupStale()
	c.ReportStats()
	assert.Equal(t, 2.0, gaugeValue(t, "fresh"))
	assert.Equal(t, 0.0, gaugeValue(t, "stale"))
}

func TestCache_PeriodicCleanup(t *testing.T) {
	c := NewCache()
	c.Set("short", 1, time.Millisecond, "test")

	ctx, cancel := context.WithCancel(logging.EnsureLogger(context.Background()))
	defer cancel()

	c.StartPeriodicCleanup(ctx, 5*time.Millisecond)

	assert.Eventually(t, func() bool {
		return c.Stats().TotalEntries == 0
	}, time.Second, 5*time.Millisecond)
}

func TestCache_PeriodicCleanupWithoutLogger(t *testing.T) {
	c := NewCache()
	c.Set("short", 1, time.Millisecond, "test")

	// Removals are logged, so a context without a logger must not panic
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c.StartPeriodicCleanup(ctx, 5*time.Millisecond)

	assert.Eventually(t, func() bool {
		return c.Stats().TotalEntries == 0
	}, time.Second, 5*time.Millisecond)
}
