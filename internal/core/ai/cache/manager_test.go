package cache

import (
	"context"
	"testing"
	"time"

	"meal-recommender/internal/infrastructure/config"
	"meal-recommender/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, maxSize int, ttl time.Duration) *CacheManager {
	t.Helper()
	m := NewManager(config.CacheConfig{Enabled: true, Backend: "memory", MaxSize: maxSize, TTL: ttl})
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestManagerGetSet(t *testing.T) {
	m := newTestManager(t, 10, time.Hour)
	ctx := context.Background()

	_, err := m.Get(ctx, "prompt")
	assert.ErrorIs(t, err, common.ErrCacheMiss)

	require.NoError(t, m.Set(ctx, "prompt", "value"))
	got, err := m.Get(ctx, "prompt")
	require.NoError(t, err)
	assert.Equal(t, "value", got)

	stats := m.GetStats()
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 0.5, stats.HitRatio, 1e-9)
}

func TestManagerExpiry(t *testing.T) {
	m := newTestManager(t, 10, time.Minute)
	ctx := context.Background()

	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	require.NoError(t, m.Set(ctx, "prompt", "value"))

	now = now.Add(2 * time.Minute)
	_, err := m.Get(ctx, "prompt")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
	assert.Equal(t, 0, m.GetStats().Size)
}

func TestManagerEvictsLeastUsed(t *testing.T) {
	m := newTestManager(t, 2, time.Hour)
	ctx := context.Background()

	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time {
		now = now.Add(time.Second)
		return now
	}

	require.NoError(t, m.Set(ctx, "a", "1"))
	require.NoError(t, m.Set(ctx, "b", "2"))
	_, err := m.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, m.Set(ctx, "c", "3"))

	_, err = m.Get(ctx, "b")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
	got, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", got)
	assert.Equal(t, 2, m.GetStats().Size)
}

func TestManagerOverwriteAtCapacity(t *testing.T) {
	m := newTestManager(t, 1, time.Hour)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", "1"))
	require.NoError(t, m.Set(ctx, "a", "2"))
	got, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "2", got)
}

func TestKeyIsStable(t *testing.T) {
	assert.Equal(t, Key("same prompt"), Key("same prompt"))
	assert.NotEqual(t, Key("prompt a"), Key("prompt b"))
	assert.Regexp(t, `^text:[0-9a-f]{64}$`, Key("x"))
}

func TestManagerDisabled(t *testing.T) {
	m := NewManager(config.CacheConfig{Enabled: false, MaxSize: 10, TTL: time.Hour, CleanupInterval: time.Minute})
	t.Cleanup(func() { _ = m.Close() })
	ctx := context.Background()

	assert.ErrorIs(t, m.Set(ctx, "prompt", "value"), common.ErrCacheDisabled)
	_, err := m.Get(ctx, "prompt")
	assert.ErrorIs(t, err, common.ErrCacheDisabled)
	assert.Equal(t, 0, m.GetStats().Size)
}
