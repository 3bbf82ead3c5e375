package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailcrew/trekrank/internal/domain"
)

func newTestCache(t *testing.T) (*ProgramScoreCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewWithClient(client)
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	scores := map[int64]float64{10: 30.5, 20: 12}
	require.NoError(t, c.Set(ctx, 1, domain.MethodTotal, scores, time.Minute))

	got, hit, err := c.Get(ctx, 1, domain.MethodTotal)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, scores, got)
}

func TestCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	_, hit, err := c.Get(context.Background(), 1, domain.MethodTotal)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheKeysAreMethodScoped(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 1, domain.MethodTotal, map[int64]float64{10: 30}, 0))

	_, hit, err := c.Get(ctx, 1, domain.MethodAverage)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheTTLExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 1, domain.MethodTotal, map[int64]float64{10: 30}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, hit, err := c.Get(ctx, 1, domain.MethodTotal)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheCorruptEntryIsAMiss(t *testing.T) {
	c, mr := newTestCache(t)

	require.NoError(t, mr.Set("trekrank:program_scores:1:Total", "not json"))

	_, hit, err := c.Get(context.Background(), 1, domain.MethodTotal)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestInvalidateCrew(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	for _, m := range []domain.Method{domain.MethodTotal, domain.MethodAverage, domain.MethodMedian, domain.MethodMode} {
		require.NoError(t, c.Set(ctx, 1, m, map[int64]float64{10: 1}, 0))
	}
	require.NoError(t, c.Set(ctx, 2, domain.MethodTotal, map[int64]float64{10: 2}, 0))

	require.NoError(t, c.InvalidateCrew(ctx, 1))

	for _, m := range []domain.Method{domain.MethodTotal, domain.MethodAverage, domain.MethodMedian, domain.MethodMode} {
		_, hit, err := c.Get(ctx, 1, m)
		require.NoError(t, err)
		assert.False(t, hit, "method %s should be invalidated", m)
	}

	// Other crews keep their entries.
	_, hit, err := c.Get(ctx, 2, domain.MethodTotal)
	require.NoError(t, err)
	assert.True(t, hit)
}
