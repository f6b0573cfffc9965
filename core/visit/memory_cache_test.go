package visit_test

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/visitlog/core/visit"
)

func TestMemoryCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("get after set", func(t *testing.T) {
		t.Parallel()
		cache := visit.NewMemoryCache()

		_, ok, err := cache.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, cache.Set(ctx, "k", "v1:abc", time.Hour))
		hash, ok, err := cache.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "v1:abc", hash)

		stats := cache.Stats()
		assert.EqualValues(t, 1, stats.Hits)
		assert.EqualValues(t, 1, stats.Misses)
		assert.Equal(t, 1, stats.ActiveEntries)
	})

	t.Run("entries expire", func(t *testing.T) {
		t.Parallel()
		clock := quartz.NewMock(t)
		clock.Set(time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC))
		cache := visit.NewMemoryCache(visit.WithCacheClock(clock))

		require.NoError(t, cache.Set(ctx, "k", "h", visit.UntilMidnight(clock.Now())))

		clock.Advance(59 * time.Minute)
		_, ok, err := cache.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)

		clock.Advance(time.Minute)
		_, ok, err = cache.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok, "entry must expire at midnight")
		assert.EqualValues(t, 1, cache.Stats().Evicted)
		assert.Zero(t, cache.Stats().ActiveEntries)
	})

	t.Run("non-positive ttl deletes", func(t *testing.T) {
		t.Parallel()
		cache := visit.NewMemoryCache()
		require.NoError(t, cache.Set(ctx, "k", "h", time.Hour))
		require.NoError(t, cache.Set(ctx, "k", "h", 0))

		_, ok, err := cache.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("sweep removes expired entries", func(t *testing.T) {
		t.Parallel()
		clock := quartz.NewMock(t)
		clock.Set(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
		cache := visit.NewMemoryCache(visit.WithCacheClock(clock))

		require.NoError(t, cache.Set(ctx, "short", "h", time.Minute))
		require.NoError(t, cache.Set(ctx, "long", "h", time.Hour))

		clock.Advance(2 * time.Minute)
		assert.Equal(t, 1, cache.Sweep())

		_, ok, err := cache.Get(ctx, "long")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		cache := visit.NewMemoryCache()
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, _, err := cache.Get(cctx, "k")
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, cache.Set(cctx, "k", "h", time.Hour), context.Canceled)
	})
}

func TestMemoryCacheLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("run until cancelled", func(t *testing.T) {
		t.Parallel()
		cache := visit.NewMemoryCache(visit.WithCleanupInterval(10 * time.Millisecond))
		require.Error(t, cache.Healthcheck(context.Background()))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- cache.Run(ctx)() }()

		require.Eventually(t, func() bool { return cache.Stats().IsRunning }, time.Second, 5*time.Millisecond)
		require.NoError(t, cache.Healthcheck(context.Background()))

		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("run did not return after cancel")
		}
		assert.False(t, cache.Stats().IsRunning)
	})

	t.Run("stop times out on the cache clock", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		clock := quartz.NewMock(t)
		cache := visit.NewMemoryCache(
			visit.WithCacheClock(clock),
			visit.WithCacheShutdownTimeout(3*time.Second),
		)

		tickerTrap := clock.Trap().NewTicker("visit", "cache", "cleanup")
		defer tickerTrap.Close()
		started := make(chan error, 1)
		go func() { started <- cache.Start(context.Background()) }()
		tickerTrap.MustWait(ctx).MustRelease(ctx)

		finish := visit.HoldSweep(cache)
		defer finish()

		timerTrap := clock.Trap().NewTimer("visit", "cache", "shutdown")
		defer timerTrap.Close()
		stopped := make(chan error, 1)
		go func() { stopped <- cache.Stop() }()
		timerTrap.MustWait(ctx).MustRelease(ctx)

		select {
		case err := <-stopped:
			t.Fatalf("stop returned before the timeout: %v", err)
		default:
		}

		clock.Advance(3 * time.Second).MustWait(ctx)
		select {
		case err := <-stopped:
			require.Error(t, err)
		case <-ctx.Done():
			t.Fatal("stop did not time out")
		}
		assert.ErrorIs(t, <-started, context.Canceled)
	})

	t.Run("misuse", func(t *testing.T) {
		t.Parallel()
		cache := visit.NewMemoryCache(visit.WithCleanupInterval(0))
		require.Error(t, cache.Start(context.Background()))
		require.Error(t, cache.Stop())
		require.NoError(t, cache.Healthcheck(context.Background()))
	})
}

func TestUntilMidnight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{"noon", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), 12 * time.Hour},
		{"just after midnight", time.Date(2024, 3, 1, 0, 0, 1, 0, time.UTC), 24*time.Hour - time.Second},
		{"exactly midnight", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 24 * time.Hour},
		{"last second", time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC), time.Second},
		{"local zone", time.Date(2024, 3, 1, 21, 0, 0, 0, time.FixedZone("UTC+2", 2*60*60)), 3 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := visit.UntilMidnight(tt.now)
			assert.Equal(t, tt.want, got)
			assert.Positive(t, got)
		})
	}
}
