package visit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/quartz"

	"github.com/dmitrymomot/visitlog/core/logger"
)

type cacheEntry struct {
	hash      string
	expiresAt time.Time
}

// MemoryCache is an in-process Cache with per-entry expiry.
// Expired entries are dropped on read and, when Start is running, by a
// periodic sweep.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry

	cleanupInterval time.Duration
	shutdownTimeout time.Duration
	clock           quartz.Clock
	logger          *slog.Logger

	cancel  context.CancelFunc
	running atomic.Bool
	wg      sync.WaitGroup

	hits    atomic.Int64
	misses  atomic.Int64
	evicted atomic.Int64
}

// MemoryCacheStats reports cache counters.
type MemoryCacheStats struct {
	Hits          int64
	Misses        int64
	Evicted       int64
	ActiveEntries int
	IsRunning     bool
}

// MemoryCacheOption configures a MemoryCache.
type MemoryCacheOption func(*MemoryCache)

// WithCleanupInterval sets the sweep interval. Zero disables the sweep.
func WithCleanupInterval(interval time.Duration) MemoryCacheOption {
	return func(mc *MemoryCache) {
		mc.cleanupInterval = interval
	}
}

// WithCacheShutdownTimeout bounds how long Stop waits for an in-flight sweep.
func WithCacheShutdownTimeout(timeout time.Duration) MemoryCacheOption {
	return func(mc *MemoryCache) {
		if timeout > 0 {
			mc.shutdownTimeout = timeout
		}
	}
}

// WithCacheClock sets the clock used for expiry.
func WithCacheClock(clock quartz.Clock) MemoryCacheOption {
	return func(mc *MemoryCache) {
		if clock != nil {
			mc.clock = clock
		}
	}
}

// WithCacheLogger sets the logger for lifecycle events.
func WithCacheLogger(l *slog.Logger) MemoryCacheOption {
	return func(mc *MemoryCache) {
		if l != nil {
			mc.logger = l
		}
	}
}

// NewMemoryCache creates an empty cache. Call Start or Run to enable the sweep.
func NewMemoryCache(opts ...MemoryCacheOption) *MemoryCache {
	mc := &MemoryCache{
		entries:         make(map[string]cacheEntry),
		cleanupInterval: 10 * time.Minute,
		shutdownTimeout: 5 * time.Second,
		clock:           quartz.NewReal(),
		logger:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(mc)
	}
	return mc
}

// Get returns the digest stored under key if it has not expired.
func (mc *MemoryCache) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	now := mc.clock.Now()

	mc.mu.RLock()
	e, ok := mc.entries[key]
	mc.mu.RUnlock()

	if !ok {
		mc.misses.Add(1)
		return "", false, nil
	}
	if !now.Before(e.expiresAt) {
		mc.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it.
		if cur, ok := mc.entries[key]; ok && !now.Before(cur.expiresAt) {
			delete(mc.entries, key)
			mc.evicted.Add(1)
		}
		mc.mu.Unlock()
		mc.misses.Add(1)
		return "", false, nil
	}

	mc.hits.Add(1)
	return e.hash, true, nil
}

// Set stores hash under key for ttl. A non-positive ttl removes the key.
func (mc *MemoryCache) Set(ctx context.Context, key, hash string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	if ttl <= 0 {
		delete(mc.entries, key)
		return nil
	}
	mc.entries[key] = cacheEntry{hash: hash, expiresAt: mc.clock.Now().Add(ttl)}
	return nil
}

// Start runs the expiry sweep until ctx is cancelled or Stop is called.
// It blocks; use Run with an errgroup.
func (mc *MemoryCache) Start(ctx context.Context) error {
	mc.mu.Lock()
	if mc.cancel != nil {
		mc.mu.Unlock()
		return errors.New("memory cache already started")
	}
	if mc.cleanupInterval <= 0 {
		mc.mu.Unlock()
		return fmt.Errorf("cleanup interval must be > 0, got %v", mc.cleanupInterval)
	}
	ctx, cancel := context.WithCancel(ctx)
	mc.cancel = cancel
	mc.mu.Unlock()

	mc.running.Store(true)
	defer mc.running.Store(false)

	mc.logger.InfoContext(ctx, "visit cache cleanup started",
		slog.Duration("cleanup_interval", mc.cleanupInterval))

	ticker := mc.clock.NewTicker(mc.cleanupInterval, "visit", "cache", "cleanup")
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			mc.logger.InfoContext(context.Background(), "visit cache cleanup stopping")
			return ctx.Err()
		case <-ticker.C:
			mc.sweepWithWait()
		}
	}
}

// Stop cancels the sweep and waits for an in-flight pass to finish.
func (mc *MemoryCache) Stop() error {
	mc.mu.Lock()
	if mc.cancel == nil {
		mc.mu.Unlock()
		return errors.New("memory cache not started")
	}
	cancel := mc.cancel
	mc.cancel = nil
	mc.mu.Unlock()

	cancel()

	done := make(chan struct{})
	go func() {
		mc.wg.Wait()
		close(done)
	}()

	timer := mc.clock.NewTimer(mc.shutdownTimeout, "visit", "cache", "shutdown")
	defer timer.Stop()

	select {
	case <-done:
		return nil
	case <-timer.C:
		mc.logger.Warn("visit cache shutdown timeout exceeded",
			slog.Duration("timeout", mc.shutdownTimeout))
		return fmt.Errorf("shutdown timeout exceeded after %s", mc.shutdownTimeout)
	}
}

// Run adapts Start and Stop to errgroup.Go.
func (mc *MemoryCache) Run(ctx context.Context) func() error {
	return func() error {
		errCh := make(chan error, 1)
		go func() {
			errCh <- mc.Start(ctx)
		}()

		select {
		case <-ctx.Done():
			_ = mc.Stop()
			<-errCh
			return nil
		case err := <-errCh:
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				_ = mc.Stop()
				return nil
			}
			return err
		}
	}
}

func (mc *MemoryCache) sweepWithWait() {
	mc.mu.RLock()
	if mc.cancel == nil {
		mc.mu.RUnlock()
		return
	}
	mc.wg.Add(1)
	mc.mu.RUnlock()

	defer mc.wg.Done()
	mc.Sweep()
}

// Sweep removes every expired entry and returns how many were removed.
func (mc *MemoryCache) Sweep() int {
	now := mc.clock.Now()

	mc.mu.Lock()
	defer mc.mu.Unlock()

	removed := 0
	for key, e := range mc.entries {
		if !now.Before(e.expiresAt) {
			delete(mc.entries, key)
			removed++
		}
	}
	if removed > 0 {
		mc.evicted.Add(int64(removed))
	}
	return removed
}

// Stats returns a snapshot of cache counters.
func (mc *MemoryCache) Stats() MemoryCacheStats {
	mc.mu.RLock()
	active := len(mc.entries)
	mc.mu.RUnlock()

	return MemoryCacheStats{
		Hits:          mc.hits.Load(),
		Misses:        mc.misses.Load(),
		Evicted:       mc.evicted.Load(),
		ActiveEntries: active,
		IsRunning:     mc.running.Load(),
	}
}

// Healthcheck fails when the sweep is configured but not running.
func (mc *MemoryCache) Healthcheck(ctx context.Context) error {
	if mc.cleanupInterval > 0 && !mc.Stats().IsRunning {
		return errors.New("visit cache cleanup is configured but not running")
	}
	return nil
}

var _ Cache = (*MemoryCache)(nil)
