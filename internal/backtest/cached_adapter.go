// Package backtest provides a caching adapter wrapper.
package backtest

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// CachedAdapter wraps an Adapter with bundle caching and in-flight request
// coalescing. Concurrent runs for the same period, config and symbols share
// a single execution of the inner adapter.
type CachedAdapter struct {
	inner  Adapter
	cache  *BundleCache
	logger *logrus.Logger

	mu       sync.Mutex
	inFlight map[string]*sync.Mutex
}

// NewCachedAdapter creates a new cached adapter around inner
func NewCachedAdapter(inner Adapter, ttl time.Duration, maxSize int, logger *logrus.Logger) *CachedAdapter {
	if logger == nil {
		logger = logrus.New()
	}
	return &CachedAdapter{
		inner:    inner,
		cache:    NewBundleCache(ttl, maxSize),
		logger:   logger,
		inFlight: make(map[string]*sync.Mutex),
	}
}

// Run retrieves the bundle from cache or executes the inner adapter.
// Failures are not cached; a later run for the same key retries the inner
// adapter.
func (c *CachedAdapter) Run(ctx context.Context, period DateRange, strategyConfig json.RawMessage, symbols []string) (*MetricsBundle, error) {
	key := RunKey(period, strategyConfig, symbols)

	if cached := c.cache.Get(key); cached != nil {
		c.logger.WithField("run_key", key).Debug("Cache hit for backtest bundle")
		BacktestRunsTotal.WithLabelValues("cached", "success").Inc()
		return cached, nil
	}

	// Serialize concurrent misses for the same key so only one of them
	// reaches the inner adapter.
	keyLock := c.lockFor(key)
	keyLock.Lock()
	defer func() {
		keyLock.Unlock()
		c.releaseLock(key)
	}()

	if cached := c.cache.Get(key); cached != nil {
		c.logger.WithField("run_key", key).Debug("Cache hit after in-flight wait")
		BacktestRunsTotal.WithLabelValues("cached", "success").Inc()
		return cached, nil
	}

	c.logger.WithField("run_key", key).Debug("Cache miss, running backtest")
	bundle, err := c.inner.Run(ctx, period, strategyConfig, symbols)
	if err != nil {
		return nil, err
	}

	c.cache.Set(key, bundle)
	return bundle, nil
}

// ClearCache clears all cached bundles
func (c *CachedAdapter) ClearCache() {
	c.cache.Clear()
}

// CacheStats returns cache statistics
func (c *CachedAdapter) CacheStats() (hits, misses uint64, hitRatio float64) {
	return c.cache.Stats()
}

func (c *CachedAdapter) lockFor(key string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()

	if lock, ok := c.inFlight[key]; ok {
		return lock
	}
	lock := &sync.Mutex{}
	c.inFlight[key] = lock
	return lock
}

func (c *CachedAdapter) releaseLock(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, key)
}
