// Package backtest provides caching for backtest metrics bundles.
package backtest

import (
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// BundleCache provides in-memory caching of metrics bundles keyed by run key
type BundleCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	maxSize   int
	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// NewBundleCache creates a new bundle cache
func NewBundleCache(ttl time.Duration, maxSize int) *BundleCache {
	return &BundleCache{
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves a cached bundle, or nil on a miss
func (bc *BundleCache) Get(key string) *MetricsBundle {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	if cached, found := bc.cache.Get(key); found {
		bc.hitCount++
		bc.updateMetrics()
		if bundle, ok := cached.(*MetricsBundle); ok {
			return bundle
		}
	}

	bc.missCount++
	bc.updateMetrics()
	return nil
}

// Set stores a bundle in the cache
func (bc *BundleCache) Set(key string, bundle *MetricsBundle) {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	if bc.cache.ItemCount() >= bc.maxSize {
		bc.cache.DeleteExpired()
	}
	bc.cache.Set(key, bundle, bc.ttl)
}

// Clear flushes the entire cache
func (bc *BundleCache) Clear() {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	bc.cache.Flush()
	bc.hitCount = 0
	bc.missCount = 0
}

// Stats returns cache statistics
func (bc *BundleCache) Stats() (hits, misses uint64, ratio float64) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	hits = bc.hitCount
	misses = bc.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of items in cache
func (bc *BundleCache) ItemCount() int {
	return bc.cache.ItemCount()
}

func (bc *BundleCache) updateMetrics() {
	total := bc.hitCount + bc.missCount
	if total > 0 {
		BacktestCacheHitRatio.Set(float64(bc.hitCount) / float64(total))
	}
}
