package cache

import (
	"context"
	"sync"
	"time"
)

// MemCache is the in-process layer in front of Redis.
type MemCache interface {
	Get(key string) any
	Set(key string, value any, ttl time.Duration)
	Delete(key string)
	Close()
}

// Create a in-memory cache with small TTL to minimize Redis calls.
type MemoryCache struct {
	memoryCache   sync.Map
	cleanupTicker *time.Ticker
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

// Simple cache item.
type MemCacheItem struct {
	value any
	ttl   time.Time
}

// NewMemCache creates a new memory cache, expired keys are swept every interval.
func NewMemCache(interval time.Duration) *MemoryCache {
	ctx, cancel := context.WithCancel(context.Background())
	mc := &MemoryCache{
		cancel:        cancel,
		cleanupTicker: time.NewTicker(interval),
		ctx:           ctx,
	}
	mc.startCleanupWorker()

	return mc
}

// startCleanupWorker starts the background worker for memory cleaning.
func (mc *MemoryCache) startCleanupWorker() {
	mc.wg.Add(1)
	go func() {
		defer mc.wg.Done()
		for {
			select {
			case <-mc.cleanupTicker.C:
				mc.cleanup()
			case <-mc.ctx.Done():
				return
			}
		}
	}()
}

// cleanup go through each key and clean any expired key.
func (mc *MemoryCache) cleanup() {
	now := time.Now()
	mc.memoryCache.Range(func(key, value any) bool {
		if now.After(value.(*MemCacheItem).ttl) {
			mc.memoryCache.Delete(key)
		}
		return true
	})
}

// Close shutdown the memory cache worker.
func (mc *MemoryCache) Close() {
	mc.cancel()
	mc.cleanupTicker.Stop()
	mc.wg.Wait()
}

// Get returns the value of a key, nil when missing or expired.
func (mc *MemoryCache) Get(key string) any {
	value, exists := mc.memoryCache.Load(key)
	if !exists {
		return nil
	}

	item := value.(*MemCacheItem)
	if time.Now().After(item.ttl) {
		mc.memoryCache.Delete(key)
		return nil
	}

	return item.value
}

// Set a given key on the cache.
func (mc *MemoryCache) Set(key string, value any, ttl time.Duration) {
	mc.memoryCache.Store(key, &MemCacheItem{
		value: value,
		ttl:   time.Now().Add(ttl),
	})
}

// Delete drops a key.
func (mc *MemoryCache) Delete(key string) {
	mc.memoryCache.Delete(key)
}
