package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemCacheSetGet(t *testing.T) {
	mc := NewMemCache(time.Minute)
	defer mc.Close()

	mc.Set("rankings", []string{"a", "b"}, time.Minute)

	assert.Equal(t, []string{"a", "b"}, mc.Get("rankings"))
	assert.Nil(t, mc.Get("missing"))
}

func TestMemCacheExpiredKey(t *testing.T) {
	mc := NewMemCache(time.Minute)
	defer mc.Close()

	mc.Set("rankings", 1, -time.Second)

	assert.Nil(t, mc.Get("rankings"))
}

func TestMemCacheDelete(t *testing.T) {
	mc := NewMemCache(time.Minute)
	defer mc.Close()

	mc.Set("rankings", 1, time.Minute)
	mc.Delete("rankings")
	mc.Delete("never-set")

	assert.Nil(t, mc.Get("rankings"))
}

func TestMemCacheCleanupWorker(t *testing.T) {
	mc := NewMemCache(10 * time.Millisecond)
	defer mc.Close()

	mc.Set("short", 1, time.Millisecond)

	assert.Eventually(t, func() bool {
		_, exists := mc.memoryCache.Load("short")
		return !exists
	}, time.Second, 10*time.Millisecond)
}
