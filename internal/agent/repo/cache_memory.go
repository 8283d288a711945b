package repo

import (
	"context"
	"sync"
	"time"

	"github.com/pasar-labs/xiara/server/internal/agent/model"
)

type cacheEntry struct {
	answer string
	expiry time.Time
}

// MemoryResponseCache memoizes assembled answers in process memory. A read
// after expiry is a miss; expired entries are dropped lazily on read.
type MemoryResponseCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryResponseCache(ttl time.Duration) *MemoryResponseCache {
	return &MemoryResponseCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *MemoryResponseCache) Get(_ context.Context, rawQuery string) (string, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[rawQuery]
	c.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if c.now().After(entry.expiry) {
		c.mu.Lock()
		delete(c.entries, rawQuery)
		c.mu.Unlock()
		return "", false, nil
	}
	return entry.answer, true, nil
}

func (c *MemoryResponseCache) Set(_ context.Context, rawQuery string, answer string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[rawQuery] = cacheEntry{answer: answer, expiry: c.now().Add(c.ttl)}
	return nil
}

var _ model.ResponseCache = (*MemoryResponseCache)(nil)
