package course

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is a process-local Cache.
// Entries expire after ttl so writes made by other processes become visible; a zero ttl never expires.
type MemoryCache struct {
	mu        sync.RWMutex
	settings  *Settings
	expiresAt time.Time
	ttl       time.Duration
}

var _ Cache = (*MemoryCache)(nil)

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl}
}

func (c *MemoryCache) Get(_ context.Context) (Settings, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.settings == nil {
		return Settings{}, false, nil
	}
	if c.ttl > 0 && !time.Now().Before(c.expiresAt) {
		return Settings{}, false, nil
	}
	return c.settings.Clone(), true, nil
}

func (c *MemoryCache) Set(_ context.Context, settings Settings) error {
	clone := settings.Clone()
	c.mu.Lock()
	c.settings = &clone
	c.expiresAt = time.Now().Add(c.ttl)
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	c.settings = nil
	c.mu.Unlock()
	return nil
}
