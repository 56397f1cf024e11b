package repository

import (
	"context"
	"sync"
	"time"
)

// MemorySettingsCache is the in-process fallback used when Redis is
// unavailable. Entries expire after the TTL like the Redis cache.
type MemorySettingsCache struct {
	mu        sync.RWMutex
	settings  map[string]string
	expiresAt time.Time
	ttl       time.Duration
}

func NewMemorySettingsCache(ttl time.Duration) *MemorySettingsCache {
	return &MemorySettingsCache{
		ttl: ttl,
	}
}

func (r *MemorySettingsCache) Get(ctx context.Context) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.settings == nil || time.Now().After(r.expiresAt) {
		return nil, nil
	}
	out := make(map[string]string, len(r.settings))
	for k, v := range r.settings {
		out[k] = v
	}
	return out, nil
}

func (r *MemorySettingsCache) Set(ctx context.Context, settings map[string]string) error {
	copied := make(map[string]string, len(settings))
	for k, v := range settings {
		copied[k] = v
	}
	r.mu.Lock()
	r.settings = copied
	r.expiresAt = time.Now().Add(r.ttl)
	r.mu.Unlock()
	return nil
}

func (r *MemorySettingsCache) Clear(ctx context.Context) error {
	r.mu.Lock()
	r.settings = nil
	r.mu.Unlock()
	return nil
}
