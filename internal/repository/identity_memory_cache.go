package repository

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/zy091/iwishneed-sub001/internal/model"
)

type memoryEntry struct {
	identity  model.CallerIdentity
	expiresAt time.Time
}

// IdentityMemoryCache : LRU в памяти процесса.
// Общий TTL задаёт верхнюю границу, срок отдельной записи проверяется при чтении.
type IdentityMemoryCache struct {
	lru *expirable.LRU[string, memoryEntry]
	now func() time.Time
}

func NewIdentityMemoryCache(size int, maxTTL time.Duration) *IdentityMemoryCache {
	return &IdentityMemoryCache{
		lru: expirable.NewLRU[string, memoryEntry](size, nil, maxTTL),
		now: time.Now,
	}
}

func (c *IdentityMemoryCache) Set(_ context.Context, key string, identity *model.CallerIdentity, ttl time.Duration) error {
	if ttl <= 0 || identity == nil {
		return nil
	}
	c.lru.Add(key, memoryEntry{identity: *identity, expiresAt: c.now().Add(ttl)})
	return nil
}

func (c *IdentityMemoryCache) Get(_ context.Context, key string) (*model.CallerIdentity, error) {
	entry, ok := c.lru.Get(key)
	if !ok {
		return nil, nil
	}
	if !c.now().Before(entry.expiresAt) {
		c.lru.Remove(key)
		return nil, nil
	}

	identity := entry.identity
	return &identity, nil
}
