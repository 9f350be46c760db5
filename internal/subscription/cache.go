package subscription

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// StatusCache keeps recently computed statuses keyed by user id
type StatusCache struct {
	lru *expirable.LRU[string, Status]
}

// NewStatusCache creates a cache with the given capacity and TTL
func NewStatusCache(size int, ttl time.Duration) *StatusCache {
	return &StatusCache{lru: expirable.NewLRU[string, Status](size, nil, ttl)}
}

// Get returns a cached status if present and not expired
func (c *StatusCache) Get(userID string) (Status, bool) {
	return c.lru.Get(userID)
}

// Set stores a status
func (c *StatusCache) Set(userID string, st Status) {
	c.lru.Add(userID, st)
}

// Invalidate drops one user
func (c *StatusCache) Invalidate(userID string) {
	c.lru.Remove(userID)
}

// InvalidateAll clears the cache
func (c *StatusCache) InvalidateAll() {
	c.lru.Purge()
}

// Size returns the number of cached entries
func (c *StatusCache) Size() int {
	return c.lru.Len()
}
