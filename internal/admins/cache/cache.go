// Package cache provides a redis read-through cache for the administrator
// set. IsAdmin sits on the hot path of every inbound bot message, so lookups
// are cached with a short TTL and invalidated on membership changes.
package cache

import (
	"context"
	"time"

	platformredis "docpanel/internal/platform/redis"
)

const keyPrefix = "docpanel:admin:"

// AdminCache caches isAdmin lookups. A nil *AdminCache is a valid no-op cache.
type AdminCache struct {
	client *platformredis.Client
	ttl    time.Duration
}

// New builds an AdminCache, or nil when redis is not configured.
func New(client *platformredis.Client, ttl time.Duration) *AdminCache {
	if client == nil {
		return nil
	}
	return &AdminCache{client: client, ttl: ttl}
}

// Get returns (isAdmin, hit). Cache errors degrade to a miss.
func (c *AdminCache) Get(ctx context.Context, senderID string) (bool, bool) {
	if c == nil {
		return false, false
	}
	val, err := c.client.Get(ctx, keyPrefix+senderID).Result()
	if err != nil {
		return false, false
	}
	return val == "1", true
}

// Set stores an isAdmin result. Errors are dropped; the store stays the
// source of truth.
func (c *AdminCache) Set(ctx context.Context, senderID string, isAdmin bool) {
	if c == nil {
		return
	}
	val := "0"
	if isAdmin {
		val = "1"
	}
	_ = c.client.Set(ctx, keyPrefix+senderID, val, c.ttl).Err()
}

// Invalidate drops the cached entry after a membership change.
func (c *AdminCache) Invalidate(ctx context.Context, senderID string) {
	if c == nil {
		return
	}
	_ = c.client.Del(ctx, keyPrefix+senderID).Err()
}
