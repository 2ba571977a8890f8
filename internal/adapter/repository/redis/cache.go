package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache implements usecase.BalanceCache using Redis. Mutations only
// ever invalidate; the balance read path fills entries with a short
// TTL. A cached balance is advisory and the database row stays
// authoritative.
type Cache struct {
	client *redis.Client
	prefix string
}

// NewCache creates a new Cache.
func NewCache(client *redis.Client) *Cache {
	return &Cache{
		client: client,
		prefix: "balance:",
	}
}

// Invalidate drops the cached balance for an account.
func (c *Cache) Invalidate(ctx context.Context, accountID string) error {
	return c.client.Del(ctx, c.prefix+accountID).Err()
}

// Get retrieves a cached balance. Returns redis.Nil on a miss.
func (c *Cache) Get(ctx context.Context, accountID string) (string, error) {
	return c.client.Get(ctx, c.prefix+accountID).Result()
}

// Set fills the cache after an authoritative read.
func (c *Cache) Set(ctx context.Context, accountID, balance string, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+accountID, balance, ttl).Err()
}
