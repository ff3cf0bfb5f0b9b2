package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const ingestKeyPrefix = "ingest_key:"

// CachedKeys wraps a Store and caches ingest-key lookups in Redis. Ingest keys
// are immutable once minted, so cached entries never go stale; the TTL only
// bounds memory. All other Store methods pass through.
type CachedKeys struct {
	Store
	client *redis.Client
	ttl    time.Duration
}

// NewCachedKeys pings Redis and returns the caching wrapper.
func NewCachedKeys(ctx context.Context, inner Store, addr, password string, db int, ttl time.Duration) (*CachedKeys, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed (%s): %w", addr, err)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedKeys{Store: inner, client: client, ttl: ttl}, nil
}

func (c *CachedKeys) UserByIngestKey(ctx context.Context, key string) (string, error) {
	// A cache miss or any Redis trouble falls through to the store; cache
	// trouble is never an auth failure.
	cached, err := c.client.Get(ctx, ingestKeyPrefix+key).Result()
	if err == nil && cached != "" {
		return cached, nil
	}
	id, err := c.Store.UserByIngestKey(ctx, key)
	if err != nil {
		return "", err
	}
	_ = c.client.Set(ctx, ingestKeyPrefix+key, id, c.ttl).Err()
	return id, nil
}

func (c *CachedKeys) SaveIngestKey(ctx context.Context, key, userID string) error {
	if err := c.Store.SaveIngestKey(ctx, key, userID); err != nil {
		return err
	}
	_ = c.client.Set(ctx, ingestKeyPrefix+key, userID, c.ttl).Err()
	return nil
}
