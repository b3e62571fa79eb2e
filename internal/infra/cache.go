package infra

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a JSON cache-aside helper over Redis. Every call goes through a
// circuit breaker; callers treat any error as a miss and read the database.
type Cache struct {
	rdb     redis.UniversalClient
	breaker *Breaker
	ttl     time.Duration
}

func NewCache(rdb redis.UniversalClient, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, breaker: NewBreaker(DefaultBreakerConfig()), ttl: ttl}
}

// Get decodes the cached value of key into dst.
func (c *Cache) Get(ctx context.Context, key string, dst interface{}) error {
	if c == nil || c.rdb == nil {
		return ErrCacheMiss
	}
	var raw []byte
	err := c.breaker.Execute(func() error {
		b, err := c.rdb.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			// a miss is a healthy answer
			return nil
		}
		raw = b
		return err
	})
	if err != nil {
		return err
	}
	if raw == nil {
		return ErrCacheMiss
	}
	return json.Unmarshal(raw, dst)
}

// Set stores v under key with the cache TTL.
func (c *Cache) Set(ctx context.Context, key string, v interface{}) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.breaker.Execute(func() error {
		return c.rdb.Set(ctx, key, b, c.ttl).Err()
	})
}

// Delete drops keys; missing keys are fine.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return nil
	}
	return c.breaker.Execute(func() error {
		return c.rdb.Del(ctx, keys...).Err()
	})
}

// BreakerState is reported by the health endpoint.
func (c *Cache) BreakerState() BreakerState {
	if c == nil {
		return BreakerClosed
	}
	return c.breaker.State()
}
