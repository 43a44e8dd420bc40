package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenCache remembers which user a token key belongs to.
type TokenCache interface {
	Get(ctx context.Context, key string) (userID uint, found bool, err error)
	Set(ctx context.Context, key string, userID uint) error
	Delete(ctx context.Context, keys ...string) error
}

const tokenCachePrefix = "auth:token:"

type RedisTokenCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisTokenCache(rdb *redis.Client, ttl time.Duration) *RedisTokenCache {
	return &RedisTokenCache{rdb: rdb, ttl: ttl}
}

func (c *RedisTokenCache) Get(ctx context.Context, key string) (uint, bool, error) {
	val, err := c.rdb.Get(ctx, cacheKey(key)).Result()
	if err == redis.Nil {
		return 0, false, nil
	} else if err != nil {
		return 0, false, err
	}

	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return uint(id), true, nil
}

func (c *RedisTokenCache) Set(ctx context.Context, key string, userID uint) error {
	return c.rdb.Set(ctx, cacheKey(key), strconv.FormatUint(uint64(userID), 10), c.ttl).Err()
}

func (c *RedisTokenCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	hashed := make([]string, len(keys))
	for i, k := range keys {
		hashed[i] = cacheKey(k)
	}
	return c.rdb.Del(ctx, hashed...).Err()
}

// Redis keys hold a digest, never the bearer token itself.
func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return tokenCachePrefix + hex.EncodeToString(sum[:])
}

// NopTokenCache is used when no redis is configured.
type NopTokenCache struct{}

func (NopTokenCache) Get(context.Context, string) (uint, bool, error) { return 0, false, nil }
func (NopTokenCache) Set(context.Context, string, uint) error         { return nil }
func (NopTokenCache) Delete(context.Context, ...string) error         { return nil }

var (
	_ TokenCache = (*RedisTokenCache)(nil)
	_ TokenCache = NopTokenCache{}
)
