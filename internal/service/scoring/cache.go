package scoring

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"

	"nmjl-service/internal/card"
	appErr "nmjl-service/pkg/errors"
)

const cachePrefix = "nmjl:suggest:"

// Cache stores serialized suggestions. Get returns appErr.ErrCacheMiss when
// the key is absent.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, appErr.ErrCacheMiss
	}
	return data, err
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// cacheKey ties a suggestion to both the card version and the hand.
func cacheKey(version string, observed card.Counts) string {
	sum := xxhash.Sum64String(version + "|" + observed.Canonical())
	return cachePrefix + strconv.FormatUint(sum, 16)
}
