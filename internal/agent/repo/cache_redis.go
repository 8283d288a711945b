package repo

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pasar-labs/xiara/server/internal/agent/model"
	errx "github.com/pasar-labs/xiara/server/internal/core/error"
	logx "github.com/pasar-labs/xiara/server/pkg/logger"
)

// RedisResponseCache memoizes assembled answers in Redis. Lookup is by the
// exact raw query text (hashed only to form a safe key); Redis expiry
// implements the TTL so expired entries read as misses.
type RedisResponseCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisResponseCache(rdb redis.Cmdable, ttl time.Duration) *RedisResponseCache {
	return &RedisResponseCache{rdb: rdb, ttl: ttl}
}

func (c *RedisResponseCache) cacheKey(rawQuery string) string {
	sum := sha256.Sum256([]byte(rawQuery))
	return fmt.Sprintf("cache:response:%s", hex.EncodeToString(sum[:]))
}

func (c *RedisResponseCache) Get(ctx context.Context, rawQuery string) (string, bool, error) {
	answer, err := c.rdb.Get(ctx, c.cacheKey(rawQuery)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		logx.Warn().Err(err).Msg("response cache read failed, treating as miss")
		return "", false, errx.WrapRedis(err)
	}
	return answer, true, nil
}

func (c *RedisResponseCache) Set(ctx context.Context, rawQuery string, answer string) error {
	if err := c.rdb.Set(ctx, c.cacheKey(rawQuery), answer, c.ttl).Err(); err != nil {
		logx.Warn().Err(err).Msg("response cache write failed, skipping store")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.ResponseCache = (*RedisResponseCache)(nil)
