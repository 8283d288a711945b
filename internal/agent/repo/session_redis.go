package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pasar-labs/xiara/server/internal/agent/model"
	errx "github.com/pasar-labs/xiara/server/internal/core/error"
	logx "github.com/pasar-labs/xiara/server/pkg/logger"
)

// RedisSessionRepository stores per-user dialogue sessions as JSON with a TTL
// refreshed on every save.
type RedisSessionRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisSessionRepository(rdb redis.Cmdable, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisSessionRepository) sessionKey(userID string) string {
	return fmt.Sprintf("session:%s:state", userID)
}

func (r *RedisSessionRepository) Get(ctx context.Context, userID string) (*model.Session, error) {
	raw, err := r.rdb.Get(ctx, r.sessionKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &model.Session{UserID: userID}, nil
		}
		logx.Error().Err(err).Str("user_id", userID).Msg("failed to load session from redis")
		return nil, errx.WrapRedis(err)
	}

	var session model.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

func (r *RedisSessionRepository) Save(ctx context.Context, session *model.Session) error {
	b, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.rdb.Set(ctx, r.sessionKey(session.UserID), b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("user_id", session.UserID).Msg("failed to save session to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisSessionRepository) Reset(ctx context.Context, userID string) error {
	if err := r.rdb.Del(ctx, r.sessionKey(userID)).Err(); err != nil {
		logx.Error().Err(err).Str("user_id", userID).Msg("failed to delete session from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.SessionRepository = (*RedisSessionRepository)(nil)
