package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pasar-labs/xiara/server/internal/agent/model"
	errx "github.com/pasar-labs/xiara/server/internal/core/error"
	logx "github.com/pasar-labs/xiara/server/pkg/logger"
)

// RedisProfileRepository stores user profiles as JSON without expiry;
// preferences are long-lived.
type RedisProfileRepository struct {
	rdb redis.Cmdable
}

func NewRedisProfileRepository(rdb redis.Cmdable) *RedisProfileRepository {
	return &RedisProfileRepository{rdb: rdb}
}

func (r *RedisProfileRepository) profileKey(userID string) string {
	return fmt.Sprintf("profile:%s", userID)
}

func (r *RedisProfileRepository) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	raw, err := r.rdb.Get(ctx, r.profileKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		logx.Error().Err(err).Str("user_id", userID).Msg("failed to load profile from redis")
		return nil, errx.WrapRedis(err)
	}

	var profile model.UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return &profile, nil
}

func (r *RedisProfileRepository) Save(ctx context.Context, profile *model.UserProfile) error {
	b, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := r.rdb.Set(ctx, r.profileKey(profile.UserID), b, 0).Err(); err != nil {
		logx.Error().Err(err).Str("user_id", profile.UserID).Msg("failed to save profile to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.ProfileRepository = (*RedisProfileRepository)(nil)
