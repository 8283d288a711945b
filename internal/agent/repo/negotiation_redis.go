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

// RedisNegotiationRepository stores active negotiations as JSON. Entries live
// until an explicit reset; there is no TTL because the negotiation ladder must
// not silently restart mid-dialogue.
type RedisNegotiationRepository struct {
	rdb redis.Cmdable
}

func NewRedisNegotiationRepository(rdb redis.Cmdable) *RedisNegotiationRepository {
	return &RedisNegotiationRepository{rdb: rdb}
}

func (r *RedisNegotiationRepository) negotiationKey(userID string) string {
	return fmt.Sprintf("negotiation:%s:state", userID)
}

func (r *RedisNegotiationRepository) Get(ctx context.Context, userID string) (*model.NegotiationState, error) {
	raw, err := r.rdb.Get(ctx, r.negotiationKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		logx.Error().Err(err).Str("user_id", userID).Msg("failed to load negotiation state from redis")
		return nil, errx.WrapRedis(err)
	}

	var state model.NegotiationState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("unmarshal negotiation state: %w", err)
	}
	return &state, nil
}

func (r *RedisNegotiationRepository) Save(ctx context.Context, userID string, state *model.NegotiationState) error {
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal negotiation state: %w", err)
	}
	if err := r.rdb.Set(ctx, r.negotiationKey(userID), b, 0).Err(); err != nil {
		logx.Error().Err(err).Str("user_id", userID).Msg("failed to save negotiation state to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisNegotiationRepository) Delete(ctx context.Context, userID string) error {
	if err := r.rdb.Del(ctx, r.negotiationKey(userID)).Err(); err != nil {
		logx.Error().Err(err).Str("user_id", userID).Msg("failed to delete negotiation state from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.NegotiationRepository = (*RedisNegotiationRepository)(nil)
