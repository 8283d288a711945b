package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"

	"github.com/pasar-labs/xiara/server/internal/agent/model"
	errx "github.com/pasar-labs/xiara/server/internal/core/error"
	logx "github.com/pasar-labs/xiara/server/pkg/logger"
)

// RedisHistoryRepository stores per-user conversation turns in a Redis list
// with a TTL that is refreshed on every write. The list is trimmed to the
// most recent maxTurns user/assistant pairs; maxTurns <= 0 keeps everything.
type RedisHistoryRepository struct {
	rdb      redis.Cmdable
	ttl      time.Duration
	maxTurns int
}

func NewRedisHistoryRepository(rdb redis.Cmdable, ttl time.Duration, maxTurns int) *RedisHistoryRepository {
	return &RedisHistoryRepository{rdb: rdb, ttl: ttl, maxTurns: maxTurns}
}

func (r *RedisHistoryRepository) historyKey(userID string) string {
	return fmt.Sprintf("user:%s:messages", userID)
}

func (r *RedisHistoryRepository) AddMessage(ctx context.Context, userID string, message *schema.Message) error {
	b, err := json.Marshal(message)
	if err != nil {
		logx.Error().Err(err).Str("user_id", userID).Msg("failed to marshal message")
		return fmt.Errorf("marshal message: %w", err)
	}
	key := r.historyKey(userID)

	// append message
	if err := r.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push message to redis")
		return errx.WrapRedis(err)
	}
	// keep only the most recent turns, two messages per turn
	if r.maxTurns > 0 {
		if err := r.rdb.LTrim(ctx, key, int64(-2*r.maxTurns), -1).Err(); err != nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to trim history")
			return errx.WrapRedis(err)
		}
	}
	// extend TTL on touch
	if r.ttl > 0 {
		if ok, err := r.rdb.Expire(ctx, key, r.ttl).Result(); err != nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
			return errx.WrapRedis(err)
		} else if !ok {
			logx.Warn().Str("key", key).Dur("ttl", r.ttl).Msg("failed to set TTL on history key")
		}
	}
	return nil
}

func (r *RedisHistoryRepository) LoadHistory(ctx context.Context, userID string) (*model.ConversationHistory, error) {
	key := r.historyKey(userID)

	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return &model.ConversationHistory{UserID: userID, Messages: []*schema.Message{}}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load conversation history from redis")
		return nil, errx.WrapRedis(err)
	}

	msgs := make([]*schema.Message, 0, len(rows))
	for i, s := range rows {
		var m schema.Message
		if err := json.Unmarshal([]byte(s), &m); err != nil {
			logx.Error().Err(err).Str("user_id", userID).Int("index", i).Msg("failed to unmarshal message")
			return nil, fmt.Errorf("unmarshal message at index %d: %w", i, err)
		}
		msgs = append(msgs, &m)
	}
	return &model.ConversationHistory{UserID: userID, Messages: msgs}, nil
}

func (r *RedisHistoryRepository) ClearHistory(ctx context.Context, userID string) error {
	key := r.historyKey(userID)
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete conversation history from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.HistoryRepository = (*RedisHistoryRepository)(nil)
