package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"

	"github.com/AngelitoMA11/DataProject-3/internal/agent/model"
	errx "github.com/AngelitoMA11/DataProject-3/internal/core/error"
	logx "github.com/AngelitoMA11/DataProject-3/pkg/logger"
)

// RedisTripRepository keeps the message log as a JSON list and the trip
// state as a JSON value, both keyed by session id with a TTL refreshed on
// every touch.
type RedisTripRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisTripRepository(rdb redis.Cmdable, ttl time.Duration) *RedisTripRepository {
	return &RedisTripRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisTripRepository) messagesKey(sessionID string) string {
	return fmt.Sprintf("trip:%s:messages", sessionID)
}

func (r *RedisTripRepository) stateKey(sessionID string) string {
	return fmt.Sprintf("trip:%s:state", sessionID)
}

func (r *RedisTripRepository) AddMessage(ctx context.Context, sessionID string, message *schema.Message) error {
	b, err := json.Marshal(message)
	if err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to marshal message")
		return fmt.Errorf("marshal message: %w", err)
	}
	key := r.messagesKey(sessionID)

	if err := r.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push message to redis")
		return errx.WrapRedis(err)
	}
	return r.touch(ctx, key)
}

func (r *RedisTripRepository) LoadHistory(ctx context.Context, sessionID string) (*model.ConversationHistory, error) {
	key := r.messagesKey(sessionID)

	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &model.ConversationHistory{SessionID: sessionID, Messages: []*schema.Message{}}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load history from redis")
		return nil, errx.WrapRedis(err)
	}

	msgs := make([]*schema.Message, 0, len(rows))
	for i, s := range rows {
		var m schema.Message
		if err := json.Unmarshal([]byte(s), &m); err != nil {
			logx.Error().Err(err).Str("session_id", sessionID).Int("index", i).Msg("failed to unmarshal message")
			return nil, fmt.Errorf("unmarshal message at index %d: %w", i, err)
		}
		msgs = append(msgs, &m)
	}
	return &model.ConversationHistory{SessionID: sessionID, Messages: msgs}, nil
}

func (r *RedisTripRepository) LoadState(ctx context.Context, sessionID string) (*model.TripState, error) {
	key := r.stateKey(sessionID)

	raw, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load trip state from redis")
		return nil, errx.WrapRedis(err)
	}

	var state model.TripState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to unmarshal trip state")
		return nil, fmt.Errorf("unmarshal trip state: %w", err)
	}
	return &state, nil
}

func (r *RedisTripRepository) SaveState(ctx context.Context, state *model.TripState) error {
	b, err := json.Marshal(state)
	if err != nil {
		logx.Error().Err(err).Str("session_id", state.SessionID).Msg("failed to marshal trip state")
		return fmt.Errorf("marshal trip state: %w", err)
	}
	key := r.stateKey(state.SessionID)

	if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to save trip state to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisTripRepository) ClearSession(ctx context.Context, sessionID string) error {
	if err := r.rdb.Del(ctx, r.messagesKey(sessionID), r.stateKey(sessionID)).Err(); err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to clear session from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisTripRepository) MessageCount(ctx context.Context, sessionID string) (int, error) {
	key := r.messagesKey(sessionID)
	n, err := r.rdb.LLen(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to get message count from redis")
		return 0, errx.WrapRedis(err)
	}
	return int(n), nil
}

// touch extends the TTL on a session key.
func (r *RedisTripRepository) touch(ctx context.Context, key string) error {
	if r.ttl <= 0 {
		return nil
	}
	ok, err := r.rdb.Expire(ctx, key, r.ttl).Result()
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
		return errx.WrapRedis(err)
	}
	if !ok {
		logx.Warn().Str("key", key).Dur("ttl", r.ttl).Msg("failed to refresh TTL on session key")
	}
	return nil
}

var _ model.TripRepository = (*RedisTripRepository)(nil)
