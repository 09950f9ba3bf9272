package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/conversational-intent-router/internal/conversation"
	"github.com/conversational-intent-router/internal/jsonx"
)

// DefaultSessionTTL bounds how long an idle conversation survives in Redis.
const DefaultSessionTTL = 30 * time.Minute

// RedisStore persists conversation state in Redis so conversations survive
// restarts and can be served by any instance.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStore creates a Redis-backed store. A non-positive ttl falls back
// to DefaultSessionTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &RedisStore{client: client, ttl: ttl, logger: logger}
}

func sessionKey(id string) string {
	return fmt.Sprintf("conversation:%s", id)
}

// Get loads and unmarshals the state for id.
func (s *RedisStore) Get(ctx context.Context, id string) (*conversation.State, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load conversation %s: %w", id, err)
	}

	var st conversation.State
	if err := jsonx.UnmarshalFromString(data, &st); err != nil {
		return nil, fmt.Errorf("decode conversation %s: %w", id, err)
	}
	return &st, nil
}

// Put marshals and stores the state for id, refreshing its TTL.
func (s *RedisStore) Put(ctx context.Context, id string, st *conversation.State) error {
	data, err := jsonx.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode conversation %s: %w", id, err)
	}
	if err := s.client.Set(ctx, sessionKey(id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("store conversation %s: %w", id, err)
	}
	return nil
}

// Delete removes the state for id.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("delete conversation %s: %w", id, err)
	}
	return nil
}
