package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/conversational-intent-router/internal/conversation"
)

// newTestRedisStore connects to the Redis named by TEST_REDIS_ADDR, skipping
// the test when the variable is unset.
func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, client.Ping(context.Background()).Err())
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, time.Minute, zap.NewNop())
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t)

	id := "test-" + time.Now().Format("20060102150405.000")
	t.Cleanup(func() { _ = store.Delete(ctx, id) })

	_, err := store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	st := conversation.NewState(conversation.ModeTOON)
	st.Phase = conversation.PhaseAwaitingClarification
	st.LastUserMessage = "I need money"
	st.AmbiguityReason = conversation.ReasonLowConfidence
	require.NoError(t, store.Put(ctx, id, st))

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, conversation.PhaseAwaitingClarification, got.Phase)
	assert.Equal(t, conversation.ModeTOON, got.Mode)
	assert.Equal(t, "I need money", got.LastUserMessage)
	assert.Equal(t, conversation.ReasonLowConfidence, got.AmbiguityReason)

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreTTLFallback(t *testing.T) {
	store := NewRedisStore(redis.NewClient(&redis.Options{}), 0, zap.NewNop())
	assert.Equal(t, DefaultSessionTTL, store.ttl)
}
