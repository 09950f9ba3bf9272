package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestManager(t *testing.T) *Manager[string] {
	t.Helper()
	m, err := NewManager[string](DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func TestManagerSetGet(t *testing.T) {
	m := newTestManager(t)

	m.Set("k1", "v1", 1)
	m.Wait()

	got, ok := m.Get("k1")
	require.True(t, ok)
	assert.Equal(t, "v1", got)
}

func TestManagerMiss(t *testing.T) {
	m := newTestManager(t)

	_, ok := m.Get("never-set")
	assert.False(t, ok)
}

func TestManagerStats(t *testing.T) {
	m := newTestManager(t)

	m.Set("k1", "v1", 1)
	m.Wait()

	m.Get("k1")
	m.Get("k1")
	m.Get("missing")

	hits, misses := m.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
}

func TestManagerTTLExpiry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultTTL = 50 * time.Millisecond
	m, err := NewManager[string](cfg, zap.NewNop())
	require.NoError(t, err)
	defer m.Close()

	m.Set("k1", "v1", 1)
	m.Wait()

	_, ok := m.Get("k1")
	require.True(t, ok)

	time.Sleep(100 * time.Millisecond)
	_, ok = m.Get("k1")
	assert.False(t, ok)
}

func TestManagerTypedValues(t *testing.T) {
	type ranked struct {
		ID    string
		Score float64
	}

	m, err := NewManager[[]ranked](DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	defer m.Close()

	want := []ranked{{ID: "send_money", Score: 0.42}, {ID: "pay_bill", Score: 0.17}}
	m.Set("classify:json:primary:msg", want, int64(len("msg")))
	m.Wait()

	got, ok := m.Get("classify:json:primary:msg")
	require.True(t, ok)
	assert.Equal(t, want, got)
}
