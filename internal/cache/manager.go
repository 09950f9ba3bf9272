// Package cache provides an in-process result cache backed by Ristretto.
// Classification is pure and deterministic, so exact-match caching of ranked
// candidates is sound: the same message under the same catalog and profile
// always yields the same ranking.
package cache

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"go.uber.org/zap"
)

// Config holds cache sizing.
type Config struct {
	MaxCost     int64         // maximum cache size in cost units
	NumCounters int64         // counters for admission frequency estimation
	BufferItems int64         // keys per Get buffer
	DefaultTTL  time.Duration // time-to-live for entries
}

// DefaultConfig returns sizing suited to a small, fixed catalog workload.
func DefaultConfig() Config {
	return Config{
		MaxCost:     16 * 1024 * 1024,
		NumCounters: 1e6,
		BufferItems: 64,
		DefaultTTL:  10 * time.Minute,
	}
}

// Manager is a typed wrapper over a Ristretto cache with hit/miss counters.
type Manager[V any] struct {
	cache  *ristretto.Cache[string, V]
	config Config
	logger *zap.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// NewManager creates a cache manager.
func NewManager[V any](cfg Config, logger *zap.Logger) (*Manager[V], error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, V]{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
	})
	if err != nil {
		return nil, fmt.Errorf("create ristretto cache: %w", err)
	}

	logger.Info("Result cache initialized",
		zap.Int64("max_cost", cfg.MaxCost),
		zap.Duration("default_ttl", cfg.DefaultTTL))

	return &Manager[V]{cache: c, config: cfg, logger: logger}, nil
}

// Get retrieves a cached value.
func (m *Manager[V]) Get(key string) (V, bool) {
	val, found := m.cache.Get(key)
	if found {
		m.hits.Add(1)
	} else {
		m.misses.Add(1)
	}
	return val, found
}

// Set stores a value with the configured TTL.
func (m *Manager[V]) Set(key string, value V, cost int64) {
	m.cache.SetWithTTL(key, value, cost, m.config.DefaultTTL)
}

// Wait blocks until buffered writes are applied. Used by tests.
func (m *Manager[V]) Wait() {
	m.cache.Wait()
}

// Stats returns hit/miss counts.
func (m *Manager[V]) Stats() (hits, misses int64) {
	return m.hits.Load(), m.misses.Load()
}

// Close releases the underlying cache.
func (m *Manager[V]) Close() {
	m.cache.Close()
}
