package cache

import (
	"fmt"

	"github.com/handwerkos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// IdempotencyBackend selects the idempotency store implementation
type IdempotencyBackend string

const (
	BackendMemory IdempotencyBackend = "memory"
	BackendRedis  IdempotencyBackend = "redis"
)

// NewIdempotencyStore builds the store for the configured backend. An
// unknown backend falls back to the in-memory store with a warning so a
// misconfigured deployment still dedupes within its own process.
func NewIdempotencyStore(backend IdempotencyBackend, redisCfg RedisConfig, logger *zap.Logger) (shared.IdempotencyStore, error) {
	switch backend {
	case BackendRedis:
		store, err := NewRedisIdempotencyStore(redisCfg)
		if err != nil {
			return nil, fmt.Errorf("redis idempotency store: %w", err)
		}
		return store, nil
	case BackendMemory, "":
		return NewInMemoryIdempotencyStore(), nil
	default:
		logger.Warn("unknown idempotency backend, using in-memory store",
			zap.String("backend", string(backend)),
		)
		return NewInMemoryIdempotencyStore(), nil
	}
}
