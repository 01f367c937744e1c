package cache

import (
	"context"

	"github.com/salesorder/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewStore returns a Redis store when Redis is enabled and reachable, and an
// in-memory store otherwise. An unreachable Redis is logged, not fatal: the
// catalog cache only saves database reads.
func NewStore(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) Store {
	if !cfg.Enabled {
		logger.Info("redis disabled, using in-memory catalog cache")
		return NewMemoryStore()
	}

	store, err := NewRedisStore(ctx, cfg)
	if err != nil {
		logger.Warn("redis unavailable, falling back to in-memory catalog cache",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		return NewMemoryStore()
	}

	logger.Info("using redis catalog cache", zap.String("addr", cfg.Addr()))
	return store
}
