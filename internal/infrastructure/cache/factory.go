package cache

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/lumiso/backend/internal/domain/lead"
	"github.com/lumiso/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LeadSummaryCache is a lead.SummaryCache that owns resources to release on shutdown
type LeadSummaryCache interface {
	lead.SummaryCache
	io.Closer
}

// FactoryOption is a functional option for NewLeadSummaryCache
type FactoryOption func(*factory)

type factory struct {
	logger                *zap.Logger
	allowInMemoryFallback bool
	cleanupInterval       time.Duration
}

// WithLogger sets the logger for the factory and the created cache
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to the
// in-memory cache. Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewLeadSummaryCache picks the Redis cache when Redis is configured and
// reachable, otherwise the in-memory cache. An empty Redis host means Redis is disabled.
func NewLeadSummaryCache(ctx context.Context, cfg config.RedisConfig, opts ...FactoryOption) (LeadSummaryCache, error) {
	f := &factory{
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
		cleanupInterval:       time.Minute,
	}
	for _, opt := range opts {
		opt(f)
	}

	if cfg.Host == "" {
		f.logger.Info("Redis not configured, using in-memory lead summary cache")
		return NewInMemoryLeadSummaryCache(f.cleanupInterval), nil
	}

	c, err := NewRedisLeadSummaryCache(ctx, &redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	}, WithCacheLogger(f.logger))
	if err == nil {
		f.logger.Info("Using Redis lead summary cache", zap.String("addr", cfg.Addr()))
		return c, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for lead summary cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory lead summary cache. "+
		"Summaries are not shared between instances.",
		zap.Error(err),
	)
	return NewInMemoryLeadSummaryCache(f.cleanupInterval), nil
}
