package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lumiso/backend/internal/domain/lead"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultKeyPrefix namespaces the lead summary keys
const DefaultKeyPrefix = "lumiso:lead_summary:"

// RedisLeadSummaryCache implements lead.SummaryCache using Redis with JSON values
type RedisLeadSummaryCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	keyPrefix  string
	logger     *zap.Logger
}

// RedisLeadSummaryCacheOption is a functional option for configuring the cache
type RedisLeadSummaryCacheOption func(*RedisLeadSummaryCache)

// WithKeyPrefix overrides the key prefix
func WithKeyPrefix(prefix string) RedisLeadSummaryCacheOption {
	return func(c *RedisLeadSummaryCache) {
		if prefix != "" {
			c.keyPrefix = prefix
		}
	}
}

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisLeadSummaryCacheOption {
	return func(c *RedisLeadSummaryCache) {
		c.logger = logger
	}
}

// NewRedisLeadSummaryCache connects to Redis and verifies the connection
func NewRedisLeadSummaryCache(ctx context.Context, opts *redis.Options, cacheOpts ...RedisLeadSummaryCacheOption) (*RedisLeadSummaryCache, error) {
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	c := NewRedisLeadSummaryCacheWithClient(client, cacheOpts...)
	c.ownsClient = true
	return c, nil
}

// NewRedisLeadSummaryCacheWithClient creates a cache over an existing client.
// The caller keeps ownership of the client.
func NewRedisLeadSummaryCacheWithClient(client *redis.Client, opts ...RedisLeadSummaryCacheOption) *RedisLeadSummaryCache {
	c := &RedisLeadSummaryCache{
		client:    client,
		keyPrefix: DefaultKeyPrefix,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisLeadSummaryCache) key(tenantID uuid.UUID) string {
	return c.keyPrefix + tenantID.String()
}

// Get returns the cached summary, or nil on a miss
func (c *RedisLeadSummaryCache) Get(ctx context.Context, tenantID uuid.UUID) (*lead.Summary, error) {
	data, err := c.client.Get(ctx, c.key(tenantID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read lead summary: %w", err)
	}

	var summary lead.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		// A corrupt entry is treated as a miss and dropped
		c.logger.Warn("Discarding unreadable lead summary",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
		_ = c.client.Del(ctx, c.key(tenantID)).Err()
		return nil, nil
	}
	return &summary, nil
}

// Set stores the summary with a TTL
func (c *RedisLeadSummaryCache) Set(ctx context.Context, tenantID uuid.UUID, summary lead.Summary, ttl time.Duration) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode lead summary: %w", err)
	}
	if err := c.client.Set(ctx, c.key(tenantID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write lead summary: %w", err)
	}
	return nil
}

// Invalidate drops the tenant's cached summary
func (c *RedisLeadSummaryCache) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(tenantID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate lead summary: %w", err)
	}
	return nil
}

// Close closes the Redis client if the cache created it
func (c *RedisLeadSummaryCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// Ping checks the Redis connection
func (c *RedisLeadSummaryCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Ensure RedisLeadSummaryCache implements lead.SummaryCache
var _ lead.SummaryCache = (*RedisLeadSummaryCache)(nil)
