package cache

import (
	"context"
	"testing"

	"github.com/lumiso/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLeadSummaryCache(t *testing.T) {
	ctx := context.Background()
	unreachable := config.RedisConfig{Host: "127.0.0.1", Port: 1}

	t.Run("in-memory when redis is not configured", func(t *testing.T) {
		c, err := NewLeadSummaryCache(ctx, config.RedisConfig{})
		require.NoError(t, err)
		defer c.Close()

		assert.IsType(t, &InMemoryLeadSummaryCache{}, c)
	})

	t.Run("falls back when redis is unreachable", func(t *testing.T) {
		core, recorded := observer.New(zapcore.WarnLevel)

		c, err := NewLeadSummaryCache(ctx, unreachable, WithLogger(zap.New(core)))
		require.NoError(t, err)
		defer c.Close()

		assert.IsType(t, &InMemoryLeadSummaryCache{}, c)
		assert.Equal(t, 1, recorded.Len())
	})

	t.Run("fails when fallback is disabled", func(t *testing.T) {
		c, err := NewLeadSummaryCache(ctx, unreachable, WithInMemoryFallback(false))

		assert.Error(t, err)
		assert.Nil(t, c)
	})
}
