package ratelimit_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noteshare/internal/adapters/ratelimit"
	"noteshare/internal/config"
	"noteshare/pkg/logger"
)

func testContext(t *testing.T) context.Context {
	t.Helper()

	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func newTestLimiter(t *testing.T, window time.Duration, maxRequests int) (*ratelimit.RedisLimiter, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)

	port, err := strconv.Atoi(server.Port())
	require.NoError(t, err)

	limiter, err := ratelimit.New(testContext(t), &config.RedisConfig{
		Host:     server.Host(),
		Port:     port,
		PoolSize: 1,
		Timeout:  time.Second,
	}, &config.RateLimitConfig{
		Window:      window,
		MaxRequests: maxRequests,
	})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, limiter.Close()) })

	return limiter, server
}

func TestRedisLimiter_Allow(t *testing.T) {
	ctx := testContext(t)

	t.Run("Запросы в пределах лимита проходят", func(t *testing.T) {
		limiter, _ := newTestLimiter(t, time.Minute, 3)

		for i := 0; i < 3; i++ {
			allowed, err := limiter.Allow(ctx, "10.0.0.1")
			require.NoError(t, err)
			assert.True(t, allowed)
		}
	})

	t.Run("Запрос сверх лимита блокируется", func(t *testing.T) {
		limiter, _ := newTestLimiter(t, time.Minute, 2)

		for i := 0; i < 2; i++ {
			allowed, err := limiter.Allow(ctx, "10.0.0.1")
			require.NoError(t, err)
			require.True(t, allowed)
		}

		allowed, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("Лимиты клиентов независимы", func(t *testing.T) {
		limiter, _ := newTestLimiter(t, time.Minute, 1)

		allowed, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		require.True(t, allowed)

		allowed, err = limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		require.False(t, allowed)

		allowed, err = limiter.Allow(ctx, "10.0.0.2")
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("Истекшее окно открывается заново", func(t *testing.T) {
		limiter, server := newTestLimiter(t, time.Minute, 1)

		allowed, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		require.True(t, allowed)

		allowed, err = limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		require.False(t, allowed)

		server.FastForward(time.Minute + time.Second)

		allowed, err = limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("Недоступный Redis возвращает ошибку", func(t *testing.T) {
		limiter, server := newTestLimiter(t, time.Minute, 1)

		server.Close()

		allowed, err := limiter.Allow(ctx, "10.0.0.1")
		assert.False(t, allowed)
		require.Error(t, err)
	})
}
