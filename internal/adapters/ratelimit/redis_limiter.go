// Package ratelimit содержит ограничитель частоты запросов на базе Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"noteshare/internal/config"
	"noteshare/internal/ports/services"
	"noteshare/pkg/logger"
)

// Константы для логирования.
const (
	keyPrefix = "ratelimit:"

	ErrorFailedToConnect   = "failed to connect to redis"
	ErrorFailedToIncrement = "failed to increment rate limit counter"
	ErrorFailedToExpire    = "failed to set rate limit window expiry"
	ErrorFailedToClose     = "failed to close redis connection"
)

// RedisLimiter реализует services.RateLimiter по схеме фиксированного окна:
// счетчик на ключ с TTL размером в окно.
type RedisLimiter struct {
	client      *redis.Client
	window      time.Duration
	maxRequests int
}

// New создает новый ограничитель, проверяя соединение с Redis.
func New(ctx context.Context, redisCfg *config.RedisConfig, limitCfg *config.RateLimitConfig) (*RedisLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         redisCfg.GetAddress(),
		Password:     redisCfg.Password,
		DB:           redisCfg.DB,
		PoolSize:     redisCfg.PoolSize,
		ReadTimeout:  redisCfg.Timeout,
		WriteTimeout: redisCfg.Timeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorFailedToConnect, err)
	}

	return &RedisLimiter{
		client:      client,
		window:      limitCfg.Window,
		maxRequests: limitCfg.MaxRequests,
	}, nil
}

var _ services.RateLimiter = (*RedisLimiter)(nil)

// Allow регистрирует обращение клиента и сообщает, укладывается ли он в лимит.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("limiter", "redis"), zap.String("key", key))

	redisKey := keyPrefix + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		log.Error(ctx, ErrorFailedToIncrement, zap.Error(err))
		return false, fmt.Errorf("%s: %w", ErrorFailedToIncrement, err)
	}

	// Первое обращение открывает окно.
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			log.Error(ctx, ErrorFailedToExpire, zap.Error(err))
			return false, fmt.Errorf("%s: %w", ErrorFailedToExpire, err)
		}
	}

	if count > int64(l.maxRequests) {
		log.Debug(ctx, "rate limit exceeded", zap.Int64("count", count))
		return false, nil
	}

	return true, nil
}

// Close закрывает соединение с Redis.
func (l *RedisLimiter) Close() error {
	if err := l.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
