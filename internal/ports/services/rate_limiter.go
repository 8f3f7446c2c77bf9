package services

import "context"

// RateLimiter определяет интерфейс ограничителя частоты запросов.
type RateLimiter interface {
	// Allow регистрирует обращение и сообщает, укладывается ли клиент в лимит.
	Allow(ctx context.Context, key string) (bool, error)
}
