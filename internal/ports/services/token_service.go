// Package services определяет интерфейсы сервисов аутентификации.
package services

import (
	"context"
	"time"
)

// TokenService определяет интерфейс для выпуска и проверки access токенов.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, userID string) (string, time.Time, error)
	// ValidateAccessToken проверяет подпись и срок действия токена
	// и возвращает ID пользователя из claims.
	ValidateAccessToken(ctx context.Context, token string) (string, error)
}
