// Package services определяет доменные модели и ошибки для сервисных контрактов.
package services

import (
	"errors"
	"time"
)

// Ошибки работы с токенами.
var (
	ErrGeneratingToken = errors.New("error generating token")
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("token has expired")
)

// TokenClaims - доменное представление содержимого access токена.
type TokenClaims struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// JWTConfig содержит параметры подписи токенов.
type JWTConfig struct {
	SecretKey      []byte
	AccessTokenTTL time.Duration
}
