// Package entities определяет доменные сущности сервиса заметок.
package entities

import (
	"errors"
	"time"
)

// Ошибки домена пользователя.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyUsername      = errors.New("username cannot be empty")
	ErrEmptyPassword      = errors.New("password cannot be empty")
)

// User представляет зарегистрированного пользователя.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
