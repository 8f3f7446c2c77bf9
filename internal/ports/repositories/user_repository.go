// Package repositories определяет интерфейсы репозиториев сервиса заметок.
package repositories

import (
	"context"

	"noteshare/internal/domain/entities"
)

// UserRepository определяет интерфейс для работы с хранилищем пользователей.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
}
