// Package api определяет контракты прикладного уровня для HTTP-обработчиков.
package api

import (
	"context"

	"noteshare/internal/domain/entities"
)

// AuthUseCase определяет операции регистрации и входа.
type AuthUseCase interface {
	Signup(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
}

// NoteUseCase определяет операции над заметками, параметризованные
// идентификатором аутентифицированного пользователя.
type NoteUseCase interface {
	CreateNote(ctx context.Context, callerID, title, content string) (*entities.Note, error)
	ListNotes(ctx context.Context, callerID string) ([]*entities.Note, error)
	GetNote(ctx context.Context, callerID, noteID string) (*entities.Note, error)
	UpdateNote(ctx context.Context, callerID, noteID, title, content string) (*entities.Note, error)
	DeleteNote(ctx context.Context, callerID, noteID string) (*entities.Note, error)
	ShareNote(ctx context.Context, callerID, noteID, targetUserID string) error
	SearchNotes(ctx context.Context, callerID, query string) ([]*entities.Note, error)
}
