package repositories

import (
	"context"

	"noteshare/internal/domain/entities"
)

// NoteRepository определяет интерфейс для работы с хранилищем заметок.
//
// Методы Get* возвращают (nil, nil), когда заметка отсутствует или не
// удовлетворяет области видимости - существование чужих заметок не раскрывается.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (*entities.Note, error)
	// GetVisible возвращает заметку, если caller - владелец или она с ним разделена.
	GetVisible(ctx context.Context, noteID, callerID string) (*entities.Note, error)
	// GetOwned возвращает заметку только для её владельца.
	GetOwned(ctx context.Context, noteID, callerID string) (*entities.Note, error)
	ListVisible(ctx context.Context, callerID string) ([]*entities.Note, error)
	Update(ctx context.Context, note *entities.Note) error
	Delete(ctx context.Context, noteID, callerID string) error
	// AddShare добавляет пользователя в множество sharedWith заметки.
	AddShare(ctx context.Context, noteID, targetUserID string) error
	// Search возвращает видимые caller-у заметки, у которых title или content
	// содержит query без учета регистра. Query - литеральная подстрока.
	Search(ctx context.Context, callerID, query string) ([]*entities.Note, error)
}
