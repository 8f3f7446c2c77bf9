package postgres

import (
	"noteshare/internal/ports/repositories"
)

// RepositoryFactory создает репозитории для работы с базой данных.
type RepositoryFactory struct {
	pool PgxPoolInterface
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{pool: pool}
}

// UserRepository возвращает репозиторий для работы с пользователями.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return NewUserRepository(f.pool)
}

// NoteRepository возвращает репозиторий для работы с заметками.
func (f *RepositoryFactory) NoteRepository() repositories.NoteRepository {
	return NewNoteRepository(f.pool)
}
