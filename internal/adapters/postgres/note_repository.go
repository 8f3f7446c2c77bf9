package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"noteshare/internal/domain/entities"
	"noteshare/internal/ports/repositories"
	"noteshare/pkg/logger"
)

// noteColumns - общая проекция заметки вместе с множеством sharedWith.
const noteColumns = `
        n.id, n.user_id, n.title, n.content, n.created_at, n.updated_at,
        COALESCE(ARRAY(
            SELECT s.user_id::text FROM note_shares s
            WHERE s.note_id = n.id
            ORDER BY s.created_at
        ), '{}')`

// visibleCondition ограничивает выборку заметками, которые caller может читать:
// он владелец либо присутствует в note_shares.
const visibleCondition = `(n.user_id = $1 OR EXISTS (
            SELECT 1 FROM note_shares s
            WHERE s.note_id = n.id AND s.user_id = $1
        ))`

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// Create сохраняет новую заметку в БД.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Create"))
	log.Debug(ctx, "creating new note", zap.String("userID", note.UserID))

	created := entities.Note{
		UserID:     note.UserID,
		Title:      note.Title,
		Content:    note.Content,
		SharedWith: make([]string, 0),
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO notes (user_id, title, content) VALUES ($1, $2, $3)
         RETURNING id, created_at, updated_at`,
		note.UserID, note.Title, note.Content,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)

	if err != nil {
		log.Error(ctx, "failed to create note", zap.Error(err))
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	log.Debug(ctx, "note created", zap.String("noteID", created.ID))
	return &created, nil
}

// GetVisible получает заметку, доступную пользователю на чтение.
// Возвращает (nil, nil), если заметки нет или доступ не предоставлен.
func (r *NoteRepository) GetVisible(ctx context.Context, noteID, callerID string) (*entities.Note, error) {
	return r.getNote(ctx, "GetVisible",
		`SELECT `+noteColumns+`
         FROM notes n
         WHERE n.id = $2 AND `+visibleCondition,
		callerID, noteID)
}

// GetOwned получает заметку только для её владельца.
func (r *NoteRepository) GetOwned(ctx context.Context, noteID, callerID string) (*entities.Note, error) {
	return r.getNote(ctx, "GetOwned",
		`SELECT `+noteColumns+`
         FROM notes n
         WHERE n.id = $2 AND n.user_id = $1`,
		callerID, noteID)
}

func (r *NoteRepository) getNote(ctx context.Context, method, query, callerID, noteID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", method))
	log.Debug(ctx, "getting note", zap.String("noteID", noteID), zap.String("callerID", callerID))

	var note entities.Note
	err := r.pool.QueryRow(ctx, query, callerID, noteID).Scan(
		&note.ID, &note.UserID, &note.Title, &note.Content,
		&note.CreatedAt, &note.UpdatedAt, &note.SharedWith,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found or not accessible", zap.String("noteID", noteID))
			return nil, nil
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return &note, nil
}

// ListVisible получает все заметки, доступные пользователю: собственные и разделенные с ним.
func (r *NoteRepository) ListVisible(ctx context.Context, callerID string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "ListVisible"))
	log.Debug(ctx, "listing visible notes", zap.String("callerID", callerID))

	rows, err := r.pool.Query(ctx,
		`SELECT `+noteColumns+`
         FROM notes n
         WHERE `+visibleCondition+`
         ORDER BY n.created_at`,
		callerID,
	)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	return scanNotes(ctx, rows)
}

// Update обновляет заголовок и содержимое заметки. Область запроса ограничена
// владельцем: разделенный доступ не дает права записи.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Update"))
	log.Debug(ctx, "updating note", zap.String("noteID", note.ID))

	result, err := r.pool.Exec(ctx,
		`UPDATE notes SET title = $1, content = $2, updated_at = now()
         WHERE id = $3 AND user_id = $4`,
		note.Title, note.Content, note.ID, note.UserID,
	)
	if err != nil {
		log.Error(ctx, "failed to update note", zap.Error(err))
		return fmt.Errorf("failed to update note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found or not owned by user")
		return entities.ErrNoteNotFound
	}

	return nil
}

// Delete удаляет заметку. Область запроса ограничена владельцем.
func (r *NoteRepository) Delete(ctx context.Context, noteID, callerID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Delete"))
	log.Debug(ctx, "deleting note", zap.String("noteID", noteID))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM notes WHERE id = $1 AND user_id = $2`,
		noteID, callerID,
	)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found or not owned by user")
		return entities.ErrNoteNotFound
	}

	return nil
}

// AddShare добавляет пользователя в множество sharedWith. Составной первичный
// ключ note_shares гарантирует отсутствие дубликатов при гонке параллельных
// запросов, поэтому конфликт просто игнорируется.
func (r *NoteRepository) AddShare(ctx context.Context, noteID, targetUserID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "AddShare"))
	log.Debug(ctx, "sharing note", zap.String("noteID", noteID), zap.String("targetUserID", targetUserID))

	_, err := r.pool.Exec(ctx,
		`INSERT INTO note_shares (note_id, user_id) VALUES ($1, $2)
         ON CONFLICT DO NOTHING`,
		noteID, targetUserID,
	)
	if err != nil {
		log.Error(ctx, "failed to share note", zap.Error(err))
		return fmt.Errorf("failed to share note: %w", err)
	}

	return nil
}

// Search выполняет регистронезависимый поиск подстроки в заголовке и содержимом
// видимых пользователю заметок.
func (r *NoteRepository) Search(ctx context.Context, callerID, query string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Search"))
	log.Debug(ctx, "searching notes", zap.String("callerID", callerID))

	pattern := "%" + escapeLikePattern(query) + "%"

	rows, err := r.pool.Query(ctx,
		`SELECT `+noteColumns+`
         FROM notes n
         WHERE `+visibleCondition+`
           AND (n.title ILIKE $2 ESCAPE '\' OR n.content ILIKE $2 ESCAPE '\')
         ORDER BY n.created_at`,
		callerID, pattern,
	)
	if err != nil {
		log.Error(ctx, "failed to search notes", zap.Error(err))
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}
	defer rows.Close()

	return scanNotes(ctx, rows)
}

// escapeLikePattern экранирует спецсимволы ILIKE, чтобы пользовательский ввод
// трактовался как литеральная подстрока, а не шаблон.
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func scanNotes(ctx context.Context, rows pgx.Rows) ([]*entities.Note, error) {
	log := logger.Log(ctx)

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		var note entities.Note
		err := rows.Scan(
			&note.ID, &note.UserID, &note.Title, &note.Content,
			&note.CreatedAt, &note.UpdatedAt, &note.SharedWith,
		)
		if err != nil {
			log.Error(ctx, "failed to scan note", zap.Error(err))
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, nil
}
