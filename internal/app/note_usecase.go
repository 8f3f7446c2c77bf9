package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"noteshare/internal/domain/entities"
	"noteshare/internal/ports/repositories"
	"noteshare/pkg/logger"
)

const (
	methodCreateNote = "CreateNote"
	methodGetNote    = "GetNote"
	methodListNotes  = "ListNotes"
	methodUpdateNote = "UpdateNote"
	methodDeleteNote = "DeleteNote"
	methodShareNote  = "ShareNote"
	methodSearch     = "SearchNotes"

	msgNoteNotFound    = "note not found or not owned by caller"
	msgTargetNotFound  = "share target user not found"
	msgAlreadyShared   = "note already shared with target user"
	msgShareWithSelf   = "owner attempted to share note with themselves"
	msgInvalidNoteBody = "empty title or content"

	errCtxValidatingNote = "validating note"
	errCtxCreatingNote   = "creating note"
	errCtxGettingNote    = "getting note"
	errCtxListingNotes   = "listing notes"
	errCtxUpdatingNote   = "updating note"
	errCtxDeletingNote   = "deleting note"
	errCtxSharingNote    = "sharing note"
	errCtxFindingTarget  = "finding share target"
	errCtxSearchingNotes = "searching notes"
)

// NoteUseCase реализует бизнес-логику работы с заметками. Все операции
// параметризуются callerID - идентификатором аутентифицированного пользователя.
type NoteUseCase struct {
	noteRepo repositories.NoteRepository
	userRepo repositories.UserRepository
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(noteRepo repositories.NoteRepository, userRepo repositories.UserRepository) *NoteUseCase {
	return &NoteUseCase{
		noteRepo: noteRepo,
		userRepo: userRepo,
	}
}

// validateNoteFields проверяет обязательность заголовка и содержимого
// до какого-либо обращения к хранилищу.
func validateNoteFields(title, content string) error {
	if title == "" {
		return fmt.Errorf("%s: %w", errCtxValidatingNote, entities.ErrEmptyTitle)
	}
	if content == "" {
		return fmt.Errorf("%s: %w", errCtxValidatingNote, entities.ErrEmptyContent)
	}
	return nil
}

// isValidID сообщает, имеет ли идентификатор форму UUID. Идентификаторы
// другой формы заведомо не существуют в хранилище, поэтому трактуются как
// not found, а не как ошибка хранилища.
func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// CreateNote создает новую заметку. Владельцем становится caller,
// множество sharedWith пусто.
func (uc *NoteUseCase) CreateNote(ctx context.Context, callerID, title, content string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateNote), zap.String("callerID", callerID))

	if err := validateNoteFields(title, content); err != nil {
		log.Debug(ctx, msgInvalidNoteBody)
		return nil, err
	}

	note, err := uc.noteRepo.Create(ctx, entities.NewNote(callerID, title, content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingNote, err)
	}

	log.Info(ctx, "note created", zap.String("noteID", note.ID))
	return note, nil
}

// ListNotes возвращает все заметки, видимые caller-у: собственные и разделенные с ним.
func (uc *NoteUseCase) ListNotes(ctx context.Context, callerID string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListNotes), zap.String("callerID", callerID))
	log.Debug(ctx, "listing visible notes")

	notes, err := uc.noteRepo.ListVisible(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingNotes, err)
	}

	return notes, nil
}

// GetNote возвращает заметку по ID, если caller может её читать.
// Отсутствие и недоступность неразличимы для вызывающего.
func (uc *NoteUseCase) GetNote(ctx context.Context, callerID, noteID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetNote), zap.String("noteID", noteID))

	if !isValidID(noteID) {
		log.Debug(ctx, msgNoteNotFound)
		return nil, fmt.Errorf("%s: %w", errCtxGettingNote, entities.ErrNoteNotFound)
	}

	note, err := uc.noteRepo.GetVisible(ctx, noteID, callerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxGettingNote, err)
	}
	if note == nil {
		log.Debug(ctx, msgNoteNotFound)
		return nil, fmt.Errorf("%s: %w", errCtxGettingNote, entities.ErrNoteNotFound)
	}

	return note, nil
}

// UpdateNote заменяет заголовок и содержимое заметки. Разрешено только
// владельцу: разделенный доступ права записи не дает.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, callerID, noteID, title, content string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateNote), zap.String("noteID", noteID))

	if err := validateNoteFields(title, content); err != nil {
		log.Debug(ctx, msgInvalidNoteBody)
		return nil, err
	}

	if !isValidID(noteID) {
		log.Debug(ctx, msgNoteNotFound)
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingNote, entities.ErrNoteNotFound)
	}

	note, err := uc.noteRepo.GetOwned(ctx, noteID, callerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingNote, err)
	}
	if note == nil {
		log.Debug(ctx, msgNoteNotFound)
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingNote, entities.ErrNoteNotFound)
	}

	note.Title = title
	note.Content = content
	note.UpdatedAt = time.Now()

	if err := uc.noteRepo.Update(ctx, note); err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			return nil, fmt.Errorf("%s: %w", errCtxUpdatingNote, entities.ErrNoteNotFound)
		}
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingNote, err)
	}

	log.Info(ctx, "note updated", zap.String("noteID", note.ID))
	return note, nil
}

// DeleteNote удаляет заметку и возвращает её последнее состояние.
// Разрешено только владельцу.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, callerID, noteID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteNote), zap.String("noteID", noteID))

	if !isValidID(noteID) {
		log.Debug(ctx, msgNoteNotFound)
		return nil, fmt.Errorf("%s: %w", errCtxDeletingNote, entities.ErrNoteNotFound)
	}

	note, err := uc.noteRepo.GetOwned(ctx, noteID, callerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxDeletingNote, err)
	}
	if note == nil {
		log.Debug(ctx, msgNoteNotFound)
		return nil, fmt.Errorf("%s: %w", errCtxDeletingNote, entities.ErrNoteNotFound)
	}

	if err := uc.noteRepo.Delete(ctx, noteID, callerID); err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			return nil, fmt.Errorf("%s: %w", errCtxDeletingNote, entities.ErrNoteNotFound)
		}
		return nil, fmt.Errorf("%s: %w", errCtxDeletingNote, err)
	}

	log.Info(ctx, "note deleted", zap.String("noteID", note.ID))
	return note, nil
}

// ShareNote предоставляет пользователю доступ на чтение заметки.
// Порядок проверок фиксирован: сначала заметка, затем пользователь,
// затем самошаринг и дубликат - от него зависят возвращаемые ошибки.
func (uc *NoteUseCase) ShareNote(ctx context.Context, callerID, noteID, targetUserID string) error {
	log := logger.Log(ctx).With(
		zap.String("method", methodShareNote),
		zap.String("noteID", noteID),
		zap.String("targetUserID", targetUserID),
	)

	if !isValidID(noteID) {
		log.Debug(ctx, msgNoteNotFound)
		return fmt.Errorf("%s: %w", errCtxSharingNote, entities.ErrNoteNotFound)
	}

	note, err := uc.noteRepo.GetOwned(ctx, noteID, callerID)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxSharingNote, err)
	}
	if note == nil {
		log.Debug(ctx, msgNoteNotFound)
		return fmt.Errorf("%s: %w", errCtxSharingNote, entities.ErrNoteNotFound)
	}

	if !isValidID(targetUserID) {
		log.Debug(ctx, msgTargetNotFound)
		return fmt.Errorf("%s: %w", errCtxFindingTarget, entities.ErrUserNotFound)
	}

	if _, err := uc.userRepo.FindByID(ctx, targetUserID); err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgTargetNotFound)
			return fmt.Errorf("%s: %w", errCtxFindingTarget, entities.ErrUserNotFound)
		}
		return fmt.Errorf("%s: %w", errCtxFindingTarget, err)
	}

	if targetUserID == callerID {
		log.Debug(ctx, msgShareWithSelf)
		return fmt.Errorf("%s: %w", errCtxSharingNote, entities.ErrShareWithSelf)
	}

	if note.IsSharedWith(targetUserID) {
		log.Debug(ctx, msgAlreadyShared)
		return fmt.Errorf("%s: %w", errCtxSharingNote, entities.ErrAlreadyShared)
	}

	if err := uc.noteRepo.AddShare(ctx, noteID, targetUserID); err != nil {
		return fmt.Errorf("%s: %w", errCtxSharingNote, err)
	}

	log.Info(ctx, "note shared", zap.String("noteID", noteID))
	return nil
}

// SearchNotes ищет заметки по литеральной подстроке без учета регистра.
// После выборки повторно проверяется право чтения каждой найденной заметки:
// даже при ослаблении основного фильтра чужая заметка не будет возвращена.
func (uc *NoteUseCase) SearchNotes(ctx context.Context, callerID, query string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodSearch), zap.String("callerID", callerID))
	log.Debug(ctx, "searching notes")

	notes, err := uc.noteRepo.Search(ctx, callerID, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxSearchingNotes, err)
	}

	authorized := make([]*entities.Note, 0, len(notes))
	for _, note := range notes {
		if note.IsVisibleTo(callerID) {
			authorized = append(authorized, note)
		}
	}

	return authorized, nil
}
