// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noteshare/internal/adapters/http/dto"
	"noteshare/internal/adapters/http/middleware"
	"noteshare/internal/domain/entities"
	"noteshare/internal/ports/api"
	"noteshare/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerCreateNote  = "handling create note request"
	LogHandlerGetNote     = "handling get note request"
	LogHandlerListNotes   = "handling list notes request"
	LogHandlerUpdateNote  = "handling update note request"
	LogHandlerDeleteNote  = "handling delete note request"
	LogHandlerShareNote   = "handling share note request"
	LogHandlerSearchNotes = "handling search notes request"

	ErrMsgInvalidRequestBody = "Invalid request body"
	ErrMsgMissingNoteFields  = "Title and content are required"
	ErrMsgNoteNotFound       = "Note not found"
	ErrMsgUserNotFound       = "User not found"
	ErrMsgAlreadyShared      = "Note is already shared with this user"
	ErrMsgShareWithSelf      = "Cannot share a note with its owner"
	ErrMsgInternal           = "Internal server error"

	MsgNoteShared = "Note shared successfully"
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	noteUseCase api.NoteUseCase
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(noteUseCase api.NoteUseCase) *Handler {
	return &Handler{noteUseCase: noteUseCase}
}

// CreateNote обрабатывает запрос на создание новой заметки.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusInternalServerError, ErrMsgInternal)
	}
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(requestCtx, LogHandlerCreateNote)

	var req dto.NoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	note, err := h.noteUseCase.CreateNote(requestCtx, callerID, req.Title, req.Content)
	if err != nil {
		log.Error(requestCtx, "failed to create note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(dto.NoteFromEntity(note)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListNotes обрабатывает запрос на получение всех доступных пользователю заметок.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusInternalServerError, ErrMsgInternal)
	}
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListNotes"))
	log.Debug(requestCtx, LogHandlerListNotes)

	notes, err := h.noteUseCase.ListNotes(requestCtx, callerID)
	if err != nil {
		log.Error(requestCtx, "failed to list notes", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.NotesFromEntities(notes)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetNote обрабатывает запрос на получение заметки по ID.
func (h *Handler) GetNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusInternalServerError, ErrMsgInternal)
	}
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetNote"))
	log.Debug(requestCtx, LogHandlerGetNote)

	note, err := h.noteUseCase.GetNote(requestCtx, callerID, ctx.Params("id"))
	if err != nil {
		log.Debug(requestCtx, "failed to get note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.NoteFromEntity(note)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UpdateNote обрабатывает запрос на обновление заметки.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusInternalServerError, ErrMsgInternal)
	}
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateNote"))
	log.Debug(requestCtx, LogHandlerUpdateNote)

	var req dto.NoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	note, err := h.noteUseCase.UpdateNote(requestCtx, callerID, ctx.Params("id"), req.Title, req.Content)
	if err != nil {
		log.Debug(requestCtx, "failed to update note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.NoteFromEntity(note)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteNote обрабатывает запрос на удаление заметки и возвращает её
// последнее состояние.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusInternalServerError, ErrMsgInternal)
	}
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteNote"))
	log.Debug(requestCtx, LogHandlerDeleteNote)

	note, err := h.noteUseCase.DeleteNote(requestCtx, callerID, ctx.Params("id"))
	if err != nil {
		log.Debug(requestCtx, "failed to delete note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.NoteFromEntity(note)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ShareNote обрабатывает запрос на предоставление доступа к заметке.
func (h *Handler) ShareNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusInternalServerError, ErrMsgInternal)
	}
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ShareNote"))
	log.Debug(requestCtx, LogHandlerShareNote)

	var req dto.ShareNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	if err := h.noteUseCase.ShareNote(requestCtx, callerID, ctx.Params("id"), req.SharedUserID); err != nil {
		log.Debug(requestCtx, "failed to share note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.MessageResponse{Message: MsgNoteShared}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// SearchNotes обрабатывает запрос на поиск заметок по подстроке.
func (h *Handler) SearchNotes(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusInternalServerError, ErrMsgInternal)
	}
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.SearchNotes"))
	log.Debug(requestCtx, LogHandlerSearchNotes)

	notes, err := h.noteUseCase.SearchNotes(requestCtx, callerID, ctx.Query("q"))
	if err != nil {
		log.Error(requestCtx, "failed to search notes", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.NotesFromEntities(notes)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// handleError переводит доменные ошибки в статусы и сообщения API.
// Детали ошибок хранилища наружу не отдаются.
func handleError(ctx fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, entities.ErrNoteNotFound):
		return sendError(ctx, fiber.StatusNotFound, ErrMsgNoteNotFound)
	case errors.Is(err, entities.ErrUserNotFound):
		return sendError(ctx, fiber.StatusNotFound, ErrMsgUserNotFound)
	case errors.Is(err, entities.ErrAlreadyShared):
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgAlreadyShared)
	case errors.Is(err, entities.ErrShareWithSelf):
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgShareWithSelf)
	case errors.Is(err, entities.ErrEmptyTitle), errors.Is(err, entities.ErrEmptyContent):
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgMissingNoteFields)
	default:
		return sendError(ctx, fiber.StatusInternalServerError, ErrMsgInternal)
	}
}

func sendError(ctx fiber.Ctx, status int, message string) error {
	if err := ctx.Status(status).JSON(fiber.Map{"error": message}); err != nil {
		return fmt.Errorf("error sending error response: %w", err)
	}
	return nil
}
