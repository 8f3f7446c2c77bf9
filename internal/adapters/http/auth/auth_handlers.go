// Package auth содержит HTTP-обработчики регистрации и входа.
package auth

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
	LogHandlerSignup = "handling signup request"
	LogHandlerLogin  = "handling login request"

	ErrMsgInvalidRequestBody = "Invalid request body"
	ErrMsgMissingCredentials = "Username and password are required"
	ErrMsgUsernameExists     = "Username already exists"
	ErrMsgInvalidCredentials = "Invalid credentials"
	ErrMsgInternal           = "Internal server error"
)

// Handler обработчик HTTP-запросов аутентификации.
type Handler struct {
	authUseCase api.AuthUseCase
}

// NewHandler создает новый экземпляр обработчика аутентификации.
func NewHandler(authUseCase api.AuthUseCase) *Handler {
	return &Handler{authUseCase: authUseCase}
}

// Signup обрабатывает запрос на регистрацию пользователя.
func (h *Handler) Signup(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Signup"))
	log.Debug(requestCtx, LogHandlerSignup)

	var req dto.SignupRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	accessToken, err := h.authUseCase.Signup(requestCtx, req.Username, req.Password)
	if err != nil {
		log.Debug(requestCtx, "signup failed", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.TokenResponse{AccessToken: accessToken}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Login"))
	log.Debug(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	accessToken, err := h.authUseCase.Login(requestCtx, req.Username, req.Password)
	if err != nil {
		log.Debug(requestCtx, "login failed", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.TokenResponse{AccessToken: accessToken}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// handleError переводит доменные ошибки в статусы и сообщения API.
// Детали ошибок хранилища наружу не отдаются.
func handleError(ctx fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, entities.ErrUsernameTaken):
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgUsernameExists)
	case errors.Is(err, entities.ErrEmptyUsername), errors.Is(err, entities.ErrEmptyPassword):
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgMissingCredentials)
	case errors.Is(err, entities.ErrInvalidCredentials):
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgInvalidCredentials)
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
