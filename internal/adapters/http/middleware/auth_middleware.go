package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noteshare/internal/ports/services"
	"noteshare/pkg/logger"
)

// Константы для аутентификации.
const (
	// UserIDKey - ключ Locals с идентификатором аутентифицированного пользователя.
	UserIDKey = "userID"

	bearerPrefix = "Bearer "

	// ErrorInvalidTokenFormat возвращается при отсутствующем или искаженном
	// заголовке Authorization - статус 401.
	ErrorInvalidTokenFormat = "Unauthorized: Missing or invalid token format"
	// ErrorForbidden возвращается при корректно оформленном, но не прошедшем
	// проверку токене - статус 403. Асимметрия статусов сохранена намеренно.
	ErrorForbidden = "Forbidden"
)

// RequestContext возвращает контекст запроса, сохраненный logger middleware,
// либо базовый контекст fiber.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(UserContextKey).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}

// NewAuthMiddleware создает промежуточное ПО, проверяющее access токен
// и сохраняющее ID пользователя в Locals.
func NewAuthMiddleware(tokenSvc services.TokenService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))

		authHeader := ctx.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, bearerPrefix) {
			log.Debug(requestCtx, "missing or malformed authorization header")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrorInvalidTokenFormat,
			})
		}

		token := strings.TrimPrefix(authHeader, bearerPrefix)

		userID, err := tokenSvc.ValidateAccessToken(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, "token verification failed", zap.Error(err))
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": ErrorForbidden,
			})
		}

		ctx.Locals(UserIDKey, userID)

		return ctx.Next()
	}
}

// CallerID извлекает ID аутентифицированного пользователя из Locals.
func CallerID(ctx fiber.Ctx) (string, bool) {
	userID, ok := ctx.Locals(UserIDKey).(string)
	return userID, ok && userID != ""
}
