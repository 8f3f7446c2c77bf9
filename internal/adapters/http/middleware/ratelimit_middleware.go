package middleware

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noteshare/internal/ports/services"
	"noteshare/pkg/logger"
)

// ErrorTooManyRequests возвращается при превышении лимита запросов.
const ErrorTooManyRequests = "Too many requests, please try again later"

// NewRateLimitMiddleware создает промежуточное ПО, ограничивающее частоту
// запросов по IP клиента. При недоступности ограничителя запрос пропускается.
func NewRateLimitMiddleware(limiter services.RateLimiter) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "ratelimit"))

		allowed, err := limiter.Allow(requestCtx, ctx.IP())
		if err != nil {
			log.Warn(requestCtx, "rate limiter unavailable, passing request through", zap.Error(err))
			return ctx.Next()
		}

		if !allowed {
			log.Debug(requestCtx, "rate limit exceeded", zap.String("ip", ctx.IP()))
			return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": ErrorTooManyRequests,
			})
		}

		return ctx.Next()
	}
}
