// Package http настраивает HTTP сервер сервиса заметок.
package http

import (
	"github.com/gofiber/fiber/v3"

	"noteshare/internal/adapters/http/auth"
	"noteshare/internal/adapters/http/middleware"
	"noteshare/internal/adapters/http/notes"
	"noteshare/internal/ports/api"
	"noteshare/internal/ports/services"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(
	app *fiber.App,
	authUseCase api.AuthUseCase,
	noteUseCase api.NoteUseCase,
	tokenSvc services.TokenService,
	limiter services.RateLimiter,
) {
	authHandler := auth.NewHandler(authUseCase)
	noteHandler := notes.NewHandler(noteUseCase)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// Публичные маршруты аутентификации.
	authRoutes := app.Group("/api/auth")
	authRoutes.Post("/signup", authHandler.Signup)
	authRoutes.Post("/login", authHandler.Login)

	// Маршруты заметок: лимит частоты, затем проверка токена.
	noteRoutes := app.Group("/api/notes")
	noteRoutes.Use(middleware.NewRateLimitMiddleware(limiter))
	noteRoutes.Use(middleware.NewAuthMiddleware(tokenSvc))

	noteRoutes.Get("/", noteHandler.ListNotes)
	// Регистрируется до "/:id", иначе "search" связался бы как идентификатор.
	noteRoutes.Get("/search", noteHandler.SearchNotes)
	noteRoutes.Get("/:id", noteHandler.GetNote)
	noteRoutes.Post("/", noteHandler.CreateNote)
	noteRoutes.Put("/:id", noteHandler.UpdateNote)
	noteRoutes.Delete("/:id", noteHandler.DeleteNote)
	noteRoutes.Post("/:id/share", noteHandler.ShareNote)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
