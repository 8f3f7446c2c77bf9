// Package main реализует точку входа сервиса заметок.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	httpServer "noteshare/internal/adapters/http"
	"noteshare/internal/adapters/postgres"
	"noteshare/internal/adapters/ratelimit"
	"noteshare/internal/adapters/services"
	"noteshare/internal/app"
	"noteshare/internal/config"
	db "noteshare/pkg/db/postgres"
	"noteshare/pkg/logger"
	"noteshare/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTESHARE_LOGGER_MODE"
	EnvLoggerLevel = "NOTESHARE_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrApplyMigrations      = "failed to apply database migrations"
	ErrInitRateLimiter      = "failed to initialize rate limiter"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "noteshare service started"
	LogServiceShutdownDone = "noteshare service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogClosingRedis        = "closing Redis connection"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitRepo            = "initializing repositories"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

// migrationsPath - источник миграций для golang-migrate.
const migrationsPath = "file://migrations"

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		database, err := db.New(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.MinConn, cfg.Postgres.MaxConn)
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		if err := db.MigrateDSN(ctx, cfg.Postgres.GetConnectionURL(), migrationsPath); err != nil {
			log.Error(ctx, ErrApplyMigrations, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitRepo)
		repoFactory := postgres.NewRepositoryFactory(database.Pool())
		userRepo := repoFactory.UserRepository()
		noteRepo := repoFactory.NoteRepository()

		log.Info(ctx, LogInitServices)
		svcFactory := services.NewServiceFactory(cfg.JWT.SecretKey, cfg.JWT.GetAccessTokenTTL(), cfg.JWT.BCryptCost)

		limiter, err := ratelimit.New(ctx, &cfg.Redis, &cfg.RateLimit)
		if err != nil {
			log.Error(ctx, ErrInitRateLimiter, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitUseCases)
		authUseCase := app.NewAuthUseCase(userRepo, svcFactory.PasswordService(), svcFactory.TokenService())
		noteUseCase := app.NewNoteUseCase(noteRepo, userRepo)

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(fiberApp, authUseCase, noteUseCase, svcFactory.TokenService(), limiter)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(cfg.Shutdown.GetTimeout(),
			shutdown.Hook{Name: "http", Fn: func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.Shutdown()
			}},
			shutdown.Hook{Name: "redis", Fn: func(ctx context.Context) error {
				log.Info(ctx, LogClosingRedis)
				return limiter.Close()
			}},
			shutdown.Hook{Name: "postgres", Fn: func(ctx context.Context) error {
				log.Info(ctx, LogClosingDB)
				database.Close(ctx)
				return nil
			}},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
