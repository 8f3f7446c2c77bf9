// Package app реализует бизнес-логику сервиса заметок.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"noteshare/internal/domain/entities"
	"noteshare/internal/ports/repositories"
	svc "noteshare/internal/ports/services"
	"noteshare/pkg/logger"
)

const (
	methodSignup = "Signup"
	methodLogin  = "Login"

	msgStartSignup         = "starting user signup"
	msgEmptyCredentials    = "empty username or password provided"
	msgUsernameExists      = "user with this username already exists"
	msgUserCreated         = "user created successfully"
	msgLoginAttempt        = "login attempt"
	msgLoginNonExistent    = "login attempt with non-existent username"
	msgInvalidPasswordAuth = "invalid password provided"
	msgUserLoggedIn        = "user logged in successfully"

	msgErrCheckExistingUser = "failed to check existing user"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrGenerateToken     = "failed to generate access token"
	msgErrFindingUser       = "error finding user by username"
	msgErrVerifyingPassword = "error verifying password"

	errCtxValidatingSignup  = "validating signup request"
	errCtxCheckingUser      = "checking existing user"
	errCtxUsernameTaken     = "username taken"
	errCtxHashingPassword   = "hashing password"
	errCtxCreatingUser      = "creating user"
	errCtxGeneratingToken   = "generating access token"
	errCtxFindingUser       = "finding user"
	errCtxVerifyingPassword = "verifying password"
)

// AuthUseCase реализует регистрацию и вход пользователей.
type AuthUseCase struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Signup создает нового пользователя и возвращает access токен.
func (a *AuthUseCase) Signup(ctx context.Context, username, password string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodSignup), zap.String("username", username))
	log.Debug(ctx, msgStartSignup)

	if username == "" {
		log.Debug(ctx, msgEmptyCredentials)
		return "", fmt.Errorf("%s: %w", errCtxValidatingSignup, entities.ErrEmptyUsername)
	}
	if password == "" {
		log.Debug(ctx, msgEmptyCredentials)
		return "", fmt.Errorf("%s: %w", errCtxValidatingSignup, entities.ErrEmptyPassword)
	}

	existingUser, err := a.userRepo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existingUser != nil {
		log.Debug(ctx, msgUsernameExists)
		return "", fmt.Errorf("%s: %w", errCtxUsernameTaken, entities.ErrUsernameTaken)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	// Уникальный индекс в БД закрывает гонку параллельных регистраций:
	// проигравший получает ErrUsernameTaken из репозитория.
	createdUser, err := a.userRepo.Create(ctx, &entities.User{
		Username:     username,
		PasswordHash: hashedPassword,
	})
	if err != nil {
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserCreated, zap.String("userID", createdUser.ID))

	accessToken, _, err := a.tokenSvc.GenerateAccessToken(ctx, createdUser.ID)
	if err != nil {
		log.Error(ctx, msgErrGenerateToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxGeneratingToken, err)
	}

	return accessToken, nil
}

// Login проверяет учетные данные и возвращает access токен.
// Отсутствующий пользователь и неверный пароль неразличимы для вызывающего.
func (a *AuthUseCase) Login(ctx context.Context, username, password string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("username", username))
	log.Debug(ctx, msgLoginAttempt)

	user, err := a.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return "", fmt.Errorf("%s: %w", errCtxFindingUser, entities.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	match, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !match {
		log.Debug(ctx, msgInvalidPasswordAuth)
		return "", fmt.Errorf("%s: %w", errCtxVerifyingPassword, entities.ErrInvalidCredentials)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))

	accessToken, _, err := a.tokenSvc.GenerateAccessToken(ctx, user.ID)
	if err != nil {
		log.Error(ctx, msgErrGenerateToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxGeneratingToken, err)
	}

	return accessToken, nil
}
