package app_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"noteshare/internal/app"
	"noteshare/internal/domain/entities"
)

func TestAuthUseCase_Signup(t *testing.T) {
	ctx := testContext(t)

	expiresAt := time.Now().Add(time.Hour)

	t.Run("Успешная регистрация", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)
		tokenSvc := new(mockTokenService)

		userRepo.On("FindByUsername", mock.Anything, "alice").
			Return(nil, entities.ErrUserNotFound)
		passwordSvc.On("Hash", mock.Anything, "secret").
			Return("hashed", nil)
		userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return u.Username == "alice" && u.PasswordHash == "hashed"
		})).Return(&entities.User{ID: "user-1", Username: "alice", PasswordHash: "hashed"}, nil)
		tokenSvc.On("GenerateAccessToken", mock.Anything, "user-1").
			Return("access-token", expiresAt, nil)

		uc := app.NewAuthUseCase(userRepo, passwordSvc, tokenSvc)
		token, err := uc.Signup(ctx, "alice", "secret")

		require.NoError(t, err)
		assert.Equal(t, "access-token", token)

		userRepo.AssertExpectations(t)
		passwordSvc.AssertExpectations(t)
		tokenSvc.AssertExpectations(t)
	})

	t.Run("Пустое имя пользователя", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)
		tokenSvc := new(mockTokenService)

		uc := app.NewAuthUseCase(userRepo, passwordSvc, tokenSvc)
		token, err := uc.Signup(ctx, "", "secret")

		assert.Empty(t, token)
		require.ErrorIs(t, err, entities.ErrEmptyUsername)

		userRepo.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
	})

	t.Run("Пустой пароль", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)
		tokenSvc := new(mockTokenService)

		uc := app.NewAuthUseCase(userRepo, passwordSvc, tokenSvc)
		token, err := uc.Signup(ctx, "alice", "")

		assert.Empty(t, token)
		require.ErrorIs(t, err, entities.ErrEmptyPassword)

		userRepo.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
	})

	t.Run("Имя пользователя уже занято", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)
		tokenSvc := new(mockTokenService)

		userRepo.On("FindByUsername", mock.Anything, "alice").
			Return(&entities.User{ID: "user-1", Username: "alice"}, nil)

		uc := app.NewAuthUseCase(userRepo, passwordSvc, tokenSvc)
		token, err := uc.Signup(ctx, "alice", "secret")

		assert.Empty(t, token)
		require.ErrorIs(t, err, entities.ErrUsernameTaken)

		passwordSvc.AssertNotCalled(t, "Hash", mock.Anything, mock.Anything)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Гонка регистраций - дубликат ловит БД", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)
		tokenSvc := new(mockTokenService)

		userRepo.On("FindByUsername", mock.Anything, "alice").
			Return(nil, entities.ErrUserNotFound)
		passwordSvc.On("Hash", mock.Anything, "secret").
			Return("hashed", nil)
		userRepo.On("Create", mock.Anything, mock.Anything).
			Return(nil, entities.ErrUsernameTaken)

		uc := app.NewAuthUseCase(userRepo, passwordSvc, tokenSvc)
		token, err := uc.Signup(ctx, "alice", "secret")

		assert.Empty(t, token)
		require.ErrorIs(t, err, entities.ErrUsernameTaken)

		tokenSvc.AssertNotCalled(t, "GenerateAccessToken", mock.Anything, mock.Anything)
	})

	t.Run("Ошибка генерации токена", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)
		tokenSvc := new(mockTokenService)

		tokenErr := errors.New("signing error")
		userRepo.On("FindByUsername", mock.Anything, "alice").
			Return(nil, entities.ErrUserNotFound)
		passwordSvc.On("Hash", mock.Anything, "secret").
			Return("hashed", nil)
		userRepo.On("Create", mock.Anything, mock.Anything).
			Return(&entities.User{ID: "user-1", Username: "alice"}, nil)
		tokenSvc.On("GenerateAccessToken", mock.Anything, "user-1").
			Return("", time.Time{}, tokenErr)

		uc := app.NewAuthUseCase(userRepo, passwordSvc, tokenSvc)
		token, err := uc.Signup(ctx, "alice", "secret")

		assert.Empty(t, token)
		require.ErrorIs(t, err, tokenErr)
	})
}

func TestAuthUseCase_Login(t *testing.T) {
	ctx := testContext(t)

	expiresAt := time.Now().Add(time.Hour)
	storedUser := &entities.User{ID: "user-1", Username: "alice", PasswordHash: "hashed"}

	t.Run("Успешный вход", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)
		tokenSvc := new(mockTokenService)

		userRepo.On("FindByUsername", mock.Anything, "alice").
			Return(storedUser, nil)
		passwordSvc.On("Verify", mock.Anything, "secret", "hashed").
			Return(true, nil)
		tokenSvc.On("GenerateAccessToken", mock.Anything, "user-1").
			Return("access-token", expiresAt, nil)

		uc := app.NewAuthUseCase(userRepo, passwordSvc, tokenSvc)
		token, err := uc.Login(ctx, "alice", "secret")

		require.NoError(t, err)
		assert.Equal(t, "access-token", token)
	})

	t.Run("Несуществующий пользователь неотличим от неверного пароля", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)
		tokenSvc := new(mockTokenService)

		userRepo.On("FindByUsername", mock.Anything, "ghost").
			Return(nil, entities.ErrUserNotFound)

		uc := app.NewAuthUseCase(userRepo, passwordSvc, tokenSvc)
		token, err := uc.Login(ctx, "ghost", "secret")

		assert.Empty(t, token)
		require.ErrorIs(t, err, entities.ErrInvalidCredentials)

		passwordSvc.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Неверный пароль", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)
		tokenSvc := new(mockTokenService)

		userRepo.On("FindByUsername", mock.Anything, "alice").
			Return(storedUser, nil)
		passwordSvc.On("Verify", mock.Anything, "wrong", "hashed").
			Return(false, nil)

		uc := app.NewAuthUseCase(userRepo, passwordSvc, tokenSvc)
		token, err := uc.Login(ctx, "alice", "wrong")

		assert.Empty(t, token)
		require.ErrorIs(t, err, entities.ErrInvalidCredentials)

		tokenSvc.AssertNotCalled(t, "GenerateAccessToken", mock.Anything, mock.Anything)
	})

	t.Run("Ошибка хранилища не маскируется под неверные учетные данные", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)
		tokenSvc := new(mockTokenService)

		dbErr := errors.New("connection refused")
		userRepo.On("FindByUsername", mock.Anything, "alice").
			Return(nil, dbErr)

		uc := app.NewAuthUseCase(userRepo, passwordSvc, tokenSvc)
		token, err := uc.Login(ctx, "alice", "secret")

		assert.Empty(t, token)
		require.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, entities.ErrInvalidCredentials)
	})
}
