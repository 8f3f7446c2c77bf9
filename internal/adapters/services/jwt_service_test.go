package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapters "noteshare/internal/adapters/services"
	domain "noteshare/internal/domain/services"
	"noteshare/pkg/logger"
)

const testSecretKey = "test-secret-key"

func testContext(t *testing.T) context.Context {
	t.Helper()

	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func TestServiceJWT_GenerateAccessToken(t *testing.T) {
	ctx := testContext(t)

	t.Run("Токен генерируется и проходит проверку", func(t *testing.T) {
		svc := adapters.NewJWT(testSecretKey, time.Hour)

		token, expiresAt, err := svc.GenerateAccessToken(ctx, "user-1")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

		userID, err := svc.ValidateAccessToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", userID)
	})

	t.Run("Пустой секретный ключ", func(t *testing.T) {
		svc := adapters.NewJWT("", time.Hour)

		token, _, err := svc.GenerateAccessToken(ctx, "user-1")

		assert.Empty(t, token)
		require.ErrorIs(t, err, domain.ErrGeneratingToken)
	})
}

func TestServiceJWT_ValidateAccessToken(t *testing.T) {
	ctx := testContext(t)

	t.Run("Просроченный токен", func(t *testing.T) {
		svc := adapters.NewJWT(testSecretKey, -time.Minute)

		token, _, err := svc.GenerateAccessToken(ctx, "user-1")
		require.NoError(t, err)

		userID, err := svc.ValidateAccessToken(ctx, token)

		assert.Empty(t, userID)
		require.ErrorIs(t, err, domain.ErrExpiredToken)
	})

	t.Run("Токен с чужой подписью", func(t *testing.T) {
		issuer := adapters.NewJWT("other-secret", time.Hour)
		validator := adapters.NewJWT(testSecretKey, time.Hour)

		token, _, err := issuer.GenerateAccessToken(ctx, "user-1")
		require.NoError(t, err)

		userID, err := validator.ValidateAccessToken(ctx, token)

		assert.Empty(t, userID)
		require.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("Мусор вместо токена", func(t *testing.T) {
		svc := adapters.NewJWT(testSecretKey, time.Hour)

		userID, err := svc.ValidateAccessToken(ctx, "not.a.token")

		assert.Empty(t, userID)
		require.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("Токен без userId claim", func(t *testing.T) {
		svc := adapters.NewJWT(testSecretKey, time.Hour)

		token, _, err := svc.GenerateAccessToken(ctx, "")
		require.NoError(t, err)

		userID, err := svc.ValidateAccessToken(ctx, token)

		assert.Empty(t, userID)
		require.ErrorIs(t, err, domain.ErrInvalidToken)
	})
}
