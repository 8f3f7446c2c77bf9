package logger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noteshare/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	t.Run("Логгер для development окружения", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)
		require.NotNil(t, log)
	})

	t.Run("Логгер для production окружения", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Production, "info")
		require.NoError(t, err)
		require.NotNil(t, log)
	})

	t.Run("Некорректный уровень логирования", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "verbose")
		require.Error(t, err)
		assert.Nil(t, log)
	})
}

func TestContext(t *testing.T) {
	t.Run("Логгер сохраняется и извлекается из контекста", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewContext(context.Background(), log)

		extracted, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, log, extracted)
		assert.Same(t, log, logger.Log(ctx))
	})

	t.Run("Пустой контекст без логгера", func(t *testing.T) {
		extracted, err := logger.FromContext(context.Background())
		require.ErrorIs(t, err, logger.ErrLoggerNotFound)
		assert.Nil(t, extracted)
	})

	t.Run("Log не возвращает nil даже без логгера в контексте", func(t *testing.T) {
		assert.NotNil(t, logger.Log(context.Background()))
	})
}

func TestRequestID(t *testing.T) {
	t.Run("Идентификатор сохраняется в контексте", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "req-42")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.Equal(t, "req-42", id)
	})

	t.Run("Пустой идентификатор заменяется сгенерированным", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
	})

	t.Run("Контекст без идентификатора", func(t *testing.T) {
		_, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
	})
}
