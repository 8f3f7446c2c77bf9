// Package shutdown предоставляет функциональность для корректного завершения приложения
// путем ожидания и обработки сигналов SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"noteshare/pkg/logger"
)

// Hook - функция завершения, выполняемая при остановке сервиса.
type Hook struct {
	Name string
	Fn   func(context.Context) error
}

// Wait блокирует выполнение до получения сигнала SIGINT или SIGTERM,
// затем параллельно выполняет все хуки в рамках заданного timeout.
func Wait(timeout time.Duration, hooks ...Hook) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log := logger.Log(ctx)
	log.Info(ctx, "shutdown signal received", zap.String("signal", sig.String()))

	var wgp sync.WaitGroup
	for _, hook := range hooks {
		wgp.Add(1)
		go func(h Hook) {
			defer wgp.Done()
			if err := h.Fn(ctx); err != nil {
				log.Error(ctx, "shutdown hook failed", zap.String("hook", h.Name), zap.Error(err))
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wgp.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Warn(ctx, "shutdown timed out before all hooks completed")
	}
}
