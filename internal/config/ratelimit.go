package config

import "time"

// RateLimitConfig содержит настройки ограничения частоты запросов к заметкам.
type RateLimitConfig struct {
	Window      time.Duration `yaml:"window" env:"NOTESHARE_RATE_LIMIT_WINDOW" env-default:"15m"`
	MaxRequests int           `yaml:"max_requests" env:"NOTESHARE_RATE_LIMIT_MAX" env-default:"100"`
}
