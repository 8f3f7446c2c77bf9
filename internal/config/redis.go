package config

import (
	"fmt"
	"time"
)

// RedisConfig содержит настройки подключения к Redis.
type RedisConfig struct {
	Host     string        `yaml:"host" env:"NOTESHARE_REDIS_HOST" env-default:"localhost"`
	Port     int           `yaml:"port" env:"NOTESHARE_REDIS_PORT" env-default:"6379"`
	Password string        `yaml:"password" env:"NOTESHARE_REDIS_PASSWORD" env-default:""`
	DB       int           `yaml:"db" env:"NOTESHARE_REDIS_DB" env-default:"0"`
	PoolSize int           `yaml:"pool_size" env:"NOTESHARE_REDIS_POOL_SIZE" env-default:"10"`
	Timeout  time.Duration `yaml:"timeout" env:"NOTESHARE_REDIS_TIMEOUT" env-default:"5s"`
}

// GetAddress возвращает адрес Redis сервера.
func (r *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
