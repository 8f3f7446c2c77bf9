package config

import "time"

// JWTConfig содержит настройки для JWT токенов.
type JWTConfig struct {
	SecretKey      string `yaml:"secret_key" env:"NOTESHARE_JWT_SECRET_KEY" env-default:"super-secret-key-change-me-in-production"`
	AccessTokenTTL string `yaml:"access_token_ttl" env:"NOTESHARE_JWT_ACCESS_TOKEN_TTL" env-default:"1h"`
	BCryptCost     int    `yaml:"bcrypt_cost" env:"NOTESHARE_BCRYPT_COST" env-default:"10"`
}

// GetAccessTokenTTL возвращает продолжительность времени жизни access токена.
func (c *JWTConfig) GetAccessTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.AccessTokenTTL)
	if err != nil {
		return time.Hour
	}
	return duration
}
