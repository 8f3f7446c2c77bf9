// Package dto содержит объекты передачи данных HTTP API.
package dto

// SignupRequest содержит данные для регистрации пользователя.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse содержит выпущенный access токен.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}
