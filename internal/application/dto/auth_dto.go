package dto

import "time"

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse datos de la sesión actual.
type SessionResponse struct {
	UserID         int64   `json:"userId"`
	Username       string  `json:"username"`
	Role           string  `json:"role"`
	LocationIDs    []int64 `json:"locationIds"`
	ProductLineIDs []int64 `json:"productLineIds"`
	CustomerID     *int64  `json:"customerId"`
}

// LoginResponse salida con el token de sesión.
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	User      SessionResponse `json:"user"`
}
