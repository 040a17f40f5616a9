package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=4"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AdminResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Nombre   string `json:"name"`
}

// LoginResponse is the login body. The token itself travels only in the
// HttpOnly session cookie.
type LoginResponse struct {
	Token     string        `json:"-"`
	ExpiraEn  time.Time     `json:"-"`
	ExpiresIn int           `json:"expires_in"` // seconds
	Admin     AdminResponse `json:"admin"`
}
