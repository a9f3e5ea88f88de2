// File: internal/auth/model.go
package auth

import (
	"time"

	"dreamhome_backend/internal/user"
)

// RegisterRequest defines the payload for account registration.
type RegisterRequest struct {
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=8,max=72"`
	FirstName  string  `json:"firstName" binding:"required,max=100"`
	LastName   string  `json:"lastName" binding:"required,max=100"`
	Phone      *string `json:"phone,omitempty" binding:"omitempty,max=50"`
	Role       string  `json:"role,omitempty" binding:"omitempty,oneof=USER AGENT"`
	AgencyName *string `json:"agencyName,omitempty" binding:"omitempty,max=255"`
}

// LoginRequest defines the payload for email/password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// AuthResponse is the payload returned by register and login.
type AuthResponse struct {
	User  user.Response `json:"user"`
	Token TokenResponse `json:"token"`
}
