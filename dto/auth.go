package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/agency-portal/models"
)

// TokenClaims represents our custom JWT claims
type TokenClaims struct {
	UserID   string      `json:"userId"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
	ClientID string      `json:"clientId,omitempty"`
	jwt.RegisteredClaims
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest replaces the caller's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// AuthResponse represents the response after authentication
type AuthResponse struct {
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	ExpiresAt time.Time   `json:"expiresAt"`
	// Redirect is the home of the user's portal
	Redirect string `json:"redirect"`
}
