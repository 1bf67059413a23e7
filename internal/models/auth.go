package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenRequest is the identity payload exchanged for an access token.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

// TokenResponse returns the issued token.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresIn int64     `json:"expires_in"`
	IssuedAt  time.Time `json:"issued_at"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}
