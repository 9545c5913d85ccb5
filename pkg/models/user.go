package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User represents a registered account.
//
// The password field holds an argon2id hash, never the raw password. It keeps
// a json tag because the record store persists users as a JSON collection;
// handlers must call Public() before returning a user to clients.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Position  string    `json:"position,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Public returns a copy safe to serialize in API responses.
func (u User) Public() User {
	u.Password = ""
	return u
}

// RegisterRequest is the payload for user registration
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest is the payload for user login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the authenticated user and its token pair
type LoginResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// UpdateProfileRequest is a partial profile patch; empty fields are skipped
type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Position string `json:"position"`
	Bio      string `json:"bio"`
}

// TokenClaims are the JWT claims issued by the auth layer
type TokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Type   string `json:"type"` // "access" or "refresh"
	jwt.RegisteredClaims
}
