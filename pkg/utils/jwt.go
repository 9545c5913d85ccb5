package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"team-planner-backend/pkg/models"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

// JWTService issues and validates the access/refresh token pair used by the
// HTTP layer.
type JWTService struct {
	secretKey []byte
}

func NewJWTService(secretKey string) *JWTService {
	return &JWTService{secretKey: []byte(secretKey)}
}

// GenerateTokenPair returns an access token, a refresh token and the access
// token's expiry as a unix timestamp.
func (j *JWTService) GenerateTokenPair(userID, email string) (accessToken, refreshToken string, expiresIn int64, err error) {
	accessToken, expiresIn, err = j.sign(userID, email, "access", accessTokenTTL)
	if err != nil {
		return "", "", 0, err
	}
	refreshToken, _, err = j.sign(userID, email, "refresh", refreshTokenTTL)
	if err != nil {
		return "", "", 0, err
	}
	return accessToken, refreshToken, expiresIn, nil
}

// GenerateAccessToken issues a fresh access token.
func (j *JWTService) GenerateAccessToken(userID, email string) (string, int64, error) {
	return j.sign(userID, email, "access", accessTokenTTL)
}

func (j *JWTService) sign(userID, email, tokenType string, ttl time.Duration) (string, int64, error) {
	now := time.Now()
	expiry := now.Add(ttl)

	claims := &models.TokenClaims{
		UserID: userID,
		Email:  email,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secretKey)
	if err != nil {
		return "", 0, fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return token, expiry.Unix(), nil
}

// ValidateToken parses and verifies a token of either type. Expiry is
// checked by the parser.
func (j *JWTService) ValidateToken(tokenString string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// RefreshAccessToken validates a refresh token and issues a new access
// token.
func (j *JWTService) RefreshAccessToken(refreshToken string) (string, int64, error) {
	claims, err := j.ValidateToken(refreshToken)
	if err != nil {
		return "", 0, fmt.Errorf("invalid refresh token: %w", err)
	}
	if claims.Type != "refresh" {
		return "", 0, fmt.Errorf("invalid token type: expected refresh, got %s", claims.Type)
	}
	return j.GenerateAccessToken(claims.UserID, claims.Email)
}
