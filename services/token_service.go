package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers signature mismatch, wrong signing method and expiry.
var ErrInvalidToken = errors.New("invalid or expired token")

const DefaultTokenTTL = 7 * 24 * time.Hour

type TokenClaims struct {
	UserID   uint
	Username string
}

// TokenService issues and verifies HS256 session tokens carrying the
// user id and username. The secret is injected, never read from the
// environment here.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// TTL reports the configured token lifetime, also used as the session
// cookie max-age.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

func (s *TokenService) Issue(userID uint, username string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       userID,
		"username": username,
		"exp":      time.Now().Add(s.ttl).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) Verify(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return nil, ErrInvalidToken
	}
	username, _ := claims["username"].(string)

	return &TokenClaims{UserID: uint(id), Username: username}, nil
}
