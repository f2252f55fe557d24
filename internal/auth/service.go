// internal/auth/service.go
// Access-token issuing and validation. Account management (signup, login,
// password reset) lives in a separate identity service and is not part of
// this backend.

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims are the JWT claims carried by an access token
type Claims struct {
	UID  string `json:"uid"`
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// Config holds auth configuration
type Config struct {
	JWTSecret         string
	AccessTokenExpiry time.Duration
}

type Service interface {
	GenerateAccessToken(uid string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type service struct {
	config *Config
}

func NewService(config *Config) Service {
	return &service{config: config}
}

func (s *service) GenerateAccessToken(uid string) (string, error) {
	claims := &Claims{
		UID:  uid,
		Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   uid,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

func (s *service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
