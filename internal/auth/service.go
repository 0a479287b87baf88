// File: internal/auth/service.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"notes_app_backend/internal/config"
	"notes_app_backend/internal/shared"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const tokenIssuer = "notes_app_backend"

// JWTService issues and validates the stateless bearer tokens. Tokens are
// never stored server-side; rotating the signing key invalidates everything
// outstanding, which is the intended revocation story.
type JWTService struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewJWTService creates a new JWT service.
func NewJWTService(cfg *config.Config, logger *zap.Logger) shared.TokenService {
	return &JWTService{cfg: cfg, logger: logger.Named("JWTService")}
}

// GenerateToken mints a signed token embedding the user's id, name and email.
func (s *JWTService) GenerateToken(usr *shared.User) (string, time.Time, error) {
	now := time.Now()
	expirationTime := now.Add(s.cfg.JWTTokenExpiry)

	claims := &shared.Claims{
		UserID: usr.ID,
		Name:   usr.Name,
		Email:  usr.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   usr.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		s.logger.Error("Failed to sign access token", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("could not sign access token: %w", err)
	}
	return tokenString, expirationTime, nil
}

// ValidateToken validates a JWT token and returns its claims. Signature and
// expiry failures are not distinguished for the caller.
func (s *JWTService) ValidateToken(tokenString string) (*shared.Claims, error) {
	claims := &shared.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if claims, ok := token.Claims.(*shared.Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token claims")
}
