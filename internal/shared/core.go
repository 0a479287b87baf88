// File: internal/shared/core.go
package shared

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// User represents a user in the system, as exposed outside the user package.
// OTP state stays inside the credential store and is never carried here.
type User struct {
	ID        uuid.UUID
	Email     string
	Name      string
	DOB       *string
	GoogleID  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateUserRequest represents a request to register a new user.
type CreateUserRequest struct {
	Name  string
	Email string
	DOB   string
}

// OAuthUserProfile holds the profile data resolved from the OAuth provider.
type OAuthUserProfile struct {
	Provider      string
	ProviderID    string
	Email         string
	Name          string
	EmailVerified bool
}

// Service defines the interface for user-related business logic.
type Service interface {
	// Register creates the user and issues a registration OTP.
	Register(ctx context.Context, req CreateUserRequest) (*User, error)
	// RequestLoginOTP issues a fresh login OTP for an existing user.
	RequestLoginOTP(ctx context.Context, email string) error
	// VerifyOTP consumes a pending OTP exactly once and returns the user.
	VerifyOTP(ctx context.Context, email, code string) (*User, error)
	// FindOrCreateOrLinkOAuthUser resolves an external identity to a local user.
	FindOrCreateOrLinkOAuthUser(ctx context.Context, profile OAuthUserProfile) (usr *User, wasCreated bool, err error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

// Claims represents the JWT claims structure.
type Claims struct {
	UserID uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for JWT operations.
type TokenService interface {
	GenerateToken(usr *User) (string, time.Time, error)
	ValidateToken(tokenString string) (*Claims, error)
}
