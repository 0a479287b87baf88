// File: internal/common/context_helpers.go
package common

import (
	"strings"

	"notes_app_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetTokenFromContext retrieves the JWT token string from the Authorization header.
// Returns an empty string if not found.
func GetTokenFromContext(c *gin.Context) string {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], AuthorizationTypeBearer) {
		return ""
	}
	return parts[1]
}

// GetUserIDFromContext retrieves the user ID from the Gin context.
// Returns uuid.Nil if not found or not a UUID.
func GetUserIDFromContext(c *gin.Context) uuid.UUID {
	val, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil
	}
	userID, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

// GetCurrentUserFromContext retrieves the resolved authenticated user from the
// Gin context. Returns nil when the request did not pass the auth middleware.
func GetCurrentUserFromContext(c *gin.Context) *shared.User {
	val, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil
	}
	usr, ok := val.(*shared.User)
	if !ok {
		return nil
	}
	return usr
}
