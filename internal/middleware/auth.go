// File: internal/middleware/auth.go
package middleware

import (
	"notes_app_backend/internal/common"
	"notes_app_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware creates a Gin middleware for JWT authentication. The token
// is verified, then the subject is resolved against the user store so a
// deleted account cannot keep using an old token.
func AuthMiddleware(tokenService shared.TokenService, userService shared.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := common.GetTokenFromContext(c)
		if tokenString == "" {
			logger.Debug("Authorization header missing or malformed")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Not authorized, no token."))
			return
		}

		claims, err := tokenService.ValidateToken(tokenString)
		if err != nil {
			logger.Warn("Token validation failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Not authorized, token failed."))
			return
		}

		usr, err := userService.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			logger.Warn("Token subject no longer exists", zap.String("userID", claims.UserID.String()))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Not authorized, user not found."))
			return
		}

		c.Set(common.UserIDKey, usr.ID)
		c.Set(common.CurrentUserKey, usr)

		logger.Debug("User authenticated successfully",
			zap.String("userID", usr.ID.String()),
			zap.String("email", usr.Email),
		)

		c.Next()
	}
}
