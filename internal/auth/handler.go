// File: internal/auth/handler.go
package auth

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"notes_app_backend/internal/common"
	"notes_app_backend/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for the OAuth handlers.
type Handler struct {
	cfg          *config.Config
	oauthService OAuthService
	logger       *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(cfg *config.Config, oauthService OAuthService, logger *zap.Logger) *Handler {
	return &Handler{
		cfg:          cfg,
		oauthService: oauthService,
		logger:       logger.Named("AuthHandler"),
	}
}

// RegisterRoutes sets up the routes for the OAuth flow.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	oauthGroup := router.Group("/users/oauth")
	{
		oauthGroup.GET("/start", h.oauthStart)
		oauthGroup.GET("/callback", h.oauthCallback)
	}
}

func (h *Handler) oauthStart(c *gin.Context) {
	authURL, err := h.oauthService.GetGoogleLoginURL(c)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// oauthCallback finishes the browser flow. Outcomes are communicated by
// redirect: the client success URL carries the token as a query parameter,
// any failure lands on the client failure page.
func (h *Handler) oauthCallback(c *gin.Context) {
	if errorParam := c.Query("error"); errorParam != "" {
		h.logger.Error("Google OAuth callback error",
			zap.String("error", errorParam),
			zap.String("description", c.Query("error_description")),
		)
		h.redirectFailure(c)
		return
	}

	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		h.logger.Warn("Google callback missing code or state")
		h.redirectFailure(c)
		return
	}

	_, token, err := h.oauthService.HandleGoogleCallback(c, code, state)
	if err != nil {
		h.logger.Warn("Google callback handling failed", zap.Error(err))
		h.redirectFailure(c)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.successURL(token))
}

func (h *Handler) successURL(token string) string {
	sep := "?"
	if strings.Contains(h.cfg.ClientSuccessURL, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%stoken=%s", h.cfg.ClientSuccessURL, sep, url.QueryEscape(token))
}

func (h *Handler) redirectFailure(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, h.cfg.ClientFailureURL)
}
