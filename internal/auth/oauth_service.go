// File: internal/auth/oauth_service.go
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"notes_app_backend/internal/common"
	"notes_app_backend/internal/config"
	"notes_app_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// ProviderGoogle is the only external identity provider.
const ProviderGoogle = "google"

// OAuthService defines the interface for the Google OAuth flow.
type OAuthService interface {
	// GetGoogleLoginURL builds the consent redirect and sets the state cookie.
	GetGoogleLoginURL(c *gin.Context) (string, error)
	// HandleGoogleCallback exchanges the authorization code, resolves the
	// profile to a local user and returns the user plus a signed token.
	HandleGoogleCallback(c *gin.Context, code, state string) (*shared.User, string, error)
}

type oauthService struct {
	cfg          *config.Config
	userService  shared.Service
	tokenService shared.TokenService
	logger       *zap.Logger
}

// NewOAuthService creates a new OAuth service.
func NewOAuthService(
	cfg *config.Config,
	userService shared.Service,
	tokenService shared.TokenService,
	logger *zap.Logger,
) OAuthService {
	return &oauthService{
		cfg:          cfg,
		userService:  userService,
		tokenService: tokenService,
		logger:       logger.Named("OAuthService"),
	}
}

// GetGoogleLoginURL generates the URL for Google OAuth login.
func (s *oauthService) GetGoogleLoginURL(c *gin.Context) (string, error) {
	state, err := generateAndSetOAuthState(c, s.cfg)
	if err != nil {
		s.logger.Error("Failed to generate OAuth state", zap.Error(err))
		return "", common.ErrInternalServer.WithDetails("Could not initiate Google login.")
	}
	googleCfg := getGoogleOAuthConfig(s.cfg)
	return googleCfg.AuthCodeURL(state), nil
}

// HandleGoogleCallback processes the callback from Google.
func (s *oauthService) HandleGoogleCallback(c *gin.Context, code, state string) (*shared.User, string, error) {
	storedState, err := getOAuthCookie(c, s.cfg, s.cfg.OAuthStateCookieName)
	if err != nil {
		s.logger.Error("Failed to get stored OAuth state", zap.Error(err))
		return nil, "", common.ErrBadRequest.WithDetails("Invalid session or state mismatch.")
	}
	if state != storedState {
		s.logger.Error("OAuth state mismatch")
		return nil, "", common.ErrBadRequest.WithDetails("OAuth state mismatch. Possible CSRF attack.")
	}

	googleCfg := getGoogleOAuthConfig(s.cfg)
	ctx := context.WithValue(c.Request.Context(), oauth2.HTTPClient, http.DefaultClient)

	token, err := googleCfg.Exchange(ctx, code)
	if err != nil {
		s.logger.Error("Failed to exchange Google auth code for token", zap.Error(err))
		return nil, "", common.ErrProviderData.WithDetails("Could not exchange Google auth code.")
	}

	profile, err := s.fetchGoogleProfile(ctx, googleCfg, token)
	if err != nil {
		return nil, "", err
	}

	appUser, _, err := s.userService.FindOrCreateOrLinkOAuthUser(c.Request.Context(), *profile)
	if err != nil {
		s.logger.Error("Failed to resolve user from Google profile", zap.Error(err))
		if _, ok := common.IsAPIError(err); ok {
			return nil, "", err
		}
		return nil, "", common.ErrInternalServer.WithDetails("Failed to process user account after Google login.")
	}

	signedToken, _, err := s.tokenService.GenerateToken(appUser)
	if err != nil {
		s.logger.Error("Failed to generate token after Google login", zap.Error(err), zap.String("userID", appUser.ID.String()))
		return nil, "", common.ErrInternalServer.WithDetails("Could not generate access token.")
	}

	s.logger.Info("Google OAuth login successful", zap.String("userID", appUser.ID.String()))
	return appUser, signedToken, nil
}

// fetchGoogleProfile retrieves the userinfo document for the exchanged token.
// A profile without an email address is unusable for account resolution.
func (s *oauthService) fetchGoogleProfile(ctx context.Context, googleCfg *oauth2.Config, token *oauth2.Token) (*shared.OAuthUserProfile, error) {
	client := googleCfg.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		s.logger.Error("Failed to fetch user info from Google", zap.Error(err))
		return nil, common.ErrProviderData.WithDetails("Could not fetch user info from Google.")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		s.logger.Error("Google user info request failed", zap.Int("status", resp.StatusCode), zap.String("body", string(body)))
		return nil, common.ErrProviderData.WithDetails(fmt.Sprintf("Google returned status %d for user info.", resp.StatusCode))
	}

	var googleUser struct {
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		s.logger.Error("Failed to decode Google user info", zap.Error(err))
		return nil, common.ErrProviderData.WithDetails("Could not process Google user information.")
	}

	if googleUser.Email == "" {
		s.logger.Error("Google profile is missing an email address", zap.String("sub", googleUser.Sub))
		return nil, common.ErrProviderData.WithDetails("The Google profile did not include an email address.")
	}

	return &shared.OAuthUserProfile{
		Provider:      ProviderGoogle,
		ProviderID:    googleUser.Sub,
		Email:         googleUser.Email,
		Name:          googleUser.Name,
		EmailVerified: googleUser.EmailVerified,
	}, nil
}
