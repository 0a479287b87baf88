// File: internal/auth/oauth_service_test.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"notes_app_backend/internal/common"
	"notes_app_backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

func newTestOAuthService() *oauthService {
	cfg := &config.Config{
		GoogleClientID:           "client-id",
		GoogleClientSecret:       "client-secret",
		GoogleRedirectURI:        "http://localhost:8080/api/users/oauth/callback",
		OAuthStateCookieName:     "oauth_state",
		OAuthCookieMaxAgeMinutes: 10,
	}
	return &oauthService{cfg: cfg, logger: zap.NewNop()}
}

func stubUserInfo(t *testing.T, handler http.HandlerFunc) func() {
	t.Helper()
	srv := httptest.NewServer(handler)
	orig := googleUserInfoURL
	googleUserInfoURL = srv.URL
	return func() {
		googleUserInfoURL = orig
		srv.Close()
	}
}

func TestFetchGoogleProfile_Success(t *testing.T) {
	cleanup := stubUserInfo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sub":"google-sub-1","email":"jordan@example.com","email_verified":true,"name":"Jordan"}`))
	})
	defer cleanup()

	svc := newTestOAuthService()
	profile, err := svc.fetchGoogleProfile(context.Background(), getGoogleOAuthConfig(svc.cfg), &oauth2.Token{AccessToken: "access"})
	require.NoError(t, err)
	assert.Equal(t, ProviderGoogle, profile.Provider)
	assert.Equal(t, "google-sub-1", profile.ProviderID)
	assert.Equal(t, "jordan@example.com", profile.Email)
	assert.Equal(t, "Jordan", profile.Name)
	assert.True(t, profile.EmailVerified)
}

func TestFetchGoogleProfile_MissingEmail(t *testing.T) {
	cleanup := stubUserInfo(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sub":"google-sub-1","name":"Jordan"}`))
	})
	defer cleanup()

	svc := newTestOAuthService()
	_, err := svc.fetchGoogleProfile(context.Background(), getGoogleOAuthConfig(svc.cfg), &oauth2.Token{AccessToken: "access"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrProviderData))
}

func TestFetchGoogleProfile_UpstreamError(t *testing.T) {
	cleanup := stubUserInfo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer cleanup()

	svc := newTestOAuthService()
	_, err := svc.fetchGoogleProfile(context.Background(), getGoogleOAuthConfig(svc.cfg), &oauth2.Token{AccessToken: "access"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrProviderData))
}

func TestOAuthStateCookie_RoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newTestOAuthService()

	// First request: starting the flow sets the state cookie.
	startRec := httptest.NewRecorder()
	startCtx, _ := gin.CreateTestContext(startRec)
	startCtx.Request = httptest.NewRequest(http.MethodGet, "/api/users/oauth/start", nil)

	state, err := generateAndSetOAuthState(startCtx, svc.cfg)
	require.NoError(t, err)
	require.NotEmpty(t, state)

	cookies := startRec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "oauth_state", cookies[0].Name)
	assert.Equal(t, state, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	// Second request: the callback reads the cookie back and clears it.
	cbRec := httptest.NewRecorder()
	cbCtx, _ := gin.CreateTestContext(cbRec)
	cbCtx.Request = httptest.NewRequest(http.MethodGet, "/api/users/oauth/callback", nil)
	cbCtx.Request.AddCookie(cookies[0])

	stored, err := getOAuthCookie(cbCtx, svc.cfg, svc.cfg.OAuthStateCookieName)
	require.NoError(t, err)
	assert.Equal(t, state, stored)

	cleared := cbRec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge, "the state cookie is single-use")
}

func TestGetGoogleLoginURL_EmbedsState(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newTestOAuthService()

	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/api/users/oauth/start", nil)

	authURL, err := svc.GetGoogleLoginURL(ctx)
	require.NoError(t, err)
	assert.Contains(t, authURL, "accounts.google.com")
	assert.Contains(t, authURL, "client_id=client-id")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Contains(t, authURL, "state="+cookies[0].Value)
}
