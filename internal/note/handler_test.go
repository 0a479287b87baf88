// File: internal/note/handler_test.go
package note

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"notes_app_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func setupNoteRouter(repo Repository, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewHandler(NewService(repo, zap.NewNop()), zap.NewNop())
	fakeAuth := func(c *gin.Context) {
		c.Set(common.UserIDKey, userID)
		c.Next()
	}
	api := router.Group("/api")
	handler.RegisterRoutes(api, fakeAuth)
	return router
}

func postRaw(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateNoteEndpoint_MalformedJSON(t *testing.T) {
	router := setupNoteRouter(&mockRepository{}, uuid.New())

	rec := postRaw(router, `{"content": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	// A parse failure reports the decoding problem, not a content complaint.
	assert.NotContains(t, rec.Body.String(), "Note content cannot be empty.")
}

func TestCreateNoteEndpoint_MissingContent(t *testing.T) {
	router := setupNoteRouter(&mockRepository{}, uuid.New())

	rec := postRaw(router, `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestCreateNoteEndpoint_Created(t *testing.T) {
	userID := uuid.New()
	repo := &mockRepository{}
	router := setupNoteRouter(repo, userID)

	rec := postRaw(router, `{"content":"remember the milk"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "remember the milk")
	assert.Contains(t, rec.Body.String(), userID.String())
}
