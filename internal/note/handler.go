// File: internal/note/handler.go
package note

import (
	"errors"

	"notes_app_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for note handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new note handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("NoteHandler"),
	}
}

// RegisterRoutes sets up the note routes behind the auth middleware.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	noteGroup := router.Group("/notes", authMW)
	{
		noteGroup.GET("", h.listNotes)
		noteGroup.POST("", h.createNote)
		noteGroup.DELETE("/:id", h.deleteNote)
	}
}

func (h *Handler) listNotes(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	notes, err := h.service.ListNotes(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	responses := make([]NoteResponse, 0, len(notes))
	for i := range notes {
		responses = append(responses, ToNoteResponse(&notes[i]))
	}
	common.RespondOK(c, "", responses)
}

func (h *Handler) createNote(c *gin.Context) {
	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	userID := common.GetUserIDFromContext(c)
	n, err := h.service.CreateNote(c.Request.Context(), userID, req.Content)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Note created.", ToNoteResponse(n))
}

func (h *Handler) deleteNote(c *gin.Context) {
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid note ID."))
		return
	}

	userID := common.GetUserIDFromContext(c)
	if err := h.service.DeleteNote(c.Request.Context(), noteID, userID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Note removed.", nil)
}
