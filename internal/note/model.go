// File: internal/note/model.go
package note

import (
	"time"

	"notes_app_backend/internal/common"

	"github.com/google/uuid"
)

// Note represents a note owned by a single user.
type Note struct {
	common.BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Content string    `gorm:"type:text;not null"`
}

// TableName specifies the table name for the Note model.
func (Note) TableName() string {
	return "notes"
}

// --- DTOs ---

// CreateNoteRequest defines the structure for creating a note.
type CreateNoteRequest struct {
	Content string `json:"content" binding:"required"`
}

// NoteResponse defines the structure for note data sent in API responses.
type NoteResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToNoteResponse converts a Note model to a NoteResponse DTO.
func ToNoteResponse(n *Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
