// File: internal/note/service.go
package note

import (
	"context"
	"strings"

	"notes_app_backend/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for note business logic.
type Service interface {
	ListNotes(ctx context.Context, userID uuid.UUID) ([]Note, error)
	CreateNote(ctx context.Context, userID uuid.UUID, content string) (*Note, error)
	DeleteNote(ctx context.Context, noteID, userID uuid.UUID) error
}

type serviceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new note service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &serviceImplementation{
		repo:   repo,
		logger: logger.Named("NoteService"),
	}
}

func (s *serviceImplementation) ListNotes(ctx context.Context, userID uuid.UUID) ([]Note, error) {
	notes, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list notes", zap.Error(err), zap.String("userID", userID.String()))
		return nil, common.ErrInternalServer.WithDetails("Could not load notes.")
	}
	return notes, nil
}

func (s *serviceImplementation) CreateNote(ctx context.Context, userID uuid.UUID, content string) (*Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, common.ErrBadRequest.WithDetails("Note content cannot be empty.")
	}

	n := &Note{
		UserID:  userID,
		Content: content,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("Failed to create note", zap.Error(err), zap.String("userID", userID.String()))
		return nil, common.ErrInternalServer.WithDetails("Could not save the note.")
	}
	return n, nil
}

// DeleteNote removes a note after checking ownership. A note owned by
// another user is rejected as unauthorized, not hidden as missing.
func (s *serviceImplementation) DeleteNote(ctx context.Context, noteID, userID uuid.UUID) error {
	n, err := s.repo.FindByID(ctx, noteID)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return common.ErrUnauthorized.WithDetails("User not authorized.")
	}
	if err := s.repo.Delete(ctx, noteID); err != nil {
		s.logger.Error("Failed to delete note", zap.Error(err), zap.String("noteID", noteID.String()))
		return common.ErrInternalServer.WithDetails("Could not delete the note.")
	}
	return nil
}
