// File: internal/note/repository.go
package note

import (
	"context"
	"errors"

	"notes_app_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for note data operations.
type Repository interface {
	Create(ctx context.Context, note *Note) error
	FindByID(ctx context.Context, id uuid.UUID) (*Note, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]Note, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM note repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, note *Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Note, error) {
	var noteModel Note
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&noteModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Note not found.")
		}
		return nil, err
	}
	return &noteModel, nil
}

func (r *gormRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]Note, error) {
	var notes []Note
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Note{}, "id = ?", id).Error
}
