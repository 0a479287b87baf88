// File: internal/user/repository.go
package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"notes_app_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for user data operations.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*User, error)
	Update(ctx context.Context, user *User) error
	// SetOTP stores a fresh code and expiry on the user, replacing any
	// previous pending code.
	SetOTP(ctx context.Context, userID uuid.UUID, code string, expiresAt time.Time) error
	// ConsumeOTP atomically clears the pending code where the stored code
	// matches and the stored expiry is still in the future, then returns the
	// user. Zero matching rows yields ErrInvalidOrExpiredOTP regardless of
	// the reason (wrong code, expired code, or unknown email).
	ConsumeOTP(ctx context.Context, email, code string, now time.Time) (*User, error)
	// LinkGoogleID sets the external identity on a user that has none.
	// A user already linked to a different identity is a conflict.
	LinkGoogleID(ctx context.Context, userID uuid.UUID, googleID string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM user repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Create inserts a new user record into the database.
func (r *gormRepository) Create(ctx context.Context, user *User) error {
	user.Email = strings.TrimSpace(user.Email)
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrConflict.WithDetails("User with this email already exists.")
		}
		return err
	}
	return nil
}

// FindByEmail retrieves a user by their email address.
func (r *gormRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var userModel User
	err := r.db.WithContext(ctx).Where("email = ?", strings.TrimSpace(email)).First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("User not found with this email.")
		}
		return nil, err
	}
	return &userModel, nil
}

// FindByID retrieves a user by their ID.
func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var userModel User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("User not found with this ID.")
		}
		return nil, err
	}
	return &userModel, nil
}

// FindByGoogleID retrieves a user by their linked Google subject ID.
func (r *gormRepository) FindByGoogleID(ctx context.Context, googleID string) (*User, error) {
	var userModel User
	err := r.db.WithContext(ctx).Where("google_id = ?", googleID).First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("User not found with this Google account.")
		}
		return nil, err
	}
	return &userModel, nil
}

// Update modifies an existing user record in the database.
func (r *gormRepository) Update(ctx context.Context, user *User) error {
	user.Email = strings.TrimSpace(user.Email)
	err := r.db.WithContext(ctx).Save(user).Error
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrConflict.WithDetails("Update failed: email or Google account already taken.")
		}
		return err
	}
	return nil
}

// SetOTP stores a fresh verification code and expiry on the user record.
func (r *gormRepository) SetOTP(ctx context.Context, userID uuid.UUID, code string, expiresAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"otp_code":       code,
			"otp_expires_at": expiresAt,
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("User not found with this ID.")
	}
	return nil
}

// ConsumeOTP clears a matching, unexpired code in a single conditional
// UPDATE. The condition and the clear run as one statement, so two
// concurrent verifications of the same code can never both succeed: the
// second observes zero affected rows and gets the collapsed error.
func (r *gormRepository) ConsumeOTP(ctx context.Context, email, code string, now time.Time) (*User, error) {
	email = strings.TrimSpace(email)
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("email = ? AND otp_code = ? AND otp_expires_at > ?", email, code, now).
		Updates(map[string]interface{}{
			"otp_code":       nil,
			"otp_expires_at": nil,
			"updated_at":     now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, common.ErrInvalidOrExpiredOTP
	}
	return r.FindByEmail(ctx, email)
}

// LinkGoogleID attaches the external identity to a user that has no link yet.
func (r *gormRepository) LinkGoogleID(ctx context.Context, userID uuid.UUID, googleID string) error {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ? AND google_id IS NULL", userID).
		Updates(map[string]interface{}{
			"google_id":  googleID,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return common.ErrConflict.WithDetails("This Google account is already linked to another user.")
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		// First writer wins: the user either does not exist or is already
		// linked to a different identity.
		return common.ErrConflict.WithDetails("User is already linked to a Google account.")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
