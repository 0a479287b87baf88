// File: internal/user/model.go
package user

import (
	"time"

	"notes_app_backend/internal/common" // For BaseModel
	"notes_app_backend/internal/shared"

	"github.com/google/uuid"
)

// User represents the user model in the database.
//
// OTPCode and OTPExpiresAt are set together while a verification is pending
// and cleared together, atomically, when the code is consumed. A row never
// carries one without the other.
type User struct {
	common.BaseModel         // Embeds ID, CreatedAt, UpdatedAt
	Email            string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name             string  `gorm:"type:varchar(255);not null"`
	DOB              *string `gorm:"type:varchar(32)"`
	GoogleID         *string `gorm:"type:varchar(255);uniqueIndex"` // Set at most once, when OAuth first links
	OTPCode          *string `gorm:"type:varchar(6)"`
	OTPExpiresAt     *time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// --- DTOs (Data Transfer Objects) for API requests/responses ---

// RegisterRequest defines the structure for registering a new user.
type RegisterRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Email string `json:"email" binding:"required,email"`
	DOB   string `json:"dob" binding:"required"`
}

// LoginRequest defines the structure for requesting a login OTP.
type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyOTPRequest defines the structure for submitting a verification code.
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

// VerifiedUserResponse is returned after a successful OTP verification.
type VerifiedUserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Token string    `json:"token"`
}

// DBToShared converts a GORM user model to the shared representation.
// OTP state is intentionally not carried over.
func DBToShared(u *User) *shared.User {
	return &shared.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		DOB:       u.DOB,
		GoogleID:  u.GoogleID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
