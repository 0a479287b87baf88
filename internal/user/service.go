// File: internal/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"notes_app_backend/internal/common"
	"notes_app_backend/internal/config"
	"notes_app_backend/internal/mail"
	"notes_app_backend/internal/platform/crypto"
	"notes_app_backend/internal/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	otpLength = 6

	otpMailSubject = "Your Verification Code"
)

// ServiceImplementation implements the shared.Service interface.
type ServiceImplementation struct {
	repo   Repository
	mailer mail.Mailer
	cfg    *config.Config
	logger *zap.Logger
	now    func() time.Time
}

var _ shared.Service = (*ServiceImplementation)(nil)

// NewService creates a new user service.
func NewService(
	repo Repository,
	mailer mail.Mailer,
	cfg *config.Config,
	logger *zap.Logger,
) *ServiceImplementation {
	return &ServiceImplementation{
		repo:   repo,
		mailer: mailer,
		cfg:    cfg,
		logger: logger.Named("UserService"),
		now:    time.Now,
	}
}

// Register creates a new user with a pending verification code and dispatches
// the code by email. The user and code are persisted before delivery is
// attempted: a mailer failure surfaces as a delivery error, and the recovery
// path is a login-OTP request (resend), never a second registration.
func (s *ServiceImplementation) Register(ctx context.Context, req shared.CreateUserRequest) (*shared.User, error) {
	_, err := s.repo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, common.ErrConflict.WithDetails("User with this email already exists.")
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user by email: %w", err)
	}

	code, err := crypto.GenerateNumericOTP(otpLength)
	if err != nil {
		s.logger.Error("Failed to generate OTP", zap.Error(err))
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}

	expiresAt := s.now().Add(s.cfg.OTPExpiry)
	dob := req.DOB
	dbUser := &User{
		Email:        req.Email,
		Name:         req.Name,
		DOB:          &dob,
		OTPCode:      &code,
		OTPExpiresAt: &expiresAt,
	}

	if err := s.repo.Create(ctx, dbUser); err != nil {
		if apiErr, ok := common.IsAPIError(err); ok {
			return nil, apiErr
		}
		s.logger.Error("Failed to create user in repository", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.sendOTPMail(ctx, dbUser.Email, code); err != nil {
		// The user and code are already persisted; report the delivery
		// failure without rolling anything back.
		s.logger.Error("Failed to deliver registration OTP", zap.Error(err), zap.String("userID", dbUser.ID.String()))
		return nil, common.ErrDeliveryFailed
	}

	s.logger.Info("User registered, verification code sent", zap.String("userID", dbUser.ID.String()))
	return DBToShared(dbUser), nil
}

// RequestLoginOTP issues a fresh verification code for an existing user.
func (s *ServiceImplementation) RequestLoginOTP(ctx context.Context, email string) error {
	dbUser, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound.WithDetails("No account found with this email. Please register first.")
		}
		s.logger.Error("Error finding user for login OTP", zap.Error(err), zap.String("email", email))
		return common.ErrInternalServer.WithDetails("Could not process login request.")
	}

	code, err := crypto.GenerateNumericOTP(otpLength)
	if err != nil {
		s.logger.Error("Failed to generate OTP", zap.Error(err))
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	expiresAt := s.now().Add(s.cfg.OTPExpiry)
	if err := s.repo.SetOTP(ctx, dbUser.ID, code, expiresAt); err != nil {
		s.logger.Error("Failed to store login OTP", zap.Error(err), zap.String("userID", dbUser.ID.String()))
		return common.ErrInternalServer.WithDetails("Could not process login request.")
	}

	if err := s.sendOTPMail(ctx, dbUser.Email, code); err != nil {
		s.logger.Error("Failed to deliver login OTP", zap.Error(err), zap.String("userID", dbUser.ID.String()))
		return common.ErrDeliveryFailed
	}

	s.logger.Info("Login OTP sent", zap.String("userID", dbUser.ID.String()))
	return nil
}

// VerifyOTP consumes a pending code exactly once. Wrong code, expired code
// and unknown email all collapse into the same error so callers cannot probe
// account existence.
func (s *ServiceImplementation) VerifyOTP(ctx context.Context, email, code string) (*shared.User, error) {
	dbUser, err := s.repo.ConsumeOTP(ctx, email, code, s.now())
	if err != nil {
		if errors.Is(err, common.ErrInvalidOrExpiredOTP) {
			return nil, common.ErrInvalidOrExpiredOTP
		}
		s.logger.Error("Error consuming OTP", zap.Error(err), zap.String("email", email))
		return nil, common.ErrInternalServer.WithDetails("Verification failed due to an internal error.")
	}

	s.logger.Info("OTP verified", zap.String("userID", dbUser.ID.String()))
	return DBToShared(dbUser), nil
}

// FindOrCreateOrLinkOAuthUser resolves an external identity to a local user:
// by provider subject first, then by email (linking the identity onto the
// existing account), and finally by creating a new record.
func (s *ServiceImplementation) FindOrCreateOrLinkOAuthUser(ctx context.Context, profile shared.OAuthUserProfile) (*shared.User, bool, error) {
	if profile.Email == "" {
		return nil, false, common.ErrProviderData.WithDetails("The identity provider did not supply an email address.")
	}
	if profile.ProviderID == "" {
		return nil, false, common.ErrProviderData.WithDetails("The identity provider did not supply a subject identifier.")
	}

	// Fast path: returning OAuth user.
	dbUser, err := s.repo.FindByGoogleID(ctx, profile.ProviderID)
	if err == nil {
		return DBToShared(dbUser), false, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up user by Google ID: %w", err)
	}

	// Link path: an account registered through the OTP flow with the same
	// email adopts the external identity. First writer wins; the identity is
	// never overwritten once set.
	dbUser, err = s.repo.FindByEmail(ctx, profile.Email)
	if err == nil {
		if err := s.repo.LinkGoogleID(ctx, dbUser.ID, profile.ProviderID); err != nil {
			s.logger.Error("Failed to link Google identity", zap.Error(err), zap.String("userID", dbUser.ID.String()))
			return nil, false, err
		}
		googleID := profile.ProviderID
		dbUser.GoogleID = &googleID
		s.logger.Info("Linked Google identity to existing account", zap.String("userID", dbUser.ID.String()))
		return DBToShared(dbUser), false, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up user by email: %w", err)
	}

	// Create path: first contact with this identity and email.
	googleID := profile.ProviderID
	dbUser = &User{
		Email:    profile.Email,
		Name:     profile.Name,
		GoogleID: &googleID,
	}
	if err := s.repo.Create(ctx, dbUser); err != nil {
		s.logger.Error("Failed to create user from OAuth profile", zap.Error(err), zap.String("email", profile.Email))
		return nil, false, err
	}

	s.logger.Info("Created user from OAuth profile", zap.String("userID", dbUser.ID.String()))
	return DBToShared(dbUser), true, nil
}

func (s *ServiceImplementation) GetUserByID(ctx context.Context, id uuid.UUID) (*shared.User, error) {
	dbUser, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return DBToShared(dbUser), nil
}

func (s *ServiceImplementation) GetUserByEmail(ctx context.Context, email string) (*shared.User, error) {
	dbUser, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return DBToShared(dbUser), nil
}

func (s *ServiceImplementation) sendOTPMail(ctx context.Context, to, code string) error {
	return s.mailer.Send(ctx, mail.Message{
		To:      to,
		Subject: otpMailSubject,
		Body:    fmt.Sprintf("Your verification code is: %s", code),
	})
}
