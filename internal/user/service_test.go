// File: internal/user/service_test.go
package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"notes_app_backend/internal/common"
	"notes_app_backend/internal/config"
	"notes_app_backend/internal/mail"
	"notes_app_backend/internal/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockRepository is a func-field mock of the Repository interface.
type mockRepository struct {
	CreateFunc         func(ctx context.Context, user *User) error
	FindByEmailFunc    func(ctx context.Context, email string) (*User, error)
	FindByIDFunc       func(ctx context.Context, id uuid.UUID) (*User, error)
	FindByGoogleIDFunc func(ctx context.Context, googleID string) (*User, error)
	UpdateFunc         func(ctx context.Context, user *User) error
	SetOTPFunc         func(ctx context.Context, userID uuid.UUID, code string, expiresAt time.Time) error
	ConsumeOTPFunc     func(ctx context.Context, email, code string, now time.Time) (*User, error)
	LinkGoogleIDFunc   func(ctx context.Context, userID uuid.UUID, googleID string) error
}

func (m *mockRepository) Create(ctx context.Context, user *User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}
func (m *mockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, common.ErrNotFound
}
func (m *mockRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, common.ErrNotFound
}
func (m *mockRepository) FindByGoogleID(ctx context.Context, googleID string) (*User, error) {
	if m.FindByGoogleIDFunc != nil {
		return m.FindByGoogleIDFunc(ctx, googleID)
	}
	return nil, common.ErrNotFound
}
func (m *mockRepository) Update(ctx context.Context, user *User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}
func (m *mockRepository) SetOTP(ctx context.Context, userID uuid.UUID, code string, expiresAt time.Time) error {
	if m.SetOTPFunc != nil {
		return m.SetOTPFunc(ctx, userID, code, expiresAt)
	}
	return nil
}
func (m *mockRepository) ConsumeOTP(ctx context.Context, email, code string, now time.Time) (*User, error) {
	if m.ConsumeOTPFunc != nil {
		return m.ConsumeOTPFunc(ctx, email, code, now)
	}
	return nil, common.ErrInvalidOrExpiredOTP
}
func (m *mockRepository) LinkGoogleID(ctx context.Context, userID uuid.UUID, googleID string) error {
	if m.LinkGoogleIDFunc != nil {
		return m.LinkGoogleIDFunc(ctx, userID, googleID)
	}
	return nil
}

// mockMailer records sent messages and can be told to fail.
type mockMailer struct {
	sent    []mail.Message
	sendErr error
}

func (m *mockMailer) Send(ctx context.Context, msg mail.Message) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, msg)
	return nil
}

func newTestService(repo Repository, mailer mail.Mailer) *ServiceImplementation {
	logger := zap.NewNop()
	cfg := &config.Config{OTPExpiry: 10 * time.Minute}
	return NewService(repo, mailer, cfg, logger)
}

func TestRegister_Success(t *testing.T) {
	var created *User
	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, user *User) error {
			user.ID = uuid.New()
			created = user
			return nil
		},
	}
	mailer := &mockMailer{}
	svc := newTestService(repo, mailer)

	usr, err := svc.Register(context.Background(), shared.CreateUserRequest{
		Name:  "Jordan",
		Email: "jordan@example.com",
		DOB:   "1990-04-02",
	})
	require.NoError(t, err)
	require.NotNil(t, usr)
	assert.Equal(t, "jordan@example.com", usr.Email)

	require.NotNil(t, created)
	require.NotNil(t, created.OTPCode, "a pending code must be stored at registration")
	assert.Len(t, *created.OTPCode, 6)
	require.NotNil(t, created.OTPExpiresAt)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), *created.OTPExpiresAt, time.Minute)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "jordan@example.com", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].Body, *created.OTPCode)
}

func TestRegister_ExistingEmailConflicts(t *testing.T) {
	repo := &mockRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*User, error) {
			return &User{Email: email}, nil
		},
	}
	svc := newTestService(repo, &mockMailer{})

	_, err := svc.Register(context.Background(), shared.CreateUserRequest{
		Name:  "Jordan",
		Email: "jordan@example.com",
		DOB:   "1990-04-02",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConflict))
}

func TestRegister_DeliveryFailureAfterPersist(t *testing.T) {
	persisted := false
	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, user *User) error {
			user.ID = uuid.New()
			persisted = true
			return nil
		},
	}
	mailer := &mockMailer{sendErr: errors.New("smtp: connection refused")}
	svc := newTestService(repo, mailer)

	_, err := svc.Register(context.Background(), shared.CreateUserRequest{
		Name:  "Jordan",
		Email: "jordan@example.com",
		DOB:   "1990-04-02",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrDeliveryFailed))
	assert.True(t, persisted, "the user and code must survive a mail failure")
}

func TestRequestLoginOTP_UnknownEmail(t *testing.T) {
	svc := newTestService(&mockRepository{}, &mockMailer{})

	err := svc.RequestLoginOTP(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestRequestLoginOTP_ReplacesPendingCode(t *testing.T) {
	userID := uuid.New()
	var storedCode string
	repo := &mockRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*User, error) {
			return &User{BaseModel: common.BaseModel{ID: userID}, Email: email}, nil
		},
		SetOTPFunc: func(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
			assert.Equal(t, userID, id)
			storedCode = code
			return nil
		},
	}
	mailer := &mockMailer{}
	svc := newTestService(repo, mailer)

	err := svc.RequestLoginOTP(context.Background(), "jordan@example.com")
	require.NoError(t, err)
	assert.Len(t, storedCode, 6)
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].Body, storedCode)
}

func TestVerifyOTP_Success(t *testing.T) {
	userID := uuid.New()
	repo := &mockRepository{
		ConsumeOTPFunc: func(ctx context.Context, email, code string, now time.Time) (*User, error) {
			return &User{BaseModel: common.BaseModel{ID: userID}, Email: email, Name: "Jordan"}, nil
		},
	}
	svc := newTestService(repo, &mockMailer{})

	usr, err := svc.VerifyOTP(context.Background(), "jordan@example.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, userID, usr.ID)
}

func TestVerifyOTP_InvalidCollapsesReasons(t *testing.T) {
	svc := newTestService(&mockRepository{}, &mockMailer{})

	// The default mock returns the collapsed error for any input, mirroring
	// the repository behavior for wrong code, expired code and unknown email.
	_, err := svc.VerifyOTP(context.Background(), "jordan@example.com", "000000")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidOrExpiredOTP))
}

func TestFindOrCreateOrLinkOAuthUser_ExistingGoogleID(t *testing.T) {
	userID := uuid.New()
	googleID := "google-sub-1"
	repo := &mockRepository{
		FindByGoogleIDFunc: func(ctx context.Context, id string) (*User, error) {
			return &User{BaseModel: common.BaseModel{ID: userID}, Email: "jordan@example.com", GoogleID: &googleID}, nil
		},
	}
	svc := newTestService(repo, &mockMailer{})

	usr, wasCreated, err := svc.FindOrCreateOrLinkOAuthUser(context.Background(), shared.OAuthUserProfile{
		Provider:   "google",
		ProviderID: googleID,
		Email:      "jordan@example.com",
		Name:       "Jordan",
	})
	require.NoError(t, err)
	assert.False(t, wasCreated)
	assert.Equal(t, userID, usr.ID)
}

func TestFindOrCreateOrLinkOAuthUser_LinksByEmail(t *testing.T) {
	userID := uuid.New()
	linked := ""
	repo := &mockRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*User, error) {
			return &User{BaseModel: common.BaseModel{ID: userID}, Email: email, Name: "Jordan"}, nil
		},
		LinkGoogleIDFunc: func(ctx context.Context, id uuid.UUID, googleID string) error {
			assert.Equal(t, userID, id)
			linked = googleID
			return nil
		},
	}
	svc := newTestService(repo, &mockMailer{})

	usr, wasCreated, err := svc.FindOrCreateOrLinkOAuthUser(context.Background(), shared.OAuthUserProfile{
		Provider:   "google",
		ProviderID: "google-sub-2",
		Email:      "jordan@example.com",
		Name:       "Jordan",
	})
	require.NoError(t, err)
	assert.False(t, wasCreated)
	assert.Equal(t, "google-sub-2", linked)
	require.NotNil(t, usr.GoogleID)
	assert.Equal(t, "google-sub-2", *usr.GoogleID)
}

func TestFindOrCreateOrLinkOAuthUser_CreatesNewUser(t *testing.T) {
	var created *User
	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, user *User) error {
			user.ID = uuid.New()
			created = user
			return nil
		},
	}
	svc := newTestService(repo, &mockMailer{})

	usr, wasCreated, err := svc.FindOrCreateOrLinkOAuthUser(context.Background(), shared.OAuthUserProfile{
		Provider:   "google",
		ProviderID: "google-sub-3",
		Email:      "new@example.com",
		Name:       "New User",
	})
	require.NoError(t, err)
	assert.True(t, wasCreated)
	require.NotNil(t, created)
	require.NotNil(t, created.GoogleID)
	assert.Equal(t, "google-sub-3", *created.GoogleID)
	assert.Nil(t, created.OTPCode, "OAuth-created users never carry a pending code")
	assert.Equal(t, "new@example.com", usr.Email)
}

func TestFindOrCreateOrLinkOAuthUser_MissingEmail(t *testing.T) {
	svc := newTestService(&mockRepository{}, &mockMailer{})

	_, _, err := svc.FindOrCreateOrLinkOAuthUser(context.Background(), shared.OAuthUserProfile{
		Provider:   "google",
		ProviderID: "google-sub-4",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrProviderData))
}
