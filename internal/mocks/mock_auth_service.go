package mocks

import (
	"context"

	"github.com/CianCode/Emetals-Web-App/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc             func(ctx context.Context, name, email, phone, password string) (*domain.User, error)
	LoginFunc                func(ctx context.Context, email, password string, rememberMe bool) (*domain.AuthResult, error)
	VerifyEmailOTPFunc       func(ctx context.Context, email, code string) error
	ResendOTPFunc            func(ctx context.Context, email string, purpose domain.OTPPurpose) error
	SendPasswordResetOTPFunc func(ctx context.Context, email string) error
	ResetPasswordWithOTPFunc func(ctx context.Context, email, code, newPassword string) error
	GetSessionFunc           func(ctx context.Context, token string) (*domain.User, *domain.Session, error)
	LogoutFunc               func(ctx context.Context, sessionID string) error

	// Calls records the order of operations invoked, for flow tests that
	// assert which service calls an event triggered.
	Calls []string
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register creates a new account
func (m *MockAuthService) Register(ctx context.Context, name, email, phone, password string) (*domain.User, error) {
	m.Calls = append(m.Calls, "Register")
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, email, phone, password)
	}
	// Default behavior: success
	return &domain.User{ID: 1, Name: name, Email: email, Phone: phone, Role: "user"}, nil
}

// Login authenticates a user
func (m *MockAuthService) Login(ctx context.Context, email, password string, rememberMe bool) (*domain.AuthResult, error) {
	m.Calls = append(m.Calls, "Login")
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password, rememberMe)
	}
	// Default behavior: success
	return &domain.AuthResult{
		User:         &domain.User{ID: 1, Email: email, Role: "user"},
		SessionToken: "mock_session_token",
		SessionID:    "mock_session_id",
		ExpiresIn:    3600,
	}, nil
}

// VerifyEmailOTP checks an email verification code
func (m *MockAuthService) VerifyEmailOTP(ctx context.Context, email, code string) error {
	m.Calls = append(m.Calls, "VerifyEmailOTP")
	if m.VerifyEmailOTPFunc != nil {
		return m.VerifyEmailOTPFunc(ctx, email, code)
	}
	// Default behavior: success
	return nil
}

// ResendOTP regenerates a code for the given purpose
func (m *MockAuthService) ResendOTP(ctx context.Context, email string, purpose domain.OTPPurpose) error {
	m.Calls = append(m.Calls, "ResendOTP")
	if m.ResendOTPFunc != nil {
		return m.ResendOTPFunc(ctx, email, purpose)
	}
	// Default behavior: success
	return nil
}

// SendPasswordResetOTP sends a password reset code
func (m *MockAuthService) SendPasswordResetOTP(ctx context.Context, email string) error {
	m.Calls = append(m.Calls, "SendPasswordResetOTP")
	if m.SendPasswordResetOTPFunc != nil {
		return m.SendPasswordResetOTPFunc(ctx, email)
	}
	// Default behavior: success
	return nil
}

// ResetPasswordWithOTP resets the password after verifying the code
func (m *MockAuthService) ResetPasswordWithOTP(ctx context.Context, email, code, newPassword string) error {
	m.Calls = append(m.Calls, "ResetPasswordWithOTP")
	if m.ResetPasswordWithOTPFunc != nil {
		return m.ResetPasswordWithOTPFunc(ctx, email, code, newPassword)
	}
	// Default behavior: success
	return nil
}

// GetSession resolves the user behind a session token
func (m *MockAuthService) GetSession(ctx context.Context, token string) (*domain.User, *domain.Session, error) {
	m.Calls = append(m.Calls, "GetSession")
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, token)
	}
	// Default behavior: not found
	return nil, nil, domain.ErrSessionNotFound
}

// Logout destroys a session
func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	m.Calls = append(m.Calls, "Logout")
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
