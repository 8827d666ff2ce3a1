package mocks

import (
	"context"
	"time"

	"github.com/CianCode/Emetals-Web-App/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	GenerateFunc  func(ctx context.Context, email string, purpose domain.OTPPurpose) (*domain.OTPRequest, error)
	VerifyFunc    func(ctx context.Context, email string, purpose domain.OTPPurpose, code string) error
	CanResendFunc func(ctx context.Context, email string, purpose domain.OTPPurpose) (bool, int64, error)
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Generate issues a new code
func (m *MockOTPService) Generate(ctx context.Context, email string, purpose domain.OTPPurpose) (*domain.OTPRequest, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, email, purpose)
	}
	// Default behavior: success
	return &domain.OTPRequest{
		Email:     email,
		Purpose:   purpose,
		Code:      "123456",
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}, nil
}

// Verify checks a submitted code
func (m *MockOTPService) Verify(ctx context.Context, email string, purpose domain.OTPPurpose, code string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, email, purpose, code)
	}
	// Default behavior: success
	return nil
}

// CanResend reports whether the resend window has elapsed
func (m *MockOTPService) CanResend(ctx context.Context, email string, purpose domain.OTPPurpose) (bool, int64, error) {
	if m.CanResendFunc != nil {
		return m.CanResendFunc(ctx, email, purpose)
	}
	// Default behavior: resend allowed
	return true, 0, nil
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
