package mocks

import (
	"fmt"
	"time"

	"github.com/CianCode/Emetals-Web-App/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateSessionTokenFunc func(userID uint, role string, sessionID string) (string, error)
	ValidateSessionTokenFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateSessionToken creates a session token
func (m *MockTokenService) GenerateSessionToken(userID uint, role string, sessionID string) (string, error) {
	if m.GenerateSessionTokenFunc != nil {
		return m.GenerateSessionTokenFunc(userID, role, sessionID)
	}
	// Default behavior: deterministic token
	return fmt.Sprintf("session_token_%d_%s", userID, sessionID), nil
}

// ValidateSessionToken validates a session token
func (m *MockTokenService) ValidateSessionToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateSessionTokenFunc != nil {
		return m.ValidateSessionTokenFunc(token)
	}
	// Default behavior: valid user claims
	now := time.Now()
	return &domain.TokenClaims{
		UserID:    1,
		Role:      "user",
		SessionID: "mock_session_id",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(time.Hour).Unix(),
	}, nil
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
