package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/CianCode/Emetals-Web-App/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
	sessionTTL  time.Duration
	rememberTTL time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	sessionTTL, rememberTTL time.Duration,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		sessionTTL:  sessionTTL,
		rememberTTL: rememberTTL,
	}
}

// Register implements domain.AuthService. The account is created unverified;
// a verification code goes out to the submitted address. Phone is optional
// and only enables the SMS delivery channel for codes.
func (s *AuthServiceImpl) Register(ctx context.Context, name, email, phone, password string) (*domain.User, error) {
	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existingUser != nil {
		return nil, domain.ErrUserAlreadyExists
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:          name,
		Email:         email,
		Phone:         phone,
		PasswordHash:  hashedPassword,
		Role:          "user",
		IsActive:      true,
		EmailVerified: false,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if _, err := s.otpSvc.Generate(ctx, email, domain.PurposeEmailVerification); err != nil {
		return nil, fmt.Errorf("failed to send OTP: %w", err)
	}

	return user, nil
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string, rememberMe bool) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	if !user.EmailVerified {
		return nil, domain.ErrEmailNotVerified
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	ttl := s.sessionTTL
	if rememberMe {
		ttl = s.rememberTTL
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Remember:  rememberMe,
		ExpiresAt: time.Now().Add(ttl),
		CreatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.tokenSvc.GenerateSessionToken(user.ID, user.Role, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		SessionToken: token,
		SessionID:    session.ID,
		ExpiresIn:    int64(ttl.Seconds()),
	}, nil
}

// VerifyEmailOTP implements domain.AuthService
func (s *AuthServiceImpl) VerifyEmailOTP(ctx context.Context, email, code string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return domain.ErrUserNotFound
	}

	if err := s.otpSvc.Verify(ctx, email, domain.PurposeEmailVerification, code); err != nil {
		return err
	}

	return s.userRepo.MarkEmailVerified(ctx, user.ID)
}

// ResendOTP implements domain.AuthService
func (s *AuthServiceImpl) ResendOTP(ctx context.Context, email string, purpose domain.OTPPurpose) error {
	if _, err := s.userRepo.FindByEmail(ctx, email); err != nil {
		return domain.ErrUserNotFound
	}

	_, err := s.otpSvc.Generate(ctx, email, purpose)
	return err
}

// SendPasswordResetOTP implements domain.AuthService
func (s *AuthServiceImpl) SendPasswordResetOTP(ctx context.Context, email string) error {
	if _, err := s.userRepo.FindByEmail(ctx, email); err != nil {
		return domain.ErrUserNotFound
	}

	_, err := s.otpSvc.Generate(ctx, email, domain.PurposePasswordReset)
	return err
}

// ResetPasswordWithOTP implements domain.AuthService. The code is checked
// only here, not at the intermediate flow step, so this is the single point
// where a stale or mistyped code surfaces.
func (s *AuthServiceImpl) ResetPasswordWithOTP(ctx context.Context, email, code, newPassword string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return domain.ErrUserNotFound
	}

	if err := s.otpSvc.Verify(ctx, email, domain.PurposePasswordReset, code); err != nil {
		return err
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	// Changing the password invalidates every live session for the account.
	return s.sessionRepo.DeleteByUser(ctx, user.ID)
}

// GetSession implements domain.AuthService
func (s *AuthServiceImpl) GetSession(ctx context.Context, token string) (*domain.User, *domain.Session, error) {
	claims, err := s.tokenSvc.ValidateSessionToken(token)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		return nil, nil, err
	}

	if session.UserID != claims.UserID {
		return nil, nil, domain.ErrSessionNotFound
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Delete(ctx, sessionID)
}
