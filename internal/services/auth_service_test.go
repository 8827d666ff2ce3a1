package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/CianCode/Emetals-Web-App/domain"
	"github.com/CianCode/Emetals-Web-App/internal/mocks"
)

type authFixture struct {
	userRepo    *mocks.MockUserRepository
	sessionRepo *mocks.MockSessionRepository
	passwordSvc *mocks.MockPasswordService
	tokenSvc    *mocks.MockTokenService
	otpSvc      *mocks.MockOTPService
	svc         domain.AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		userRepo:    mocks.NewMockUserRepository(),
		sessionRepo: mocks.NewMockSessionRepository(),
		passwordSvc: mocks.NewMockPasswordService(),
		tokenSvc:    mocks.NewMockTokenService(),
		otpSvc:      mocks.NewMockOTPService(),
	}
	f.svc = NewAuthService(f.userRepo, f.sessionRepo, f.passwordSvc, f.tokenSvc, f.otpSvc,
		time.Hour, 30*24*time.Hour)
	return f
}

func verifiedUser() *domain.User {
	return &domain.User{
		ID:            1,
		Name:          "Jane Doe",
		Email:         "jane@example.com",
		PasswordHash:  "hashed_Str0ng!pass",
		Role:          "user",
		IsActive:      true,
		EmailVerified: true,
	}
}

func TestRegisterCreatesUnverifiedUser(t *testing.T) {
	f := newAuthFixture()

	var created *domain.User
	f.userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
		user.ID = 7
		created = user
		return nil
	}
	var otpPurpose domain.OTPPurpose
	f.otpSvc.GenerateFunc = func(ctx context.Context, email string, purpose domain.OTPPurpose) (*domain.OTPRequest, error) {
		otpPurpose = purpose
		return &domain.OTPRequest{Email: email, Purpose: purpose, Code: "123456"}, nil
	}

	user, err := f.svc.Register(context.Background(), "Jane Doe", "jane@example.com", "", "Str0ng!pass")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID != 7 {
		t.Errorf("user ID = %d", user.ID)
	}
	if created.EmailVerified {
		t.Error("new account must start unverified")
	}
	if !created.IsActive {
		t.Error("new account must start active")
	}
	if created.PasswordHash == "Str0ng!pass" {
		t.Error("password stored in plain text")
	}
	if created.Role != "user" {
		t.Errorf("role = %q", created.Role)
	}
	if otpPurpose != domain.PurposeEmailVerification {
		t.Errorf("otp purpose = %q", otpPurpose)
	}
}

func TestRegisterStoresOptionalPhone(t *testing.T) {
	f := newAuthFixture()

	var created *domain.User
	f.userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
		created = user
		return nil
	}

	_, err := f.svc.Register(context.Background(), "Jane Doe", "jane@example.com", "+15551230001", "Str0ng!pass")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.Phone != "+15551230001" {
		t.Errorf("phone = %q", created.Phone)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return verifiedUser(), nil
	}

	_, err := f.svc.Register(context.Background(), "Jane Doe", "jane@example.com", "", "Str0ng!pass")
	if !errors.Is(err, domain.ErrUserAlreadyExists) {
		t.Fatalf("err = %v, want ErrUserAlreadyExists", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	f := newAuthFixture()
	f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return verifiedUser(), nil
	}

	var createdSession *domain.Session
	f.sessionRepo.CreateFunc = func(ctx context.Context, session *domain.Session) error {
		createdSession = session
		return nil
	}

	res, err := f.svc.Login(context.Background(), "jane@example.com", "Str0ng!pass", false)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.SessionToken == "" || res.SessionID == "" {
		t.Errorf("incomplete auth result: %+v", res)
	}
	if res.ExpiresIn != int64(time.Hour.Seconds()) {
		t.Errorf("expires in = %d, want %d", res.ExpiresIn, int64(time.Hour.Seconds()))
	}
	if createdSession == nil || createdSession.Remember {
		t.Errorf("session = %+v", createdSession)
	}
}

func TestLoginRememberExtendsSession(t *testing.T) {
	f := newAuthFixture()
	f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return verifiedUser(), nil
	}

	res, err := f.svc.Login(context.Background(), "jane@example.com", "Str0ng!pass", true)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.ExpiresIn != int64((30 * 24 * time.Hour).Seconds()) {
		t.Errorf("expires in = %d", res.ExpiresIn)
	}
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.User)
		missing bool
		wantErr error
	}{
		{"unknown email", nil, true, domain.ErrInvalidCredentials},
		{"inactive account", func(u *domain.User) { u.IsActive = false }, false, domain.ErrUserInactive},
		{"unverified email", func(u *domain.User) { u.EmailVerified = false }, false, domain.ErrEmailNotVerified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			if !tt.missing {
				user := verifiedUser()
				if tt.mutate != nil {
					tt.mutate(user)
				}
				f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return user, nil
				}
			}

			_, err := f.svc.Login(context.Background(), "jane@example.com", "Str0ng!pass", false)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture()
	f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return verifiedUser(), nil
	}

	_, err := f.svc.Login(context.Background(), "jane@example.com", "wrong", false)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestVerifyEmailOTPMarksVerified(t *testing.T) {
	f := newAuthFixture()
	user := verifiedUser()
	user.EmailVerified = false
	f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return user, nil
	}

	var markedID uint
	f.userRepo.MarkEmailVerifiedFunc = func(ctx context.Context, userID uint) error {
		markedID = userID
		return nil
	}

	if err := f.svc.VerifyEmailOTP(context.Background(), "jane@example.com", "123456"); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if markedID != user.ID {
		t.Errorf("marked user = %d, want %d", markedID, user.ID)
	}
}

func TestVerifyEmailOTPPropagatesCodeErrors(t *testing.T) {
	f := newAuthFixture()
	f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return verifiedUser(), nil
	}
	f.otpSvc.VerifyFunc = func(ctx context.Context, email string, purpose domain.OTPPurpose, code string) error {
		return domain.ErrOTPInvalid
	}

	err := f.svc.VerifyEmailOTP(context.Background(), "jane@example.com", "000000")
	if !errors.Is(err, domain.ErrOTPInvalid) {
		t.Fatalf("err = %v, want ErrOTPInvalid", err)
	}
}

func TestResetPasswordRevokesSessions(t *testing.T) {
	f := newAuthFixture()
	f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return verifiedUser(), nil
	}

	var resetPurpose domain.OTPPurpose
	f.otpSvc.VerifyFunc = func(ctx context.Context, email string, purpose domain.OTPPurpose, code string) error {
		resetPurpose = purpose
		return nil
	}
	var newHash string
	f.userRepo.UpdatePasswordFunc = func(ctx context.Context, userID uint, passwordHash string) error {
		newHash = passwordHash
		return nil
	}
	var revokedUser uint
	f.sessionRepo.DeleteByUserFunc = func(ctx context.Context, userID uint) error {
		revokedUser = userID
		return nil
	}

	err := f.svc.ResetPasswordWithOTP(context.Background(), "jane@example.com", "654321", "N3w!secret")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if resetPurpose != domain.PurposePasswordReset {
		t.Errorf("otp purpose = %q", resetPurpose)
	}
	if newHash == "N3w!secret" || newHash == "" {
		t.Errorf("password hash = %q", newHash)
	}
	if revokedUser != 1 {
		t.Errorf("revoked user = %d, want 1", revokedUser)
	}
}

func TestResetPasswordRejectedCodeKeepsPassword(t *testing.T) {
	f := newAuthFixture()
	f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return verifiedUser(), nil
	}
	f.otpSvc.VerifyFunc = func(ctx context.Context, email string, purpose domain.OTPPurpose, code string) error {
		return domain.ErrOTPExpired
	}
	f.userRepo.UpdatePasswordFunc = func(ctx context.Context, userID uint, passwordHash string) error {
		t.Fatal("password updated despite rejected code")
		return nil
	}

	err := f.svc.ResetPasswordWithOTP(context.Background(), "jane@example.com", "654321", "N3w!secret")
	if !errors.Is(err, domain.ErrOTPExpired) {
		t.Fatalf("err = %v, want ErrOTPExpired", err)
	}
}

func TestGetSessionUserMismatch(t *testing.T) {
	f := newAuthFixture()
	f.tokenSvc.ValidateSessionTokenFunc = func(token string) (*domain.TokenClaims, error) {
		return &domain.TokenClaims{UserID: 1, SessionID: "s1"}, nil
	}
	f.sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
		return &domain.Session{ID: "s1", UserID: 2}, nil
	}

	_, _, err := f.svc.GetSession(context.Background(), "token")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestGetSessionSuccess(t *testing.T) {
	f := newAuthFixture()
	f.tokenSvc.ValidateSessionTokenFunc = func(token string) (*domain.TokenClaims, error) {
		return &domain.TokenClaims{UserID: 1, Role: "user", SessionID: "s1"}, nil
	}
	f.sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
		return &domain.Session{ID: "s1", UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}, nil
	}
	f.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return verifiedUser(), nil
	}

	user, session, err := f.svc.GetSession(context.Background(), "token")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if user.ID != 1 || session.ID != "s1" {
		t.Errorf("user = %+v, session = %+v", user, session)
	}
}

func TestLogoutDeletesSession(t *testing.T) {
	f := newAuthFixture()
	var deleted string
	f.sessionRepo.DeleteFunc = func(ctx context.Context, sessionID string) error {
		deleted = sessionID
		return nil
	}

	if err := f.svc.Logout(context.Background(), "s1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if deleted != "s1" {
		t.Errorf("deleted = %q, want s1", deleted)
	}
}
