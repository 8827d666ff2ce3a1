package domain

import "context"

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
	MarkEmailVerified(ctx context.Context, userID uint) error
	List(ctx context.Context, offset, limit int) ([]*User, error)
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteByUser(ctx context.Context, userID uint) error
}

// AuthService defines the authentication boundary the flows talk to
type AuthService interface {
	Register(ctx context.Context, name, email, phone, password string) (*User, error)
	Login(ctx context.Context, email, password string, rememberMe bool) (*AuthResult, error)
	VerifyEmailOTP(ctx context.Context, email, code string) error
	ResendOTP(ctx context.Context, email string, purpose OTPPurpose) error
	SendPasswordResetOTP(ctx context.Context, email string) error
	ResetPasswordWithOTP(ctx context.Context, email, code, newPassword string) error
	GetSession(ctx context.Context, token string) (*User, *Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// OTPService defines one-time code operations
type OTPService interface {
	Generate(ctx context.Context, email string, purpose OTPPurpose) (*OTPRequest, error)
	Verify(ctx context.Context, email string, purpose OTPPurpose, code string) error
	CanResend(ctx context.Context, email string, purpose OTPPurpose) (bool, int64, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines session token operations
type TokenService interface {
	GenerateSessionToken(userID uint, role string, sessionID string) (string, error)
	ValidateSessionToken(token string) (*TokenClaims, error)
}

// NotificationService defines outbound message delivery
type NotificationService interface {
	SendEmail(to, subject, body string) error
	SendSMS(to, message string) error
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// TokenClaims represents session token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	SessionID string `json:"session_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// CasbinEnforcer defines the methods we need from the Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
