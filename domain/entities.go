package domain

import "time"

// User represents a storefront customer account
type User struct {
	ID            uint
	Name          string
	Email         string
	PasswordHash  string `gorm:"column:password"`
	Phone         string
	Role          string
	Image         string
	IsActive      bool
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Credentials represents a sign-up or sign-in submission. Transient: built
// per request and discarded once transmitted.
type Credentials struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// AuthResult represents a successful sign-in outcome
type AuthResult struct {
	User         *User
	SessionToken string
	SessionID    string
	ExpiresIn    int64
}

// OTPPurpose scopes a one-time code to the flow that requested it
type OTPPurpose string

const (
	PurposeEmailVerification OTPPurpose = "email-verification"
	PurposePasswordReset     OTPPurpose = "password-reset"
)

// OTPRequest represents an issued one-time code
type OTPRequest struct {
	Email     string
	Purpose   OTPPurpose
	Code      string
	ExpiresAt time.Time
	Attempts  int
}

// Session represents a user session. The browser only ever sees the opaque
// token; the route guard reads cookie presence, never the content.
type Session struct {
	ID        string
	UserID    uint
	Remember  bool
	ExpiresAt time.Time
	CreatedAt time.Time
}
