package validation

import (
	"regexp"
	"strings"
)

// Field names match the form fields the storefront renders, so an error can
// be attached to the exact input that caused it.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldOTP             = "otp"
)

const (
	maxEmailLength    = 254
	maxNameLength     = 50
	minNameLength     = 2
	minPasswordLength = 8
	maxPasswordLength = 128
	otpLength         = 6
)

var (
	nameRe  = regexp.MustCompile(`^[a-zA-Z ]+$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	otpRe   = regexp.MustCompile(`^[0-9]{6}$`)
)

// Fields maps a field name to its validation error message. An empty map
// means the input passed.
type Fields map[string]string

// Valid reports whether no field failed.
func (f Fields) Valid() bool { return len(f) == 0 }

// Name validates a display name: 2-50 characters, letters and spaces only.
func Name(name string) string {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < minNameLength {
		return "Name must be at least 2 characters"
	}
	if len(trimmed) > maxNameLength {
		return "Name must be at most 50 characters"
	}
	if !nameRe.MatchString(trimmed) {
		return "Name may only contain letters and spaces"
	}
	return ""
}

// Email validates an email address: present, RFC-bounded length, syntactic.
func Email(email string) string {
	if email == "" {
		return "Email is required"
	}
	if len(email) > maxEmailLength {
		return "Email must be at most 254 characters"
	}
	if !emailRe.MatchString(email) {
		return "Enter a valid email address"
	}
	return ""
}

// Password validates a new password: at least 8 characters with one
// lowercase, one uppercase, one digit and one symbol.
func Password(password string) string {
	if len(password) < minPasswordLength {
		return "Password must be at least 8 characters"
	}
	if len(password) > maxPasswordLength {
		return "Password must be at most 128 characters"
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	switch {
	case !hasLower:
		return "Password must contain a lowercase letter"
	case !hasUpper:
		return "Password must contain an uppercase letter"
	case !hasDigit:
		return "Password must contain a digit"
	case !hasSymbol:
		return "Password must contain a symbol"
	}
	return ""
}

// ConfirmPassword checks that the confirmation matches. The error belongs to
// the confirmation field, not the password field.
func ConfirmPassword(password, confirm string) string {
	if confirm == "" {
		return "Confirm your password"
	}
	if password != confirm {
		return "Passwords do not match"
	}
	return ""
}

// OTP validates a one-time code: exactly six ASCII digits. Anything else is
// rejected before a network call is made.
func OTP(code string) string {
	if !otpRe.MatchString(code) {
		return "Enter the 6-digit code"
	}
	return ""
}

// Registration validates a full sign-up submission.
func Registration(name, email, password, confirm string) Fields {
	errs := Fields{}
	if msg := Name(name); msg != "" {
		errs[FieldName] = msg
	}
	if msg := Email(email); msg != "" {
		errs[FieldEmail] = msg
	}
	if msg := Password(password); msg != "" {
		errs[FieldPassword] = msg
	}
	if msg := ConfirmPassword(password, confirm); msg != "" {
		errs[FieldConfirmPassword] = msg
	}
	return errs
}

// Login validates a sign-in submission. Only presence and bounded length:
// an existing account's password is never re-checked against format rules.
func Login(email, password string) Fields {
	errs := Fields{}
	if email == "" {
		errs[FieldEmail] = "Email is required"
	} else if len(email) > maxEmailLength {
		errs[FieldEmail] = "Email must be at most 254 characters"
	}
	if password == "" {
		errs[FieldPassword] = "Password is required"
	} else if len(password) > maxPasswordLength {
		errs[FieldPassword] = "Password must be at most 128 characters"
	}
	return errs
}

// NewPassword validates a reset submission (same complexity rules as
// registration).
func NewPassword(password, confirm string) Fields {
	errs := Fields{}
	if msg := Password(password); msg != "" {
		errs[FieldPassword] = msg
	}
	if msg := ConfirmPassword(password, confirm); msg != "" {
		errs[FieldConfirmPassword] = msg
	}
	return errs
}
