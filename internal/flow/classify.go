package flow

import (
	"errors"
	"strings"

	"github.com/CianCode/Emetals-Web-App/domain"
)

// Service errors reach the flows as plain error values. Known sentinels are
// matched first; for anything foreign the message text is the only channel
// left, so a case-insensitive substring fallback decides which field, if
// any, gets the hint.

func isDuplicateEmail(err error) bool {
	if errors.Is(err, domain.ErrUserAlreadyExists) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "exist") || strings.Contains(msg, "email")
}

func isNoAccount(err error) bool {
	if errors.Is(err, domain.ErrUserNotFound) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "exist")
}

func isOTPError(err error) bool {
	if errors.Is(err, domain.ErrOTPInvalid) || errors.Is(err, domain.ErrOTPExpired) ||
		errors.Is(err, domain.ErrOTPNotFound) || errors.Is(err, domain.ErrOTPMaxAttempts) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "otp") || strings.Contains(msg, "code") ||
		strings.Contains(msg, "invalid") || strings.Contains(msg, "expired")
}

func isBadCredentials(err error) bool {
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "credential") || strings.Contains(msg, "password")
}

func isUnverifiedEmail(err error) bool {
	if errors.Is(err, domain.ErrEmailNotVerified) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "verif")
}
