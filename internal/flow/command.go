package flow

import "time"

// CallKind names one of the auth-service operations a flow can request.
type CallKind string

const (
	CallSignUp        CallKind = "sign-up"
	CallSignIn        CallKind = "sign-in"
	CallVerifyEmail   CallKind = "verify-email-otp"
	CallResendOTP     CallKind = "resend-otp"
	CallSendResetOTP  CallKind = "send-password-reset-otp"
	CallResetPassword CallKind = "reset-password-with-otp"
)

// Command is an effect a reducer asks its runner to perform. Reducers stay
// pure; all I/O happens in whoever executes the commands.
type Command interface {
	command()
}

// Call invokes an auth-service operation. The runner feeds the outcome back
// as a CallSucceeded or CallFailed event.
type Call struct {
	Kind     CallKind
	Name     string
	Email    string
	// Phone is optional; the multi-step forms never collect one, but direct
	// API callers can.
	Phone    string
	Password string
	Code     string
	Remember bool
}

// StartCountdown begins (or restarts) the one-second resend ticker.
type StartCountdown struct{}

// StopCountdown halts the resend ticker.
type StopCountdown struct{}

// Redirect schedules a navigation after a fixed delay. The runner owns the
// timer and cancels it when the flow is torn down.
type Redirect struct {
	To    string
	After time.Duration
}

// ReturnToLogin hands control back to the caller-supplied login view.
type ReturnToLogin struct{}

func (Call) command()           {}
func (StartCountdown) command() {}
func (StopCountdown) command()  {}
func (Redirect) command()       {}
func (ReturnToLogin) command()  {}

// RedirectDelay is how long a success step is shown before navigating away.
const RedirectDelay = 2500 * time.Millisecond
