package flow

import (
	"github.com/CianCode/Emetals-Web-App/internal/validation"
)

// Recovery drives the password-reset journey: EMAIL -> OTP_VERIFICATION ->
// RESET_PASSWORD -> SUCCESS. The OTP step only format-checks the code and
// carries it forward; the server verifies it at the final reset call, and a
// rejection there moves the machine backward to the OTP step.
type Recovery struct{}

func (Recovery) Kind() Kind { return KindRecovery }

func (Recovery) Initial() State {
	return State{Step: RecoveryEmail{}}
}

func (Recovery) Reduce(s State, ev Event) (State, []Command) {
	switch step := s.Step.(type) {
	case RecoveryEmail:
		return reduceRecoveryEmail(s, ev)
	case RecoveryOTP:
		return reduceRecoveryOTP(s, step, ev)
	case RecoveryReset:
		return reduceRecoveryReset(s, step, ev)
	case RecoverySuccess:
		return s, nil
	}
	return s, nil
}

func reduceRecoveryEmail(s State, ev Event) (State, []Command) {
	switch e := ev.(type) {
	case SubmitEmail:
		if s.Loading {
			return s, nil
		}
		if msg := validation.Email(e.Email); msg != "" {
			return s.withFieldErrors(validation.Fields{validation.FieldEmail: msg}), nil
		}
		return s.withLoading(), []Command{Call{
			Kind:  CallSendResetOTP,
			Email: e.Email,
		}}

	case Back:
		return s.cleared(), []Command{ReturnToLogin{}}

	case CallSucceeded:
		if e.Call.Kind != CallSendResetOTP {
			return s, nil
		}
		next := s.cleared()
		next.Step = RecoveryOTP{Email: e.Call.Email, Countdown: NewCountdown()}
		next.Alert = successAlert("We've sent a 6-digit code to your email")
		return next, []Command{StartCountdown{}}

	case CallFailed:
		if e.Call.Kind != CallSendResetOTP {
			return s, nil
		}
		if isNoAccount(e.Err) {
			return s.withFieldErrors(validation.Fields{
				validation.FieldEmail: "No account found with this email",
			}), nil
		}
		return s.withAlert(errorAlert(e.Err.Error())), nil
	}
	return s, nil
}

func reduceRecoveryOTP(s State, step RecoveryOTP, ev Event) (State, []Command) {
	switch e := ev.(type) {
	case SubmitOTP:
		if s.Loading {
			return s, nil
		}
		if msg := validation.OTP(e.Code); msg != "" {
			return s.withFieldErrors(validation.Fields{validation.FieldOTP: msg}), nil
		}
		// No verify round-trip here: the code is accepted locally and the
		// reset call is the single point of server-side validation.
		next := s.cleared()
		next.Step = RecoveryReset{Email: step.Email, Code: e.Code}
		return next, []Command{StopCountdown{}}

	case ResendRequested:
		if s.Loading || !step.Countdown.Done() {
			return s, nil
		}
		return s.withLoading(), []Command{Call{
			Kind:  CallSendResetOTP,
			Email: step.Email,
		}}

	case Tick:
		step.Countdown = step.Countdown.Tick()
		s.Step = step
		if step.Countdown.Done() {
			return s, []Command{StopCountdown{}}
		}
		return s, nil

	case Back:
		next := s.cleared()
		next.Step = RecoveryEmail{}
		return next, []Command{StopCountdown{}}

	case CallSucceeded:
		if e.Call.Kind != CallSendResetOTP {
			return s, nil
		}
		step.Countdown = NewCountdown()
		next := s.cleared()
		next.Step = step
		next.Alert = successAlert("A new code has been sent to your email")
		return next, []Command{StartCountdown{}}

	case CallFailed:
		if e.Call.Kind != CallSendResetOTP {
			return s, nil
		}
		return s.withAlert(errorAlert(e.Err.Error())), nil
	}
	return s, nil
}

func reduceRecoveryReset(s State, step RecoveryReset, ev Event) (State, []Command) {
	switch e := ev.(type) {
	case SubmitNewPassword:
		if s.Loading {
			return s, nil
		}
		if errs := validation.NewPassword(e.Password, e.ConfirmPassword); !errs.Valid() {
			return s.withFieldErrors(errs), nil
		}
		return s.withLoading(), []Command{Call{
			Kind:     CallResetPassword,
			Email:    step.Email,
			Code:     step.Code,
			Password: e.Password,
		}}

	case Back:
		next := s.cleared()
		next.Step = RecoveryOTP{Email: step.Email, Countdown: Countdown{}}
		return next, nil

	case CallSucceeded:
		if e.Call.Kind != CallResetPassword {
			return s, nil
		}
		next := s.cleared()
		next.Step = RecoverySuccess{}
		next.Alert = successAlert("Password updated. Redirecting to sign in...")
		return next, []Command{Redirect{To: "/login", After: RedirectDelay}}

	case CallFailed:
		if e.Call.Kind != CallResetPassword {
			return s, nil
		}
		if isOTPError(e.Err) {
			// The server rejected the carried code: step BACK to the OTP
			// step rather than blocking here.
			next := s.withAlert(errorAlert("Your code is invalid or has expired. Request a new one."))
			next.Step = RecoveryOTP{Email: step.Email, Countdown: Countdown{}}
			return next, nil
		}
		return s.withAlert(errorAlert(e.Err.Error())), nil
	}
	return s, nil
}
