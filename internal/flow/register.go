package flow

import (
	"github.com/CianCode/Emetals-Web-App/internal/validation"
)

// Registration drives the sign-up journey: FORM -> OTP_VERIFICATION ->
// SUCCESS. The reducer is pure; every transition is a function of the
// current state and one event.
type Registration struct{}

func (Registration) Kind() Kind { return KindRegistration }

func (Registration) Initial() State {
	return State{Step: RegForm{}}
}

func (Registration) Reduce(s State, ev Event) (State, []Command) {
	switch step := s.Step.(type) {
	case RegForm:
		return reduceRegForm(s, ev)
	case RegOTP:
		return reduceRegOTP(s, step, ev)
	case RegSuccess:
		// Terminal: the confirmation renders until the redirect fires.
		return s, nil
	}
	return s, nil
}

func reduceRegForm(s State, ev Event) (State, []Command) {
	switch e := ev.(type) {
	case SubmitRegistration:
		if s.Loading {
			return s, nil
		}
		if errs := validation.Registration(e.Name, e.Email, e.Password, e.ConfirmPassword); !errs.Valid() {
			return s.withFieldErrors(errs), nil
		}
		return s.withLoading(), []Command{Call{
			Kind:     CallSignUp,
			Name:     e.Name,
			Email:    e.Email,
			Password: e.Password,
		}}

	case CallSucceeded:
		if e.Call.Kind != CallSignUp {
			return s, nil
		}
		next := s.cleared()
		next.Step = RegOTP{Email: e.Call.Email, Countdown: NewCountdown()}
		next.Alert = successAlert("We've sent a 6-digit code to your email")
		return next, []Command{StartCountdown{}}

	case CallFailed:
		if e.Call.Kind != CallSignUp {
			return s, nil
		}
		if isDuplicateEmail(e.Err) {
			return s.withFieldErrors(validation.Fields{
				validation.FieldEmail: "An account with this email already exists",
			}), nil
		}
		return s.withAlert(errorAlert(e.Err.Error())), nil
	}
	return s, nil
}

func reduceRegOTP(s State, step RegOTP, ev Event) (State, []Command) {
	switch e := ev.(type) {
	case SubmitOTP:
		if s.Loading {
			return s, nil
		}
		if msg := validation.OTP(e.Code); msg != "" {
			return s.withFieldErrors(validation.Fields{validation.FieldOTP: msg}), nil
		}
		return s.withLoading(), []Command{Call{
			Kind:  CallVerifyEmail,
			Email: step.Email,
			Code:  e.Code,
		}}

	case ResendRequested:
		if s.Loading || !step.Countdown.Done() {
			return s, nil
		}
		return s.withLoading(), []Command{Call{
			Kind:  CallResendOTP,
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
		next.Step = RegForm{}
		return next, []Command{StopCountdown{}}

	case CallSucceeded:
		switch e.Call.Kind {
		case CallVerifyEmail:
			next := s.cleared()
			next.Step = RegSuccess{Email: step.Email}
			next.Alert = successAlert("Account verified. Redirecting to sign in...")
			return next, []Command{StopCountdown{}, Redirect{To: "/login", After: RedirectDelay}}
		case CallResendOTP:
			step.Countdown = NewCountdown()
			next := s.cleared()
			next.Step = step
			next.Alert = successAlert("A new code has been sent to your email")
			return next, []Command{StartCountdown{}}
		}
		return s, nil

	case CallFailed:
		switch e.Call.Kind {
		case CallVerifyEmail:
			return s.withFieldErrors(validation.Fields{
				validation.FieldOTP: "Invalid or expired code",
			}), nil
		case CallResendOTP:
			return s.withAlert(errorAlert(e.Err.Error())), nil
		}
		return s, nil
	}
	return s, nil
}
