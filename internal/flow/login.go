package flow

import (
	"github.com/CianCode/Emetals-Web-App/internal/validation"
)

// Login drives the sign-in journey: FORM -> SUCCESS. Password recovery is a
// separate flow; the storefront swaps the active view without tearing this
// one down, so "forgot password" never appears as an event here.
type Login struct{}

func (Login) Kind() Kind { return KindLogin }

func (Login) Initial() State {
	return State{Step: LoginForm{}}
}

func (Login) Reduce(s State, ev Event) (State, []Command) {
	switch s.Step.(type) {
	case LoginForm:
		return reduceLoginForm(s, ev)
	case LoginSuccess:
		return s, nil
	}
	return s, nil
}

func reduceLoginForm(s State, ev Event) (State, []Command) {
	switch e := ev.(type) {
	case SubmitLogin:
		if s.Loading {
			return s, nil
		}
		if errs := validation.Login(e.Email, e.Password); !errs.Valid() {
			return s.withFieldErrors(errs), nil
		}
		// Remember-me is fixed true: sessions are long-lived by design.
		return s.withLoading(), []Command{Call{
			Kind:     CallSignIn,
			Email:    e.Email,
			Password: e.Password,
			Remember: true,
		}}

	case CallSucceeded:
		if e.Call.Kind != CallSignIn {
			return s, nil
		}
		next := s.cleared()
		next.Step = LoginSuccess{Email: e.Call.Email}
		next.Alert = successAlert("Signed in. Redirecting to your dashboard...")
		return next, []Command{Redirect{To: "/dashboard", After: RedirectDelay}}

	case CallFailed:
		if e.Call.Kind != CallSignIn {
			return s, nil
		}
		if isUnverifiedEmail(e.Err) {
			return s.withAlert(errorAlert(
				"Your email is not verified yet. Check your inbox for the verification code.",
			)), nil
		}
		if isBadCredentials(e.Err) {
			// Deliberately vague: never reveal which of the two fields was
			// wrong.
			next := s.withAlert(errorAlert("Invalid email or password"))
			next.FieldErrors = validation.Fields{
				validation.FieldPassword: "Check your email and password",
			}
			return next, nil
		}
		return s.withAlert(errorAlert(e.Err.Error())), nil
	}
	return s, nil
}
