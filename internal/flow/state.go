package flow

import "github.com/CianCode/Emetals-Web-App/internal/validation"

// Kind names one of the three multi-step journeys.
type Kind string

const (
	KindRegistration Kind = "registration"
	KindLogin        Kind = "login"
	KindRecovery     Kind = "recovery"
)

// StepKind tags the step a flow is currently on.
type StepKind string

const (
	StepForm    StepKind = "FORM"
	StepEmail   StepKind = "EMAIL"
	StepOTP     StepKind = "OTP_VERIFICATION"
	StepReset   StepKind = "RESET_PASSWORD"
	StepSuccess StepKind = "SUCCESS"
)

// Step is a tagged variant: each concrete step carries exactly the data that
// step needs, so states like "success but pending otp" cannot be built.
type Step interface {
	Kind() StepKind
}

// Registration flow steps.

type RegForm struct{}

type RegOTP struct {
	Email     string
	Countdown Countdown
}

type RegSuccess struct {
	Email string
}

func (RegForm) Kind() StepKind    { return StepForm }
func (RegOTP) Kind() StepKind     { return StepOTP }
func (RegSuccess) Kind() StepKind { return StepSuccess }

// Login flow steps.

type LoginForm struct{}

type LoginSuccess struct {
	Email string
}

func (LoginForm) Kind() StepKind    { return StepForm }
func (LoginSuccess) Kind() StepKind { return StepSuccess }

// Recovery flow steps.

type RecoveryEmail struct{}

type RecoveryOTP struct {
	Email     string
	Countdown Countdown
}

// RecoveryReset carries the code forward unverified; the server checks it
// only at the final reset call.
type RecoveryReset struct {
	Email string
	Code  string
}

type RecoverySuccess struct{}

func (RecoveryEmail) Kind() StepKind   { return StepEmail }
func (RecoveryOTP) Kind() StepKind     { return StepOTP }
func (RecoveryReset) Kind() StepKind   { return StepReset }
func (RecoverySuccess) Kind() StepKind { return StepSuccess }

// AlertKind distinguishes the two alert slots; only one is meaningful at a
// time.
type AlertKind string

const (
	AlertNone    AlertKind = ""
	AlertError   AlertKind = "error"
	AlertSuccess AlertKind = "success"
)

type Alert struct {
	Kind    AlertKind `json:"kind"`
	Message string    `json:"message"`
}

func errorAlert(msg string) Alert   { return Alert{Kind: AlertError, Message: msg} }
func successAlert(msg string) Alert { return Alert{Kind: AlertSuccess, Message: msg} }

// State is the complete record of one flow instance. Loading gates
// resubmission: while an external call is in flight no submit event is
// accepted.
type State struct {
	Step        Step
	Loading     bool
	FieldErrors validation.Fields
	Alert       Alert
}

func (s State) withLoading() State {
	s.Loading = true
	s.FieldErrors = nil
	s.Alert = Alert{}
	return s
}

func (s State) withFieldErrors(errs validation.Fields) State {
	s.Loading = false
	s.FieldErrors = errs
	s.Alert = Alert{}
	return s
}

func (s State) withAlert(a Alert) State {
	s.Loading = false
	s.FieldErrors = nil
	s.Alert = a
	return s
}

func (s State) cleared() State {
	s.Loading = false
	s.FieldErrors = nil
	s.Alert = Alert{}
	return s
}
