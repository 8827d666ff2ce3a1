package flow

// Event is a user action, a timer tick, or the outcome of an external call.
type Event interface {
	event()
}

// SubmitRegistration carries the sign-up form fields.
type SubmitRegistration struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// SubmitLogin carries the sign-in form fields.
type SubmitLogin struct {
	Email    string
	Password string
}

// SubmitEmail carries the recovery email form.
type SubmitEmail struct {
	Email string
}

// SubmitOTP carries a one-time code entry.
type SubmitOTP struct {
	Code string
}

// SubmitNewPassword carries the reset form fields.
type SubmitNewPassword struct {
	Password        string
	ConfirmPassword string
}

// ResendRequested asks for a fresh code. Ignored while the countdown runs.
type ResendRequested struct{}

// Tick advances the resend countdown by one second.
type Tick struct{}

// Back navigates to the previous step of the flow.
type Back struct{}

// CallSucceeded reports a completed external call. It carries the original
// call so reducers can recover the submitted data without keeping partial
// state on the step that issued it.
type CallSucceeded struct {
	Call Call
}

// CallFailed reports a rejected external call.
type CallFailed struct {
	Call Call
	Err  error
}

func (SubmitRegistration) event() {}
func (SubmitLogin) event()        {}
func (SubmitEmail) event()        {}
func (SubmitOTP) event()          {}
func (SubmitNewPassword) event()  {}
func (ResendRequested) event()    {}
func (Tick) event()               {}
func (Back) event()               {}
func (CallSucceeded) event()      {}
func (CallFailed) event()         {}
