package flow

// ResendWindowSeconds is how long the resend action stays disabled after a
// code is sent.
const ResendWindowSeconds = 60

// Countdown gates the resend action. It starts at the window size and
// decrements once per tick; resend is enabled exactly when it reaches zero.
type Countdown struct {
	Remaining int `json:"remaining"`
}

func NewCountdown() Countdown {
	return Countdown{Remaining: ResendWindowSeconds}
}

// Tick decrements by one second, never below zero.
func (c Countdown) Tick() Countdown {
	if c.Remaining > 0 {
		c.Remaining--
	}
	return c
}

// Done reports whether the resend action is available.
func (c Countdown) Done() bool { return c.Remaining == 0 }
