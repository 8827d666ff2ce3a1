package flow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CianCode/Emetals-Web-App/internal/validation"
)

// ErrFlowNotFound is returned when no stored flow exists for an ID.
var ErrFlowNotFound = errors.New("flow not found")

// Snapshot is the serializable form of a flow state. The resend countdown
// is stored as an absolute deadline so the remaining seconds survive the
// trip through Redis without a ticker running server-side.
type Snapshot struct {
	Kind           Kind              `json:"kind"`
	Step           StepKind          `json:"step"`
	Email          string            `json:"email,omitempty"`
	Code           string            `json:"code,omitempty"`
	ResendDeadline int64             `json:"resend_deadline,omitempty"`
	Loading        bool              `json:"loading"`
	FieldErrors    map[string]string `json:"field_errors,omitempty"`
	Alert          Alert             `json:"alert"`
}

// Snap captures a flow state at a point in time.
func Snap(kind Kind, s State, now time.Time) Snapshot {
	sn := Snapshot{
		Kind:        kind,
		Step:        s.Step.Kind(),
		Loading:     s.Loading,
		FieldErrors: s.FieldErrors,
		Alert:       s.Alert,
	}

	deadline := func(c Countdown) int64 {
		if c.Remaining == 0 {
			return 0
		}
		return now.Add(time.Duration(c.Remaining) * time.Second).Unix()
	}

	switch step := s.Step.(type) {
	case RegOTP:
		sn.Email = step.Email
		sn.ResendDeadline = deadline(step.Countdown)
	case RegSuccess:
		sn.Email = step.Email
	case LoginSuccess:
		sn.Email = step.Email
	case RecoveryOTP:
		sn.Email = step.Email
		sn.ResendDeadline = deadline(step.Countdown)
	case RecoveryReset:
		sn.Email = step.Email
		sn.Code = step.Code
	}

	return sn
}

// State rebuilds the flow state, deriving the countdown from the stored
// deadline.
func (sn Snapshot) State(now time.Time) (State, error) {
	s := State{
		Loading:     sn.Loading,
		FieldErrors: validation.Fields(sn.FieldErrors),
		Alert:       sn.Alert,
	}

	countdown := Countdown{}
	if sn.ResendDeadline > 0 {
		if remaining := sn.ResendDeadline - now.Unix(); remaining > 0 {
			countdown.Remaining = int(remaining)
		}
	}

	switch sn.Kind {
	case KindRegistration:
		switch sn.Step {
		case StepForm:
			s.Step = RegForm{}
		case StepOTP:
			s.Step = RegOTP{Email: sn.Email, Countdown: countdown}
		case StepSuccess:
			s.Step = RegSuccess{Email: sn.Email}
		}
	case KindLogin:
		switch sn.Step {
		case StepForm:
			s.Step = LoginForm{}
		case StepSuccess:
			s.Step = LoginSuccess{Email: sn.Email}
		}
	case KindRecovery:
		switch sn.Step {
		case StepEmail:
			s.Step = RecoveryEmail{}
		case StepOTP:
			s.Step = RecoveryOTP{Email: sn.Email, Countdown: countdown}
		case StepReset:
			s.Step = RecoveryReset{Email: sn.Email, Code: sn.Code}
		case StepSuccess:
			s.Step = RecoverySuccess{}
		}
	}

	if s.Step == nil {
		return State{}, fmt.Errorf("unknown step %q for flow %q", sn.Step, sn.Kind)
	}
	return s, nil
}

// Store persists flow snapshots in Redis so a browser can drive a flow
// across requests.
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewStore creates a flow store. TTL bounds how long an abandoned flow
// lingers.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, prefix: "flow:", ttl: ttl}
}

// Save writes a snapshot under the flow ID.
func (st *Store) Save(ctx context.Context, id string, sn Snapshot) error {
	data, err := json.Marshal(sn)
	if err != nil {
		return fmt.Errorf("failed to marshal flow snapshot: %w", err)
	}
	return st.client.Set(ctx, st.prefix+id, data, st.ttl).Err()
}

// Load reads a snapshot by flow ID.
func (st *Store) Load(ctx context.Context, id string) (Snapshot, error) {
	data, err := st.client.Get(ctx, st.prefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, ErrFlowNotFound
	}
	if err != nil {
		return Snapshot{}, err
	}

	var sn Snapshot
	if err := json.Unmarshal([]byte(data), &sn); err != nil {
		return Snapshot{}, fmt.Errorf("failed to unmarshal flow snapshot: %w", err)
	}
	return sn, nil
}

// Delete removes a finished or abandoned flow.
func (st *Store) Delete(ctx context.Context, id string) error {
	return st.client.Del(ctx, st.prefix+id).Err()
}
