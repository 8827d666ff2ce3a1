package flow

import (
	"context"
	"log/slog"

	"github.com/CianCode/Emetals-Web-App/domain"
)

// Definition is one flow's pure state machine.
type Definition interface {
	Kind() Kind
	Initial() State
	Reduce(State, Event) (State, []Command)
}

// ByKind returns the flow definition for a kind.
func ByKind(k Kind) (Definition, bool) {
	switch k {
	case KindRegistration:
		return Registration{}, true
	case KindLogin:
		return Login{}, true
	case KindRecovery:
		return Recovery{}, true
	}
	return nil, false
}

// Result is the outcome of advancing a flow by one event.
type Result struct {
	State   State
	Effects []Command
	// Auth is set when a sign-in completed during this step, so the caller
	// can issue the session cookie.
	Auth *domain.AuthResult
}

// Engine advances a flow's state machine, executing Call commands against
// the auth service and feeding their outcomes back into the reducer.
// Commands the engine cannot execute itself (timers, redirects) come back
// as effects for the caller.
type Engine struct {
	def    Definition
	auth   domain.AuthService
	logger *slog.Logger
}

func NewEngine(def Definition, auth domain.AuthService, logger *slog.Logger) *Engine {
	return &Engine{def: def, auth: auth, logger: logger}
}

func (e *Engine) Definition() Definition { return e.def }

// Step applies one event. Calls run synchronously: the flow permits one
// in-flight call at a time, and the loading flag in the reducer already
// rejects concurrent submissions.
func (e *Engine) Step(ctx context.Context, s State, ev Event) Result {
	res := Result{}
	state, cmds := e.def.Reduce(s, ev)

	for len(cmds) > 0 {
		cmd := cmds[0]
		cmds = cmds[1:]

		call, ok := cmd.(Call)
		if !ok {
			res.Effects = append(res.Effects, cmd)
			continue
		}

		auth, err := e.invoke(ctx, call)
		var outcome Event
		if err != nil {
			e.logger.Info("flow call failed",
				"flow", e.def.Kind(), "call", call.Kind, "error", err)
			outcome = CallFailed{Call: call, Err: err}
		} else {
			outcome = CallSucceeded{Call: call}
			if auth != nil {
				res.Auth = auth
			}
		}

		var more []Command
		state, more = e.def.Reduce(state, outcome)
		cmds = append(cmds, more...)
	}

	res.State = state
	return res
}

func (e *Engine) invoke(ctx context.Context, c Call) (*domain.AuthResult, error) {
	switch c.Kind {
	case CallSignUp:
		_, err := e.auth.Register(ctx, c.Name, c.Email, c.Phone, c.Password)
		return nil, err
	case CallSignIn:
		return e.auth.Login(ctx, c.Email, c.Password, c.Remember)
	case CallVerifyEmail:
		return nil, e.auth.VerifyEmailOTP(ctx, c.Email, c.Code)
	case CallResendOTP:
		return nil, e.auth.ResendOTP(ctx, c.Email, domain.PurposeEmailVerification)
	case CallSendResetOTP:
		return nil, e.auth.SendPasswordResetOTP(ctx, c.Email)
	case CallResetPassword:
		return nil, e.auth.ResetPasswordWithOTP(ctx, c.Email, c.Code, c.Password)
	}
	return nil, nil
}
