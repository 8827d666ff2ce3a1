package flow

import (
	"context"
	"strings"
	"testing"

	"github.com/CianCode/Emetals-Web-App/domain"
	"github.com/CianCode/Emetals-Web-App/internal/mocks"
	"github.com/CianCode/Emetals-Web-App/internal/validation"
)

func TestLoginHappyPath(t *testing.T) {
	auth := mocks.NewMockAuthService()
	engine := newTestEngine(Login{}, auth)

	res := engine.Step(context.Background(), Login{}.Initial(), SubmitLogin{
		Email:    "jane@example.com",
		Password: "Str0ng!pass",
	})

	success, ok := res.State.Step.(LoginSuccess)
	if !ok {
		t.Fatalf("step = %T, want LoginSuccess", res.State.Step)
	}
	if success.Email != "jane@example.com" {
		t.Errorf("success email = %q", success.Email)
	}

	r, ok := findRedirect(res.Effects)
	if !ok {
		t.Fatal("expected Redirect effect")
	}
	if r.To != "/dashboard" || r.After != RedirectDelay {
		t.Errorf("redirect = %+v", r)
	}

	// The sign-in result must surface so the caller can set the cookie.
	if res.Auth == nil {
		t.Fatal("expected auth result")
	}
	if res.Auth.SessionToken == "" {
		t.Error("auth result missing session token")
	}
}

func TestLoginRemembersByDefault(t *testing.T) {
	auth := mocks.NewMockAuthService()
	var remembered bool
	auth.LoginFunc = func(ctx context.Context, email, password string, rememberMe bool) (*domain.AuthResult, error) {
		remembered = rememberMe
		return &domain.AuthResult{
			User:         &domain.User{ID: 1, Email: email},
			SessionToken: "tok",
			SessionID:    "sid",
			ExpiresIn:    3600,
		}, nil
	}
	engine := newTestEngine(Login{}, auth)

	engine.Step(context.Background(), Login{}.Initial(), SubmitLogin{
		Email:    "jane@example.com",
		Password: "Str0ng!pass",
	})
	if !remembered {
		t.Error("login must request a remembered session")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	auth := mocks.NewMockAuthService()
	auth.LoginFunc = func(ctx context.Context, email, password string, rememberMe bool) (*domain.AuthResult, error) {
		return nil, domain.ErrInvalidCredentials
	}
	engine := newTestEngine(Login{}, auth)

	res := engine.Step(context.Background(), Login{}.Initial(), SubmitLogin{
		Email:    "jane@example.com",
		Password: "wrong",
	})

	if res.State.Step.Kind() != StepForm {
		t.Errorf("step = %v, want FORM", res.State.Step.Kind())
	}
	if res.State.Alert.Message != "Invalid email or password" {
		t.Errorf("alert = %q", res.State.Alert.Message)
	}
	if res.State.FieldErrors[validation.FieldPassword] != "Check your email and password" {
		t.Errorf("password error = %q", res.State.FieldErrors[validation.FieldPassword])
	}
	if res.Auth != nil {
		t.Error("failed login must not produce an auth result")
	}
}

func TestLoginUnverifiedEmail(t *testing.T) {
	auth := mocks.NewMockAuthService()
	auth.LoginFunc = func(ctx context.Context, email, password string, rememberMe bool) (*domain.AuthResult, error) {
		return nil, domain.ErrEmailNotVerified
	}
	engine := newTestEngine(Login{}, auth)

	res := engine.Step(context.Background(), Login{}.Initial(), SubmitLogin{
		Email:    "jane@example.com",
		Password: "Str0ng!pass",
	})

	if res.State.Alert.Kind != AlertError {
		t.Fatalf("alert = %+v, want error", res.State.Alert)
	}
	if !strings.Contains(res.State.Alert.Message, "not verified") {
		t.Errorf("alert should explain verification: %q", res.State.Alert.Message)
	}
}

func TestLoginValidationOnly(t *testing.T) {
	auth := mocks.NewMockAuthService()
	engine := newTestEngine(Login{}, auth)

	res := engine.Step(context.Background(), Login{}.Initial(), SubmitLogin{})
	if len(auth.Calls) != 0 {
		t.Errorf("auth service called with empty fields: %v", auth.Calls)
	}
	if res.State.FieldErrors[validation.FieldEmail] == "" || res.State.FieldErrors[validation.FieldPassword] == "" {
		t.Errorf("missing field errors: %v", res.State.FieldErrors)
	}

	// A short password is not a format error at login.
	res = engine.Step(context.Background(), Login{}.Initial(), SubmitLogin{
		Email:    "jane@example.com",
		Password: "old",
	})
	if len(auth.Calls) != 1 {
		t.Errorf("legacy password rejected before the service call: %v", auth.Calls)
	}
}
