package flow

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/CianCode/Emetals-Web-App/domain"
)

// Controller owns one live flow instance: its state, its resend ticker and
// its redirect timer. Events are serialized through a mutex, matching the
// single-threaded event-loop model of the storefront. Both timers are bound
// to the controller's context and die with Close, so a redirect can never
// fire for a torn-down flow.
type Controller struct {
	mu     sync.Mutex
	engine *Engine
	state  State

	ctx    context.Context
	cancel context.CancelFunc

	tickerStop    chan struct{}
	redirectTimer *time.Timer

	onRedirect      func(to string)
	onReturnToLogin func()
	lastAuth        *domain.AuthResult
	logger          *slog.Logger
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithRedirect sets the navigation callback fired after a success delay.
func WithRedirect(fn func(to string)) ControllerOption {
	return func(c *Controller) { c.onRedirect = fn }
}

// WithReturnToLogin sets the callback invoked when the recovery flow hands
// control back to the login view.
func WithReturnToLogin(fn func()) ControllerOption {
	return func(c *Controller) { c.onReturnToLogin = fn }
}

// NewController creates a controller positioned at the flow's initial step.
func NewController(def Definition, auth domain.AuthService, logger *slog.Logger, opts ...ControllerOption) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		engine: NewEngine(def, auth, logger),
		state:  def.Initial(),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current flow state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// AuthResult returns the sign-in outcome of the most recent dispatch, if
// one completed.
func (c *Controller) AuthResult() *domain.AuthResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastAuth
}

// Dispatch applies one event and executes the resulting effects.
func (c *Controller) Dispatch(ctx context.Context, ev Event) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := c.engine.Step(ctx, c.state, ev)
	c.state = res.State
	if res.Auth != nil {
		c.lastAuth = res.Auth
	}

	for _, effect := range res.Effects {
		switch eff := effect.(type) {
		case StartCountdown:
			c.startTickerLocked()
		case StopCountdown:
			c.stopTickerLocked()
		case Redirect:
			c.scheduleRedirectLocked(eff)
		case ReturnToLogin:
			if c.onReturnToLogin != nil {
				c.onReturnToLogin()
			}
		}
	}

	return c.state
}

// Close tears the flow down, cancelling the ticker and any pending
// redirect.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancel()
	c.stopTickerLocked()
	if c.redirectTimer != nil {
		c.redirectTimer.Stop()
		c.redirectTimer = nil
	}
}

func (c *Controller) startTickerLocked() {
	c.stopTickerLocked()
	stop := make(chan struct{})
	c.tickerStop = stop

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-c.ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.C:
				c.Dispatch(c.ctx, Tick{})
			}
		}
	}()
}

func (c *Controller) stopTickerLocked() {
	if c.tickerStop != nil {
		close(c.tickerStop)
		c.tickerStop = nil
	}
}

func (c *Controller) scheduleRedirectLocked(r Redirect) {
	if c.redirectTimer != nil {
		c.redirectTimer.Stop()
	}
	c.redirectTimer = time.AfterFunc(r.After, func() {
		select {
		case <-c.ctx.Done():
			return
		default:
		}
		if c.onRedirect != nil {
			c.onRedirect(r.To)
		}
	})
}
