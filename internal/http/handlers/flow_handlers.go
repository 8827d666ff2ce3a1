package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/CianCode/Emetals-Web-App/domain"
	"github.com/CianCode/Emetals-Web-App/internal/flow"
)

// FlowHandlers drives the multi-step auth journeys over HTTP. Each flow
// instance lives in Redis under an opaque ID; the browser posts events and
// renders the state that comes back.
type FlowHandlers struct {
	authSvc    domain.AuthService
	store      *flow.Store
	cookieName string
	logger     *slog.Logger
}

// NewFlowHandlers creates new flow handlers
func NewFlowHandlers(authSvc domain.AuthService, store *flow.Store, cookieName string, logger *slog.Logger) *FlowHandlers {
	return &FlowHandlers{
		authSvc:    authSvc,
		store:      store,
		cookieName: cookieName,
		logger:     logger,
	}
}

// EventRequest is the wire form of a flow event.
type EventRequest struct {
	Type            string `json:"type" binding:"required"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Code            string `json:"code"`
}

func (r EventRequest) toEvent() (flow.Event, error) {
	switch r.Type {
	case "submit_registration":
		return flow.SubmitRegistration{
			Name:            r.Name,
			Email:           r.Email,
			Password:        r.Password,
			ConfirmPassword: r.ConfirmPassword,
		}, nil
	case "submit_login":
		return flow.SubmitLogin{Email: r.Email, Password: r.Password}, nil
	case "submit_email":
		return flow.SubmitEmail{Email: r.Email}, nil
	case "submit_otp":
		return flow.SubmitOTP{Code: r.Code}, nil
	case "submit_new_password":
		return flow.SubmitNewPassword{Password: r.Password, ConfirmPassword: r.ConfirmPassword}, nil
	case "resend":
		return flow.ResendRequested{}, nil
	case "tick":
		return flow.Tick{}, nil
	case "back":
		return flow.Back{}, nil
	}
	return nil, fmt.Errorf("unknown event type %q", r.Type)
}

// Start creates a new flow instance at its initial step.
func (h *FlowHandlers) Start(c *gin.Context) {
	def, ok := flow.ByKind(flow.Kind(c.Param("kind")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown flow"})
		return
	}

	id := uuid.New().String()
	now := time.Now()
	state := def.Initial()

	if err := h.store.Save(c.Request.Context(), id, flow.Snap(def.Kind(), state, now)); err != nil {
		h.logger.Error("flow save failed", "flow", def.Kind(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start flow"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"flow_id": id,
			"state":   stateView(def.Kind(), state, now, nil),
		},
	})
}

// Get returns the current state of a flow.
func (h *FlowHandlers) Get(c *gin.Context) {
	def, ok := flow.ByKind(flow.Kind(c.Param("kind")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown flow"})
		return
	}

	now := time.Now()
	sn, err := h.store.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLoadError(c, err)
		return
	}
	if sn.Kind != def.Kind() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Flow not found"})
		return
	}

	state, err := sn.State(now)
	if err != nil {
		h.logger.Error("flow restore failed", "flow", def.Kind(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load flow"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"state": stateView(def.Kind(), state, now, nil)},
	})
}

// Event applies one event to a flow, executing any auth-service calls it
// triggers, and persists the resulting state.
func (h *FlowHandlers) Event(c *gin.Context) {
	def, ok := flow.ByKind(flow.Kind(c.Param("kind")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown flow"})
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ev, err := req.toEvent()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	now := time.Now()

	sn, err := h.store.Load(c.Request.Context(), id)
	if err != nil {
		h.respondLoadError(c, err)
		return
	}
	if sn.Kind != def.Kind() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Flow not found"})
		return
	}
	state, err := sn.State(now)
	if err != nil {
		h.logger.Error("flow restore failed", "flow", def.Kind(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load flow"})
		return
	}

	engine := flow.NewEngine(def, h.authSvc, h.logger)
	res := engine.Step(c.Request.Context(), state, ev)

	if res.Auth != nil {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(h.cookieName, res.Auth.SessionToken, int(res.Auth.ExpiresIn), "/", "", false, true)
	}

	if err := h.store.Save(c.Request.Context(), id, flow.Snap(def.Kind(), res.State, now)); err != nil {
		h.logger.Error("flow save failed", "flow", def.Kind(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save flow"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"state": stateView(def.Kind(), res.State, now, res.Effects)},
	})
}

func (h *FlowHandlers) respondLoadError(c *gin.Context, err error) {
	if errors.Is(err, flow.ErrFlowNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Flow not found"})
		return
	}
	h.logger.Error("flow load failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load flow"})
}

// stateView flattens a flow state plus pending effects into the JSON shape
// the pages render.
func stateView(kind flow.Kind, s flow.State, now time.Time, effects []flow.Command) gin.H {
	sn := flow.Snap(kind, s, now)

	resendIn := 0
	if sn.ResendDeadline > 0 {
		if remaining := sn.ResendDeadline - now.Unix(); remaining > 0 {
			resendIn = int(remaining)
		}
	}

	view := gin.H{
		"step":       sn.Step,
		"loading":    sn.Loading,
		"can_resend": resendIn == 0,
	}
	if sn.Email != "" {
		view["email"] = sn.Email
	}
	if sn.Step == flow.StepOTP {
		view["resend_in"] = resendIn
	}
	if len(sn.FieldErrors) > 0 {
		view["field_errors"] = sn.FieldErrors
	}
	if sn.Alert.Kind != flow.AlertNone {
		view["alert"] = sn.Alert
	}

	for _, eff := range effects {
		switch e := eff.(type) {
		case flow.Redirect:
			view["redirect"] = gin.H{"to": e.To, "after_ms": e.After.Milliseconds()}
		case flow.ReturnToLogin:
			view["redirect"] = gin.H{"to": "/login", "after_ms": 0}
		}
	}

	return view
}
