package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CianCode/Emetals-Web-App/internal/config"
	httpx "github.com/CianCode/Emetals-Web-App/internal/http"
	"github.com/CianCode/Emetals-Web-App/internal/http/handlers"
	"github.com/CianCode/Emetals-Web-App/internal/http/middleware"
	"github.com/CianCode/Emetals-Web-App/internal/logging"
)

// Run wires the container into the HTTP surface and serves until the
// listener fails or the process receives an interrupt.
func Run(cfg *config.Config) error {
	logger := logging.New("info")

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(c.AuthSvc, cfg.SessionCookie, logger)
	flowH := handlers.NewFlowHandlers(c.AuthSvc, c.FlowStore, cfg.SessionCookie, logger)
	polH := handlers.NewPolicyHandlers(c.PolicySvc)
	admH := handlers.NewAdminHandlers(c.UserRepo)

	guard := middleware.NewRouteGuard(cfg.SessionCookie, cfg.Routes)
	sessMW := middleware.NewSessionMW(cfg.SessionCookie, c.TokenSvc, c.SessionRepo)
	casbinMW := middleware.NewCasbinMW(c.Casbin.E)

	r := httpx.BuildRouter(authH, flowH, polH, admH, guard, sessMW, casbinMW, c.RedisClient, cfg.LoginRatePerMin)

	seedPolicies(c)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// seedPolicies installs the default role policies on a fresh database.
func seedPolicies(c *Container) {
	policies, _ := c.Casbin.E.GetPolicy()
	if len(policies) > 0 {
		return
	}
	c.Casbin.E.AddPolicy("role_admin", "/api/admin/*", "(GET|POST|PUT|DELETE)")
	c.Casbin.E.AddPolicy("role_user", "/api/auth/logout", "POST")
	_ = c.Casbin.E.SavePolicy()
	c.Logger.Info("casbin: seeded default policies")
}
