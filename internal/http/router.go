package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/CianCode/Emetals-Web-App/internal/http/handlers"
	"github.com/CianCode/Emetals-Web-App/internal/http/middleware"
)

// BuildRouter wires the storefront's HTTP surface: the session-cookie route
// guard on page paths, the auth API, the flow API, and the admin policy API.
func BuildRouter(
	ah *handlers.AuthHandlers,
	fh *handlers.FlowHandlers,
	ph *handlers.PolicyHandlers,
	adh *handlers.AdminHandlers,
	guard *middleware.RouteGuard,
	sess *middleware.SessionMW,
	cb middleware.CasbinMiddleware,
	cache *redis.Client,
	loginRatePerMin int,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(guard.Handler())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/api/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", middleware.LoginRateLimit(cache, loginRatePerMin), ah.Login)
	auth.POST("/otp/verify", ah.VerifyOTP)
	auth.POST("/otp/resend", ah.ResendOTP)
	auth.POST("/password/forgot", ah.ForgotPassword)
	auth.POST("/password/reset", ah.ResetPassword)
	auth.GET("/session", ah.Session)
	auth.POST("/logout", sess.WithSession(), ah.Logout)

	flows := r.Group("/api/flows")
	flows.POST("/:kind", fh.Start)
	flows.GET("/:kind/:id", fh.Get)
	flows.POST("/:kind/:id/events", fh.Event)

	adm := r.Group("/api/admin").Use(sess.WithSession(), cb.Enforce())
	adm.GET("/policies", ph.List)
	adm.POST("/policies", ph.Add)
	adm.DELETE("/policies", ph.Remove)
	adm.GET("/users", adh.ListUsers)

	return r
}
