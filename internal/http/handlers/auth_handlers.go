package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CianCode/Emetals-Web-App/domain"
)

// AuthHandlers exposes the auth-service boundary over JSON. These endpoints
// are what the flow engine (and any other storefront client) calls.
type AuthHandlers struct {
	authSvc    domain.AuthService
	cookieName string
	logger     *slog.Logger
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, cookieName string, logger *slog.Logger) *AuthHandlers {
	return &AuthHandlers{
		authSvc:    authSvc,
		cookieName: cookieName,
		logger:     logger,
	}
}

// RegisterRequest represents a sign-up request. Phone is optional; accounts
// with one on record also receive their one-time codes over SMS.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Phone    string `json:"phone" binding:"omitempty,e164"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents a sign-in request
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// OTPVerifyRequest represents an email verification request
type OTPVerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

// OTPResendRequest represents a resend request
type OTPResendRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Purpose string `json:"purpose" binding:"required,oneof=email-verification password-reset"`
}

// ForgotPasswordRequest represents a reset-code request
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest represents a reset submission
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6,numeric"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
			return
		}
		h.logger.Error("registration failed", "email", req.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"message": "Account created. Check your email for the verification code.",
			"user_id": user.ID,
		},
	})
}

// Login handles user login and issues the session cookie
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password, req.RememberMe)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		case errors.Is(err, domain.ErrUserInactive):
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is inactive"})
		case errors.Is(err, domain.ErrEmailNotVerified):
			c.JSON(http.StatusForbidden, gin.H{"error": "Email address not verified"})
		default:
			h.logger.Error("login failed", "email", req.Email, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	h.setSessionCookie(c, result.SessionToken, int(result.ExpiresIn))

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"expires_in": result.ExpiresIn,
			"user":       userView(result.User),
		},
	})
}

// VerifyOTP handles email verification
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.VerifyEmailOTP(c.Request.Context(), req.Email, req.Code); err != nil {
		h.respondOTPError(c, err)
		return
	}

	h.logger.Info("email verified", "email", req.Email)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Email verified successfully"},
	})
}

// ResendOTP handles OTP regeneration for either purpose
func (h *AuthHandlers) ResendOTP(c *gin.Context) {
	var req OTPResendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.authSvc.ResendOTP(c.Request.Context(), req.Email, domain.OTPPurpose(req.Purpose))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No account found with this email"})
		case errors.Is(err, domain.ErrOTPResendLimit):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Please wait before requesting a new code"})
		default:
			h.logger.Error("otp resend failed", "email", req.Email, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send code"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "A new code has been sent"},
	})
}

// ForgotPassword handles password-reset code requests
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.SendPasswordResetOTP(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No account found with this email"})
		case errors.Is(err, domain.ErrOTPResendLimit):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Please wait before requesting a new code"})
		default:
			h.logger.Error("reset otp failed", "email", req.Email, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send code"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "A password reset code has been sent"},
	})
}

// ResetPassword handles the final reset-with-code submission
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.authSvc.ResetPasswordWithOTP(c.Request.Context(), req.Email, req.Code, req.NewPassword)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No account found with this email"})
			return
		}
		h.respondOTPError(c, err)
		return
	}

	h.logger.Info("password reset", "email", req.Email)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Password updated. Sign in with your new password."},
	})
}

// Session returns the profile for the current session cookie
func (h *AuthHandlers) Session(c *gin.Context) {
	token, err := c.Cookie(h.cookieName)
	if err != nil || token == "" {
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"user": nil}})
		return
	}

	user, session, err := h.authSvc.GetSession(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"user": nil}})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"user":       userView(user),
			"expires_at": session.ExpiresAt,
		},
	})
}

// Logout destroys the session and clears the cookie
func (h *AuthHandlers) Logout(c *gin.Context) {
	if sessionID, ok := c.Get("session_id"); ok {
		if err := h.authSvc.Logout(c.Request.Context(), sessionID.(string)); err != nil {
			h.logger.Error("logout failed", "session_id", sessionID, "error", err)
		}
	}

	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Signed out"},
	})
}

func (h *AuthHandlers) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, maxAge, "/", "", false, true)
}

func (h *AuthHandlers) respondOTPError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrOTPNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Code not found. Request a new one."})
	case errors.Is(err, domain.ErrOTPExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code has expired"})
	case errors.Is(err, domain.ErrOTPMaxAttempts):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Maximum attempts exceeded"})
	case errors.Is(err, domain.ErrOTPInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid code"})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No account found with this email"})
	default:
		h.logger.Error("otp operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
	}
}

func userView(u *domain.User) gin.H {
	return gin.H{
		"id":             u.ID,
		"name":           u.Name,
		"email":          u.Email,
		"phone":          u.Phone,
		"role":           u.Role,
		"image":          u.Image,
		"email_verified": u.EmailVerified,
		"created_at":     u.CreatedAt,
	}
}
