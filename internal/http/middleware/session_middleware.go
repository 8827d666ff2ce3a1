package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CianCode/Emetals-Web-App/domain"
)

// SessionMW wraps the token service and session repository for the API-side
// middleware. Unlike the route guard, this layer does decode the cookie.
type SessionMW struct {
	cookieName  string
	tokenSvc    domain.TokenService
	sessionRepo domain.SessionRepository
}

// NewSessionMW creates new session middleware
func NewSessionMW(cookieName string, tokenSvc domain.TokenService, sessionRepo domain.SessionRepository) *SessionMW {
	return &SessionMW{
		cookieName:  cookieName,
		tokenSvc:    tokenSvc,
		sessionRepo: sessionRepo,
	}
}

// WithSession returns the session-validating middleware function
func (mw *SessionMW) WithSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(mw.cookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		claims, err := mw.tokenSvc.ValidateSessionToken(token)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrTokenExpired):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session token expired"})
			default:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session token"})
			}
			c.Abort()
			return
		}

		// The token alone is not enough: the session must still exist in
		// Redis, otherwise logout and password reset would not revoke
		// access.
		session, err := mw.sessionRepo.FindByID(c.Request.Context(), claims.SessionID)
		if err != nil || session == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session invalid or expired"})
			c.Abort()
			return
		}

		if session.UserID != claims.UserID {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session user mismatch"})
			c.Abort()
			return
		}

		c.Set("user_id", fmt.Sprintf("%d", claims.UserID))
		c.Set("user_role", claims.Role)
		c.Set("session_id", claims.SessionID)

		c.Next()
	}
}
