package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CianCode/Emetals-Web-App/domain"
	"github.com/CianCode/Emetals-Web-App/internal/mocks"
)

func newSessionRouter(tokenSvc *mocks.MockTokenService, sessionRepo *mocks.MockSessionRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	mw := NewSessionMW(testCookie, tokenSvc, sessionRepo)

	r := gin.New()
	r.GET("/protected", mw.WithSession(), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		role, _ := c.Get("user_role")
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
	})
	return r
}

func sessionRequest(r *gin.Engine, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionMiddlewareAllowsValidSession(t *testing.T) {
	tokenSvc := mocks.NewMockTokenService()
	sessionRepo := mocks.NewMockSessionRepository()
	sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
		return &domain.Session{ID: sessionID, UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}, nil
	}

	w := sessionRequest(newSessionRouter(tokenSvc, sessionRepo), "tok")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestSessionMiddlewareRejectsMissingCookie(t *testing.T) {
	w := sessionRequest(newSessionRouter(mocks.NewMockTokenService(), mocks.NewMockSessionRepository()), "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestSessionMiddlewareRejectsBadToken(t *testing.T) {
	tokenSvc := mocks.NewMockTokenService()
	tokenSvc.ValidateSessionTokenFunc = func(token string) (*domain.TokenClaims, error) {
		return nil, domain.ErrTokenInvalid
	}

	w := sessionRequest(newSessionRouter(tokenSvc, mocks.NewMockSessionRepository()), "bad")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

// A valid token whose session is gone from Redis is still unauthorized:
// logout and password reset revoke by deleting the session record.
func TestSessionMiddlewareRejectsRevokedSession(t *testing.T) {
	tokenSvc := mocks.NewMockTokenService()
	sessionRepo := mocks.NewMockSessionRepository()

	w := sessionRequest(newSessionRouter(tokenSvc, sessionRepo), "tok")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestSessionMiddlewareRejectsUserMismatch(t *testing.T) {
	tokenSvc := mocks.NewMockTokenService()
	sessionRepo := mocks.NewMockSessionRepository()
	sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
		return &domain.Session{ID: sessionID, UserID: 99, ExpiresAt: time.Now().Add(time.Hour)}, nil
	}

	w := sessionRequest(newSessionRouter(tokenSvc, sessionRepo), "tok")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
