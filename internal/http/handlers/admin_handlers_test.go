package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/CianCode/Emetals-Web-App/domain"
	"github.com/CianCode/Emetals-Web-App/internal/mocks"
)

func newAdminRouter(users *mocks.MockUserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAdminHandlers(users)
	r := gin.New()
	r.GET("/api/admin/users", h.ListUsers)
	return r
}

func TestAdminListUsers(t *testing.T) {
	users := mocks.NewMockUserRepository()
	var gotOffset, gotLimit int
	users.ListFunc = func(ctx context.Context, offset, limit int) ([]*domain.User, error) {
		gotOffset, gotLimit = offset, limit
		return []*domain.User{
			{ID: 1, Name: "Jane Doe", Email: "jane@example.com", Role: "role_user", EmailVerified: true},
			{ID: 2, Name: "Admin", Email: "admin@example.com", Role: "role_admin", EmailVerified: true},
		}, nil
	}

	r := newAdminRouter(users)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users?offset=10&limit=2", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if gotOffset != 10 || gotLimit != 2 {
		t.Errorf("repo called with offset=%d limit=%d", gotOffset, gotLimit)
	}

	var body struct {
		Data []struct {
			Email string `json:"email"`
		} `json:"data"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 2 || len(body.Data) != 2 {
		t.Fatalf("count = %d, data = %v", body.Count, body.Data)
	}
	if body.Data[0].Email != "jane@example.com" {
		t.Errorf("first user = %q", body.Data[0].Email)
	}
}

func TestAdminListUsersDefaults(t *testing.T) {
	users := mocks.NewMockUserRepository()
	var gotOffset, gotLimit int
	users.ListFunc = func(ctx context.Context, offset, limit int) ([]*domain.User, error) {
		gotOffset, gotLimit = offset, limit
		return nil, nil
	}

	r := newAdminRouter(users)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users?offset=-5", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if gotOffset != 0 || gotLimit != 50 {
		t.Errorf("repo called with offset=%d limit=%d", gotOffset, gotLimit)
	}
	var body struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 0 {
		t.Errorf("data = %v", body.Data)
	}
}
