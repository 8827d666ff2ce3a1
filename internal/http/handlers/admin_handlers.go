package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CianCode/Emetals-Web-App/domain"
)

// AdminHandlers serves the user management endpoints on the admin API.
type AdminHandlers struct {
	users domain.UserRepository
}

func NewAdminHandlers(users domain.UserRepository) *AdminHandlers {
	return &AdminHandlers{users: users}
}

// ListUsers returns a page of registered users.
// GET /api/admin/users?offset=0&limit=50
func (h *AdminHandlers) ListUsers(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if offset < 0 {
		offset = 0
	}

	users, err := h.users.List(c.Request.Context(), offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}

	views := make([]gin.H, 0, len(users))
	for _, u := range users {
		views = append(views, userView(u))
	}
	c.JSON(http.StatusOK, gin.H{"data": views, "offset": offset, "count": len(views)})
}
