package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"auth_backend/internal/feature/auth/domain"
	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/transport/http/dto"
	"auth_backend/internal/feature/auth/transport/middleware"
)

// AdminUsecase defines the admin operations on users.
type AdminUsecase interface {
	ListPending(ctx context.Context) ([]entity.User, error)
	ListAll(ctx context.Context) ([]entity.User, error)
	Approve(ctx context.Context, adminID, userID string) (*entity.User, error)
	DeleteUser(ctx context.Context, userID string) (*entity.User, error)
}

// AdminHandler handles the /auth/admin endpoints.
// Routes must be mounted behind middleware.RequireAdmin.
type AdminHandler struct {
	admin AdminUsecase
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admin AdminUsecase) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// PendingUsers handles GET /auth/admin/pending-users.
func (h *AdminHandler) PendingUsers(c *gin.Context) {
	users, err := h.admin.ListPending(c.Request.Context())
	if err != nil {
		writeError(c, "list pending users", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserList(users))
}

// AllUsers handles GET /auth/admin/all-users.
func (h *AdminHandler) AllUsers(c *gin.Context) {
	users, err := h.admin.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, "list users", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserList(users))
}

// ApproveUser handles POST /auth/admin/approve-user.
// - 404 for an unknown user
// - 400 when the user is already approved
func (h *AdminHandler) ApproveUser(c *gin.Context) {
	admin, ok := middleware.AdminFrom(c)
	if !ok {
		writeError(c, "approve user", domain.ErrForbidden)
		return
	}
	var req dto.ApproveUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, "approve user", err)
		return
	}
	user, err := h.admin.Approve(c.Request.Context(), admin.ID, req.UserID)
	if err != nil {
		writeError(c, "approve user", err)
		return
	}
	c.JSON(http.StatusOK, dto.AdminRes{
		Status:  dto.StatusSuccess,
		Message: fmt.Sprintf("Approved user %s", user.Name),
		Data:    dto.AdminActionData{UserID: user.ID, UserName: user.Name},
	})
}

// DeleteUser handles DELETE /auth/admin/delete-user/:id.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	user, err := h.admin.DeleteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, "delete user", err)
		return
	}
	c.JSON(http.StatusOK, dto.AdminRes{
		Status:  dto.StatusSuccess,
		Message: fmt.Sprintf("Deleted user %s", user.Name),
		Data:    dto.AdminActionData{UserID: user.ID, UserName: user.Name},
	})
}
