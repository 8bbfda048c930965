package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gamenight/backend/internal/apperr"
	"github.com/gamenight/backend/internal/middleware"
	"github.com/gamenight/backend/internal/service"
)

// AdminHandler serves the administrative account-management routes. Role
// and protected-account enforcement lives in the service; the handler only
// parses and responds.
type AdminHandler struct {
	accounts *service.AccountService
}

func NewAdminHandler(accounts *service.AccountService) *AdminHandler {
	return &AdminHandler{accounts: accounts}
}

func accountID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validationf("invalid account id")
	}
	return id, nil
}

// List handles GET /api/users.
func (h *AdminHandler) List(c *gin.Context) {
	accounts, err := h.accounts.List(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "accounts", accounts)
}

// Delete handles DELETE /api/users/:id.
func (h *AdminHandler) Delete(c *gin.Context) {
	id, err := accountID(c)
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.accounts.Delete(c.Request.Context(), middleware.GetIdentity(c), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, "account deleted", nil)
}

// ToggleRole handles POST /api/users/:id/role.
func (h *AdminHandler) ToggleRole(c *gin.Context) {
	id, err := accountID(c)
	if err != nil {
		fail(c, err)
		return
	}
	role, err := h.accounts.ToggleRole(c.Request.Context(), middleware.GetIdentity(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "role updated", gin.H{"role": role})
}

type resetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required"`
}

// ResetPassword handles POST /api/users/:id/password.
func (h *AdminHandler) ResetPassword(c *gin.Context) {
	id, err := accountID(c)
	if err != nil {
		fail(c, err)
		return
	}
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validationf("newPassword is required"))
		return
	}
	if err := h.accounts.ResetPassword(c.Request.Context(), middleware.GetIdentity(c), id, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	ok(c, "password reset", nil)
}
