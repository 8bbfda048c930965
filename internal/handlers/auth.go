package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gamenight/backend/internal/apperr"
	"github.com/gamenight/backend/internal/auth"
	"github.com/gamenight/backend/internal/middleware"
)

// AuthHandler serves registration, login and password changes.
type AuthHandler struct {
	creds *auth.CredentialService
}

func NewAuthHandler(creds *auth.CredentialService) *AuthHandler {
	return &AuthHandler{creds: creds}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validationf("username and password are required"))
		return
	}

	account, err := h.creds.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, "account created", account)
}

// Login handles POST /api/auth/login and returns a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validationf("username and password are required"))
		return
	}

	token, account, err := h.creds.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "logged in", gin.H{"token": token, "account": account})
}

// ChangePassword handles POST /api/auth/password for the logged-in account.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validationf("oldPassword and newPassword are required"))
		return
	}

	identity := middleware.GetIdentity(c)
	changed, err := h.creds.ChangePassword(c.Request.Context(), identity.ID, req.OldPassword, req.NewPassword)
	if err != nil {
		fail(c, err)
		return
	}
	if !changed {
		// Fail-closed: no detail about whether the account or the old
		// password was the problem.
		fail(c, apperr.Authenticationf("password change rejected"))
		return
	}
	ok(c, "password changed", nil)
}

// Me handles GET /api/auth/me and echoes the session identity.
func (h *AuthHandler) Me(c *gin.Context) {
	ok(c, "session", middleware.GetIdentity(c))
}
