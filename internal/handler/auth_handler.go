package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/podstore/podstore/internal/middleware"
	"github.com/podstore/podstore/internal/service"
	"github.com/podstore/podstore/internal/utils"
)

// AuthHandler exposes account registration and session endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Name     string `json:"name" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	token, user, err := h.authService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, utils.ErrEmailTaken) {
			utils.Error(c, 409, "EMAIL_TAKEN", "An account with this email already exists")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create account")
		return
	}

	utils.Success(c, 201, "Account created", gin.H{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	token, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}

	utils.Success(c, 200, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /v1/auth/logout (session required).
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.SessionClaims(c)
	if claims == nil {
		utils.Error(c, 401, "UNAUTHORIZED", "Session required")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to sign out")
		return
	}

	utils.Success(c, 200, "Signed out", nil)
}

// Session handles GET /v1/auth/session. Anonymous visitors are a valid
// answer here, not an error, so the endpoint takes no auth middleware and
// resolves whatever token is (or is not) present.
func (h *AuthHandler) Session(c *gin.Context) {
	token := middleware.BearerToken(c)
	role, user := h.authService.ResolveSession(c.Request.Context(), token)

	utils.Success(c, 200, "Session resolved", gin.H{
		"role": role,
		"user": user,
	})
}
