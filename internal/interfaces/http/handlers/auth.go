// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jhuggee/marketplace-backend/internal/config"
	"github.com/jhuggee/marketplace-backend/internal/domain/user"
	"github.com/jhuggee/marketplace-backend/internal/interfaces/http/middleware"
	"github.com/jhuggee/marketplace-backend/internal/pkg/response"
)

// AuthHandler handles registration, login and session endpoints
type AuthHandler struct {
	userService *user.Service
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *user.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{userService: userService, cfg: cfg}
}

// setSessionCookie writes the session token into the jh_token cookie
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		h.cfg.JWT.CookieName,
		token,
		int(h.cfg.JWT.TokenExpiry.Seconds()),
		"/",
		"",
		h.cfg.IsProduction(),
		true,
	)
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.userService.Register(&req)
	if err != nil {
		if errors.Is(err, user.ErrUserExists) {
			response.Conflict(c, "An account with this phone number already exists")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	h.setSessionCookie(c, result.Token)
	response.Created(c, gin.H{"user": result.User, "token": result.Token})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.userService.Login(&req)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidCredentials):
			response.Unauthorized(c, "Invalid phone number or password")
		case errors.Is(err, user.ErrUserDisabled):
			response.Forbidden(c, "Account is disabled")
		default:
			response.InternalError(c, "Login failed")
		}
		return
	}

	h.setSessionCookie(c, result.Token)
	response.OK(c, gin.H{"user": result.User, "token": result.Token})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(h.cfg.JWT.CookieName, "", -1, "/", "", h.cfg.IsProduction(), true)
	response.OK(c, gin.H{"logged_out": true})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.userService.GetByID(middleware.UserID(c))
	if err != nil {
		response.NotFound(c, "User not found")
		return
	}
	response.OK(c, u)
}

// UpdateProfile handles PATCH /auth/me
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	u, err := h.userService.UpdateProfile(middleware.UserID(c), &req)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.InternalError(c, "Failed to update profile")
		return
	}
	response.OK(c, u)
}
