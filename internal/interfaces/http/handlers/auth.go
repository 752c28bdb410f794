// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-state/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-state/internal/session"
	"github.com/your-org/storefront-state/internal/state"
)

// AuthHandler handles sign-in and sign-out
type AuthHandler struct {
	provider *session.Provider
	manager  *state.Manager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(provider *session.Provider, manager *state.Manager) *AuthHandler {
	return &AuthHandler{
		provider: provider,
		manager:  manager,
	}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	creds, err := h.provider.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid email or password",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    creds,
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := sessionFromContext(c)

	// Tear down the user's state container before the session goes away
	if userID, ok := sess.UserID(); ok {
		h.manager.Release(userID)
	}
	h.provider.SignOut(sess)

	c.JSON(http.StatusOK, gin.H{
		"message": "Logout successful",
	})
}

// Profile handles GET /auth/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	email, _ := middleware.GetUserEmailFromContext(c)

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"user_id":  userID,
			"email":    email,
			"is_admin": middleware.IsAdminFromContext(c),
		},
	})
}
