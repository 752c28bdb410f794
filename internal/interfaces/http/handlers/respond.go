// internal/interfaces/http/handlers/respond.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-state/internal/domain/outcome"
	"github.com/your-org/storefront-state/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-state/internal/session"
)

// sessionFromContext rebuilds the caller's session from the values the
// auth middleware stored
func sessionFromContext(c *gin.Context) *session.Session {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return session.Anonymous()
	}

	email, _ := middleware.GetUserEmailFromContext(c)
	return session.ForUser(userID, email, middleware.IsAdminFromContext(c))
}

// respondError maps service errors onto HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, outcome.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
	case errors.Is(err, outcome.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Not found",
		})
	case errors.Is(err, outcome.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Already exists",
		})
	case outcome.IsReconciliation(err):
		// The first step of a two-step operation landed; the cleanup did
		// not. The client must re-fetch both collections.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":         "Operation partially completed",
			"needs_refresh": true,
			"details":       err.Error(),
		})
	case outcome.IsRemote(err):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Upstream operation failed",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
