// internal/interfaces/http/handlers/admin.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-state/internal/remote"
)

// AdminHandler handles moderation endpoints
type AdminHandler struct {
	reviews *remote.ReviewStore
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(reviews *remote.ReviewStore) *AdminHandler {
	return &AdminHandler{reviews: reviews}
}

// ApproveReview handles PUT /admin/reviews/:id/approve. Approved reviews
// become visible in product listings.
func (h *AdminHandler) ApproveReview(c *gin.Context) {
	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid review ID",
		})
		return
	}

	if err := h.reviews.Approve(c.Request.Context(), uint(reviewID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review approved",
	})
}
