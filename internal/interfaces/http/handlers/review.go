// internal/interfaces/http/handlers/review.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-state/internal/state"
)

// ReviewHandler handles product review endpoints
type ReviewHandler struct {
	manager *state.Manager
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(manager *state.Manager) *ReviewHandler {
	return &ReviewHandler{manager: manager}
}

// GetProductReviews handles GET /products/:id/reviews
func (h *ReviewHandler) GetProductReviews(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	container := h.manager.Get(sessionFromContext(c))

	reviews, err := container.Reviews.ForProduct(c.Request.Context(), uint(productID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"reviews": reviews,
		},
	})
}

// VoteHelpful handles POST /reviews/:id/helpful. Voting twice is a
// conflict; the first vote stands.
func (h *ReviewHandler) VoteHelpful(c *gin.Context) {
	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid review ID",
		})
		return
	}

	container := h.manager.Get(sessionFromContext(c))

	if err := container.Reviews.VoteHelpful(c.Request.Context(), uint(reviewID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vote recorded",
	})
}
