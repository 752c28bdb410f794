// internal/interfaces/http/handlers/compare.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-state/internal/domain/compare"
	"github.com/your-org/storefront-state/internal/state"
)

// CompareHandler handles product comparison endpoints
type CompareHandler struct {
	manager *state.Manager
}

// NewCompareHandler creates a new comparison handler
func NewCompareHandler(manager *state.Manager) *CompareHandler {
	return &CompareHandler{manager: manager}
}

// GetComparison handles GET /compare
func (h *CompareHandler) GetComparison(c *gin.Context) {
	container := h.manager.Get(sessionFromContext(c))

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"items":        container.Compare.Items(),
			"count":        container.Compare.Len(),
			"can_add_more": container.Compare.CanAddMore(),
		},
	})
}

// AddToComparison handles POST /compare/items. The full product snapshot
// travels in the body so the comparison keeps rendering after the catalog
// changes.
func (h *CompareHandler) AddToComparison(c *gin.Context) {
	var req compare.Product
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product data",
		})
		return
	}

	container := h.manager.Get(sessionFromContext(c))

	added := container.Compare.Add(req)
	if !added && !container.Compare.IsIn(req.ID) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Comparison list is full",
			"data": gin.H{
				"count": container.Compare.Len(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Added to comparison",
		"data": gin.H{
			"items":        container.Compare.Items(),
			"count":        container.Compare.Len(),
			"can_add_more": container.Compare.CanAddMore(),
		},
	})
}

// RemoveFromComparison handles DELETE /compare/items/:productId
func (h *CompareHandler) RemoveFromComparison(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	container := h.manager.Get(sessionFromContext(c))
	container.Compare.Remove(uint(productID))

	c.JSON(http.StatusOK, gin.H{
		"message": "Removed from comparison",
		"data": gin.H{
			"items": container.Compare.Items(),
			"count": container.Compare.Len(),
		},
	})
}

// ClearComparison handles DELETE /compare
func (h *CompareHandler) ClearComparison(c *gin.Context) {
	container := h.manager.Get(sessionFromContext(c))
	container.Compare.Clear()

	c.JSON(http.StatusOK, gin.H{
		"message": "Comparison cleared",
	})
}
