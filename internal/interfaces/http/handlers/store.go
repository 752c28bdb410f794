// internal/interfaces/http/handlers/store.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-state/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-state/internal/remote"
)

// StoreHandler handles seller-facing store endpoints backed by remote
// procedures
type StoreHandler struct {
	procs *remote.Procedures
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(procs *remote.Procedures) *StoreHandler {
	return &StoreHandler{procs: procs}
}

// GetLowStockProducts handles GET /stores/low-stock for the
// authenticated store owner
func (h *StoreHandler) GetLowStockProducts(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	products, err := h.procs.GetLowStockProducts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"products": products,
		},
	})
}

// GetAnalyticsSummary handles GET /stores/:id/analytics
func (h *StoreHandler) GetAnalyticsSummary(c *gin.Context) {
	storeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid store ID",
		})
		return
	}

	summary, err := h.procs.GetStoreAnalyticsSummary(c.Request.Context(), uint(storeID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": summary,
	})
}

// TrackView handles POST /stores/:id/views. Anonymous views are counted
// without a viewer.
func (h *StoreHandler) TrackView(c *gin.Context) {
	storeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid store ID",
		})
		return
	}

	var viewerID *uint
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		viewerID = &userID
	}

	if err := h.procs.TrackStoreView(c.Request.Context(), uint(storeID), viewerID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "View recorded",
	})
}
