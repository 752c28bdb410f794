// internal/interfaces/http/handlers/saved.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-state/internal/state"
)

// SavedHandler handles saved-for-later endpoints
type SavedHandler struct {
	manager *state.Manager
}

// NewSavedHandler creates a new saved-for-later handler
func NewSavedHandler(manager *state.Manager) *SavedHandler {
	return &SavedHandler{manager: manager}
}

// SaveForLaterRequest represents the save payload
type SaveForLaterRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// GetSaved handles GET /saved
func (h *SavedHandler) GetSaved(c *gin.Context) {
	container := h.manager.Get(sessionFromContext(c))

	if err := container.Saved.Fetch(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"items": container.Saved.Entries(),
			"state": container.Saved.State().String(),
		},
	})
}

// SaveForLater handles POST /saved
func (h *SavedHandler) SaveForLater(c *gin.Context) {
	var req SaveForLaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	container := h.manager.Get(sessionFromContext(c))

	if err := container.Saved.Save(c.Request.Context(), req.ProductID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Saved for later",
		"data": gin.H{
			"items": container.Saved.Entries(),
		},
	})
}

// RemoveSaved handles DELETE /saved/:id
func (h *SavedHandler) RemoveSaved(c *gin.Context) {
	entryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid entry ID",
		})
		return
	}

	container := h.manager.Get(sessionFromContext(c))

	if err := container.Saved.Remove(c.Request.Context(), uint(entryID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Entry removed",
		"data": gin.H{
			"items": container.Saved.Entries(),
		},
	})
}

// MoveToCart handles POST /saved/:id/move-to-cart
func (h *SavedHandler) MoveToCart(c *gin.Context) {
	entryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid entry ID",
		})
		return
	}

	container := h.manager.Get(sessionFromContext(c))

	if err := container.Saved.MoveToCart(c.Request.Context(), uint(entryID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Moved to cart",
		"data": gin.H{
			"saved": container.Saved.Entries(),
			"cart": gin.H{
				"items": container.Cart.Lines(),
				"count": container.Cart.ItemCount(),
			},
		},
	})
}
