// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-state/internal/state"
)

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	manager *state.Manager
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(manager *state.Manager) *WishlistHandler {
	return &WishlistHandler{manager: manager}
}

// WishlistItemRequest identifies the product being added or toggled
type WishlistItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetWishlist handles GET /wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	container := h.manager.Get(sessionFromContext(c))

	if err := container.Wishlist.Fetch(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"items": container.Wishlist.Entries(),
			"count": container.Wishlist.Count(),
			"state": container.Wishlist.State().String(),
		},
	})
}

// AddToWishlist handles POST /wishlist/items
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	var req WishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	container := h.manager.Get(sessionFromContext(c))

	if err := container.Wishlist.Add(c.Request.Context(), req.ProductID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Added to wishlist",
		"data": gin.H{
			"items": container.Wishlist.Entries(),
			"count": container.Wishlist.Count(),
		},
	})
}

// RemoveFromWishlist handles DELETE /wishlist/items/:productId
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	container := h.manager.Get(sessionFromContext(c))

	if err := container.Wishlist.Remove(c.Request.Context(), uint(productID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Removed from wishlist",
		"data": gin.H{
			"items": container.Wishlist.Entries(),
			"count": container.Wishlist.Count(),
		},
	})
}

// ToggleWishlist handles POST /wishlist/toggle
func (h *WishlistHandler) ToggleWishlist(c *gin.Context) {
	var req WishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	container := h.manager.Get(sessionFromContext(c))

	if err := container.Wishlist.Toggle(c.Request.Context(), req.ProductID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist updated",
		"data": gin.H{
			"in_wishlist": container.Wishlist.IsIn(req.ProductID),
			"count":       container.Wishlist.Count(),
		},
	})
}

// ContainsProduct handles GET /wishlist/contains/:productId
func (h *WishlistHandler) ContainsProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	container := h.manager.Get(sessionFromContext(c))

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"in_wishlist": container.Wishlist.IsIn(uint(productID)),
		},
	})
}
