// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-state/internal/state"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	manager *state.Manager
}

// NewCartHandler creates a new cart handler
func NewCartHandler(manager *state.Manager) *CartHandler {
	return &CartHandler{manager: manager}
}

// AddToCartRequest represents the add-to-cart payload
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// UpdateCartLineRequest represents the quantity update payload
type UpdateCartLineRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	container := h.manager.Get(sessionFromContext(c))

	if err := container.Cart.Fetch(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"items": container.Cart.Lines(),
			"count": container.Cart.ItemCount(),
			"state": container.Cart.State().String(),
		},
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	container := h.manager.Get(sessionFromContext(c))

	if err := container.Cart.Add(c.Request.Context(), req.ProductID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart",
		"data": gin.H{
			"items": container.Cart.Lines(),
			"count": container.Cart.ItemCount(),
		},
	})
}

// UpdateCartLine handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartLine(c *gin.Context) {
	lineID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cart line ID",
		})
		return
	}

	var req UpdateCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	container := h.manager.Get(sessionFromContext(c))

	if err := container.Cart.UpdateQuantity(c.Request.Context(), uint(lineID), req.Quantity); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated",
		"data": gin.H{
			"items": container.Cart.Lines(),
			"count": container.Cart.ItemCount(),
		},
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	lineID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cart line ID",
		})
		return
	}

	container := h.manager.Get(sessionFromContext(c))

	if err := container.Cart.Remove(c.Request.Context(), uint(lineID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
		"data": gin.H{
			"items": container.Cart.Lines(),
			"count": container.Cart.ItemCount(),
		},
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	container := h.manager.Get(sessionFromContext(c))

	if err := container.Cart.Clear(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
	})
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	container := h.manager.Get(sessionFromContext(c))

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"count": container.Cart.ItemCount(),
		},
	})
}
