// internal/interfaces/http/handlers/order.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-state/internal/state"
)

// OrderHandler handles order history and reorder endpoints
type OrderHandler struct {
	manager *state.Manager
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(manager *state.Manager) *OrderHandler {
	return &OrderHandler{manager: manager}
}

// GetOrders handles GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	container := h.manager.Get(sessionFromContext(c))

	orders, err := container.Orders.History(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"orders": orders,
		},
	})
}

// Reorder handles POST /orders/:id/reorder
func (h *OrderHandler) Reorder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	container := h.manager.Get(sessionFromContext(c))

	if err := container.Orders.Reorder(c.Request.Context(), uint(orderID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order items added to cart",
		"data": gin.H{
			"items": container.Cart.Lines(),
			"count": container.Cart.ItemCount(),
		},
	})
}
