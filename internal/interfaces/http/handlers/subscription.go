// internal/interfaces/http/handlers/subscription.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-state/internal/state"
)

// SubscriptionHandler handles subscription and usage endpoints
type SubscriptionHandler struct {
	manager *state.Manager
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(manager *state.Manager) *SubscriptionHandler {
	return &SubscriptionHandler{manager: manager}
}

// GetStatus handles GET /subscription
func (h *SubscriptionHandler) GetStatus(c *gin.Context) {
	container := h.manager.Get(sessionFromContext(c))

	if err := container.Subscription.Fetch(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"status": container.Subscription.Status(),
			"state":  container.Subscription.State().String(),
		},
	})
}

// GetUsage handles GET /subscription/usage
func (h *SubscriptionHandler) GetUsage(c *gin.Context) {
	container := h.manager.Get(sessionFromContext(c))

	if err := container.Usage.Fetch(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	stats := container.Usage.Stats()

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"usage":       stats,
			"alert_level": stats.AlertLevel(),
			"state":       container.Usage.State().String(),
		},
	})
}

// CanAddProduct handles GET /subscription/can-add-product. The answer is
// always taken from the backend, never from the cached status.
func (h *SubscriptionHandler) CanAddProduct(c *gin.Context) {
	container := h.manager.Get(sessionFromContext(c))

	allowed := container.Subscription.CanAddProduct(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"can_add_product": allowed,
		},
	})
}
