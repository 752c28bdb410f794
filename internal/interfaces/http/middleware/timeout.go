// internal/interfaces/http/middleware/timeout.go
package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-state/internal/config"
)

// Timeout bounds every request to the configured budget. The deadline
// rides on the request context, so remote calls downstream get cancelled
// along with it.
func Timeout(cfg *config.Config) gin.HandlerFunc {
	budget := cfg.Server.RequestTimeout

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), budget)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		finished := make(chan struct{})
		go func() {
			defer close(finished)
			c.Next()
		}()

		select {
		case <-finished:
		case <-ctx.Done():
			c.JSON(http.StatusRequestTimeout, gin.H{
				"error": "Request took too long to process",
			})
			c.Abort()
		}
	}
}
