// internal/interfaces/http/middleware/timeout_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/your-org/storefront-state/internal/config"
)

func timeoutTestConfig(budget time.Duration) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{RequestTimeout: budget},
	}
}

func TestTimeoutAbortsSlowRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Timeout(timeoutTestConfig(20 * time.Millisecond)))
	r.GET("/slow", func(c *gin.Context) {
		// Blocks until the deadline cancels the request context
		<-c.Request.Context().Done()
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))

	assert.Equal(t, http.StatusRequestTimeout, w.Code)
	assert.Contains(t, w.Body.String(), "too long")
}

func TestTimeoutPassesFastRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Timeout(timeoutTestConfig(time.Second)))
	r.GET("/fast", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fast", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
