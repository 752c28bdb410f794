// internal/interfaces/http/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func adminTestRouter(claims gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	chain := []gin.HandlerFunc{}
	if claims != nil {
		chain = append(chain, claims)
	}
	chain = append(chain, AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	r.GET("/admin", chain...)
	return r
}

func TestAdminMiddlewareRejectsAnonymous(t *testing.T) {
	r := adminTestRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminMiddlewareRejectsNonAdmin(t *testing.T) {
	r := adminTestRouter(func(c *gin.Context) {
		c.Set("is_admin", false)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminMiddlewareAllowsAdmin(t *testing.T) {
	r := adminTestRouter(func(c *gin.Context) {
		c.Set("is_admin", true)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
