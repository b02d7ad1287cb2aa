package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func router(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CorsMiddleware(origins))
	r.GET("/api/vehicles", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestCorsMiddleware_AllowedOrigin(t *testing.T) {
	r := router([]string{"https://transport-senegal.com"})

	req := httptest.NewRequest(http.MethodGet, "/api/vehicles", nil)
	req.Header.Set("Origin", "https://transport-senegal.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://transport-senegal.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorsMiddleware_RejectsUnknownOrigin(t *testing.T) {
	r := router([]string{"https://transport-senegal.com"})

	req := httptest.NewRequest(http.MethodGet, "/api/vehicles", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCorsMiddleware_Wildcard(t *testing.T) {
	r := router([]string{"*"})

	req := httptest.NewRequest(http.MethodOptions, "/api/vehicles", nil)
	req.Header.Set("Origin", "https://anything.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
