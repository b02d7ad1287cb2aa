package utils

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestContext derives a bounded context from the incoming request, so
// outbound calls stop when the client goes away or the timeout elapses.
func RequestContext(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	parent := context.Background()
	if c != nil && c.Request != nil {
		parent = c.Request.Context()
	}
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}

// StringFromContext returns a string value set on the gin context, or "".
func StringFromContext(c *gin.Context, key string) string {
	v, ok := c.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
