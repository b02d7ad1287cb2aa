package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/transport-senegal/api/logger"
	"github.com/transport-senegal/api/utils/jwt_parse"
)

// AdminSubjectKey is the gin context key holding the admin token subject.
const AdminSubjectKey = "admin_subject"

// AdminAuthMiddleware only lets requests with a valid admin JWT through.
func AdminAuthMiddleware(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		if len(key) == 0 {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"code": "ADMIN_DISABLED", "error": "Admin access is not configured"})
			return
		}

		token, err := jwt_parse.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			code := "INVALID_AUTH_FORMAT"
			if errors.Is(err, jwt_parse.ErrMissingToken) {
				code = "NO_TOKEN"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": code, "error": "Unauthorized"})
			return
		}

		claims, err := jwt_parse.ParseAdminToken(key, token)
		if err != nil {
			logger.WarnLogger.Warnf("Rejected admin token from %s: %v", c.ClientIP(), err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "INVALID_TOKEN", "error": "Unauthorized"})
			return
		}

		c.Set(AdminSubjectKey, claims.Subject)
		c.Next()
	}
}
