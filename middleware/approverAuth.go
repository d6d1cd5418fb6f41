package middleware

import (
	"net/http"
	"strings"

	"venueflow/config"

	"github.com/gin-gonic/gin"
)

// ApproverAuthMiddleware guards the approval endpoints with the static
// reviewer token from configuration.
func ApproverAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		if config.AppConfig.ApprovalToken == "" || tokenString != config.AppConfig.ApprovalToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized reviewer access"})
			return
		}

		c.Set("isApprover", true)
		c.Next()
	}
}
