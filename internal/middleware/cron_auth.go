package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CronAuthMiddleware creates a Gin middleware handler guarding the cron
// trigger endpoints with a shared bearer secret. The scheduler platform is
// the only expected caller, so there is no user identity to establish.
func CronAuthMiddleware(sharedSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		if sharedSecret == "" {
			logger.Error("Cron shared secret not configured, rejecting trigger")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Cron trigger authentication not configured"})
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing on cron trigger")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid on cron trigger")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(sharedSecret)) != 1 {
			logger.Warn("Cron trigger secret mismatch")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Next()
	}
}
