package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"slotboard/config"
)

// WebhookSecretHeader carries the shared secret of batch-posting callers.
const WebhookSecretHeader = "X-Webhook-Secret"

// WebhookAuthMiddleware authenticates external batch producers (for
// example an Apps Script job) by shared secret.
func WebhookAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := config.AppConfig.WebhookSecret
		if expected == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Webhook access is not configured"})
			return
		}

		secret := c.GetHeader(WebhookSecretHeader)
		if subtle.ConstantTimeCompare([]byte(secret), []byte(expected)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}
