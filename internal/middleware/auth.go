package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quizgolf/backend/internal/auth"
	"github.com/quizgolf/backend/internal/config"
)

// DeviceIDKey holds the authenticated headset ID in the gin context.
const DeviceIDKey = "device_id"

// RequireDevice validates a device JWT from the Authorization header, or from
// the token query parameter for websocket upgrades.
func RequireDevice(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			token = strings.TrimPrefix(h, "Bearer ")
		} else {
			token = c.Query("token")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		deviceID, err := auth.ParseToken(cfg.JWTSecret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(DeviceIDKey, deviceID)
		c.Next()
	}
}
