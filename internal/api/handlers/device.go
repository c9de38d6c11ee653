package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quizgolf/backend/internal/auth"
	"github.com/quizgolf/backend/internal/config"
)

// IssueDeviceToken pairs a headset with the server. The PIN is checked
// against DEVICE_PIN_HASH; without a hash configured, pairing is only open in
// development.
func IssueDeviceToken(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			DeviceID string `json:"device_id"`
			PIN      string `json:"pin"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "device_id and pin required"})
			return
		}
		deviceID := strings.TrimSpace(req.DeviceID)
		if deviceID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "device_id required"})
			return
		}

		switch {
		case cfg.DevicePINHash != "":
			if err := auth.VerifyPIN(cfg.DevicePINHash, req.PIN); err != nil {
				log.Printf("[AUTH] Pairing rejected for device %s: %v", deviceID, err)
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid pin"})
				return
			}
		case cfg.Environment != "development":
			log.Printf("[AUTH] DEVICE_PIN_HASH not set; refusing to pair %s", deviceID)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "pairing not configured"})
			return
		}

		ttl := time.Duration(cfg.SessionTimeoutMin) * time.Minute
		signed, exp, err := auth.IssueToken(cfg.JWTSecret, deviceID, ttl)
		if err != nil {
			log.Printf("[AUTH] Failed to sign token: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		log.Printf("[AUTH] Device %s paired", deviceID)
		c.JSON(http.StatusOK, gin.H{
			"token":      signed,
			"device_id":  deviceID,
			"expires_at": exp.Format(time.RFC3339),
		})
	}
}
