package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/quizgolf/backend/internal/api/handlers"
	"github.com/quizgolf/backend/internal/config"
	"github.com/quizgolf/backend/internal/middleware"
)

// Deps are the services the HTTP surface exposes.
type Deps struct {
	Session   handlers.Session
	Scores    handlers.ScoreLister
	WebSocket gin.HandlerFunc
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, deps Deps, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))

	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] No-cache headers enabled for all routes")
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)
		v1.POST("/auth/device", handlers.IssueDeviceToken(cfg))

		device := v1.Group("")
		device.Use(middleware.RequireDevice(cfg))
		{
			device.GET("/quiz", handlers.GetQuiz(deps.Session))
			device.GET("/scores", handlers.GetScores(deps.Scores))
		}

		session := v1.Group("/session")
		session.Use(middleware.RequireDevice(cfg))
		{
			session.POST("/events", handlers.PostSessionEvent(deps.Session))
			session.GET("/state", handlers.GetSessionState(deps.Session))
			if deps.WebSocket != nil {
				session.GET("/ws", middleware.WebSocketCORSCheck(cfg), deps.WebSocket)
			}
		}
	}
}
