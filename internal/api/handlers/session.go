package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quizgolf/backend/internal/events"
	"github.com/quizgolf/backend/internal/game"
	"github.com/quizgolf/backend/internal/models"
	"github.com/quizgolf/backend/internal/score"
)

// Session is the running game session as seen from HTTP.
type Session interface {
	Post(e events.Event)
	Snapshot(ctx context.Context) (game.Snapshot, error)
	Quiz(ctx context.Context) (game.QuizSummary, error)
}

// ScoreLister reads the leaderboard.
type ScoreLister interface {
	List(ctx context.Context) (score.Status, []models.ScoreEntry)
}

const loopTimeout = 2 * time.Second

// PostSessionEvent queues an input event for the game loop.
func PostSessionEvent(session Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		var e events.Event
		if err := c.ShouldBindJSON(&e); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event"})
			return
		}
		if err := e.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		session.Post(e)
		c.JSON(http.StatusAccepted, gin.H{"queued": e.Kind})
	}
}

// GetSessionState returns a snapshot of the game session.
func GetSessionState(session Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), loopTimeout)
		defer cancel()

		snap, err := session.Snapshot(ctx)
		if err != nil {
			respondLoopError(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

// GetQuiz describes the quiz set in play.
func GetQuiz(session Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), loopTimeout)
		defer cancel()

		q, err := session.Quiz(ctx)
		if err != nil {
			respondLoopError(c, err)
			return
		}
		c.JSON(http.StatusOK, q)
	}
}

// GetScores returns the leaderboard in display order.
func GetScores(scores ScoreLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
				return
			}
			limit = n
		}

		status, entries := scores.List(c.Request.Context())
		sorted := score.Sorted(entries)
		total := len(sorted)
		if limit > 0 && limit < total {
			sorted = sorted[:limit]
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  status.String(),
			"total":   total,
			"entries": sorted,
		})
	}
}

func respondLoopError(c *gin.Context, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		log.Printf("[API] Game loop did not answer in %v", loopTimeout)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "game loop busy"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
