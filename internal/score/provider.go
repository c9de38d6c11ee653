package score

import (
	"context"
	"errors"

	"github.com/quizgolf/backend/internal/models"
)

var (
	// ErrNotFound means nothing has been saved yet. Callers treat it as an empty list.
	ErrNotFound = errors.New("score data not found")
	// ErrCorrupt means the stored data could not be decoded.
	ErrCorrupt = errors.New("score data is corrupt")
)

// Provider reads and writes the whole leaderboard at once.
type Provider interface {
	Load(ctx context.Context) ([]models.ScoreEntry, error)
	Save(ctx context.Context, entries []models.ScoreEntry) error
}
