package score

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/quizgolf/backend/internal/models"
)

// Status is the outcome of an asynchronous leaderboard load.
type Status int

const (
	StatusOK Status = iota
	StatusNotFound
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not_found"
	default:
		return "error"
	}
}

// Dispatcher runs work off the tick loop and delivers done back onto it.
type Dispatcher interface {
	Go(work func(), done func())
}

// Service is the asynchronous leaderboard API used by the game session.
type Service struct {
	provider   Provider
	dispatcher Dispatcher
	timeout    time.Duration

	// saveMu queues saves so only one transaction is open at a time.
	saveMu sync.Mutex
	tx     *Transaction
}

func NewService(provider Provider, dispatcher Dispatcher, strict bool) *Service {
	return &Service{
		provider:   provider,
		tx:         NewTransaction(provider, strict),
		dispatcher: dispatcher,
		timeout:    10 * time.Second,
	}
}

// List loads the leaderboard synchronously. Missing data is an empty list;
// corrupt data is logged and also recovered as an empty list.
func (s *Service) List(ctx context.Context) (Status, []models.ScoreEntry) {
	entries, err := s.provider.Load(ctx)
	switch {
	case err == nil:
		if entries == nil {
			entries = []models.ScoreEntry{}
		}
		return StatusOK, entries
	case errors.Is(err, ErrNotFound):
		return StatusNotFound, []models.ScoreEntry{}
	default:
		log.Printf("[SCORE] Failed to load score data: %v", err)
		return StatusError, []models.ScoreEntry{}
	}
}

// LoadScoreList loads the leaderboard off the loop and calls cb on it.
func (s *Service) LoadScoreList(cb func(Status, []models.ScoreEntry)) {
	var (
		status  Status
		entries []models.ScoreEntry
	)
	s.dispatcher.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		status, entries = s.List(ctx)
	}, func() {
		if cb != nil {
			cb(status, entries)
		}
	})
}

// SaveEntry appends entry inside a transaction off the loop, then calls cb.
// cb runs even when the save failed; the failure is only logged.
func (s *Service) SaveEntry(entry models.ScoreEntry, cb func()) {
	s.dispatcher.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.appendEntry(ctx, entry); err != nil {
			log.Printf("[SCORE] Failed to save entry for %q: %v", entry.Name, err)
		}
	}, func() {
		if cb != nil {
			cb()
		}
	})
}

func (s *Service) appendEntry(ctx context.Context, entry models.ScoreEntry) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return s.tx.Execute(ctx, func(tx *Transaction) error {
		return tx.Add(entry)
	})
}
