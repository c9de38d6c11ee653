package score

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/quizgolf/backend/internal/models"
)

var (
	ErrTransactionOpen    = errors.New("score transaction already open")
	ErrNoTransaction      = errors.New("score transaction not open")
	ErrTransactionFailure = errors.New("score transaction failed to open")
)

// Transaction batches reads and writes of the leaderboard into one load and at
// most one save. Only one transaction may be open at a time; callers serialize
// their own requests.
type Transaction struct {
	provider Provider
	strict   bool

	mu       sync.Mutex
	snapshot []models.ScoreEntry
	open     bool
	dirty    bool
}

// NewTransaction wraps provider. With strict set, misuse panics instead of
// returning an error.
func NewTransaction(provider Provider, strict bool) *Transaction {
	return &Transaction{provider: provider, strict: strict}
}

func (t *Transaction) misuse(err error) error {
	log.Printf("[SCORE] %v", err)
	if t.strict {
		panic(err)
	}
	return err
}

// Open reports whether a transaction is in progress.
func (t *Transaction) Open() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

// Begin loads the current leaderboard. Missing data opens an empty snapshot;
// any other failure leaves no transaction open.
func (t *Transaction) Begin(ctx context.Context) error {
	t.mu.Lock()
	if t.open {
		t.mu.Unlock()
		return t.misuse(ErrTransactionOpen)
	}
	// Reserve the slot before the load so a concurrent Begin is rejected.
	t.open = true
	t.mu.Unlock()

	entries, err := t.provider.Load(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		t.mu.Lock()
		t.open = false
		t.mu.Unlock()
		log.Printf("[SCORE] Failed to start transaction: %v", err)
		return fmt.Errorf("%w: %w", ErrTransactionFailure, err)
	}
	if entries == nil {
		entries = []models.ScoreEntry{}
	}

	t.mu.Lock()
	t.snapshot = entries
	t.dirty = false
	t.mu.Unlock()
	return nil
}

// Add appends an entry to the open snapshot.
func (t *Transaction) Add(entry models.ScoreEntry) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.open || t.snapshot == nil {
		log.Printf("[SCORE] Failed to add entry: %v", ErrNoTransaction)
		return ErrNoTransaction
	}
	t.snapshot = append(t.snapshot, entry)
	t.dirty = true
	return nil
}

// Entries returns a copy of the open snapshot.
func (t *Transaction) Entries() []models.ScoreEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.ScoreEntry, len(t.snapshot))
	copy(out, t.snapshot)
	return out
}

// End writes the snapshot back when it changed and closes the transaction
// whether or not the write succeeds.
func (t *Transaction) End(ctx context.Context) error {
	t.mu.Lock()
	if !t.open {
		t.mu.Unlock()
		return t.misuse(ErrNoTransaction)
	}
	snapshot, dirty := t.snapshot, t.dirty
	t.snapshot = nil
	t.dirty = false
	t.mu.Unlock()

	var err error
	if dirty {
		if err = t.provider.Save(ctx, snapshot); err != nil {
			log.Printf("[SCORE] Failed to save score data: %v", err)
		} else {
			log.Printf("[SCORE] Saved %d score entries", len(snapshot))
		}
	}

	t.mu.Lock()
	t.open = false
	t.mu.Unlock()
	return err
}

// Execute opens a transaction, runs fn against it and always ends it.
func (t *Transaction) Execute(ctx context.Context, fn func(tx *Transaction) error) error {
	if err := t.Begin(ctx); err != nil {
		return err
	}
	fnErr := fn(t)
	endErr := t.End(ctx)
	if fnErr != nil {
		return fnErr
	}
	return endErr
}
