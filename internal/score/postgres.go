package score

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/quizgolf/backend/internal/models"
)

// PostgresProvider keeps the leaderboard in the score_entries table. An empty
// table is a valid empty leaderboard, so Load never reports ErrNotFound.
type PostgresProvider struct {
	db *sqlx.DB
}

func NewPostgresProvider(db *sqlx.DB) *PostgresProvider {
	return &PostgresProvider{db: db}
}

func (p *PostgresProvider) Load(ctx context.Context) ([]models.ScoreEntry, error) {
	var entries []models.ScoreEntry
	err := p.db.SelectContext(ctx, &entries, `SELECT name, correct_answers, time_seconds FROM score_entries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load score entries: %w", err)
	}
	return entries, nil
}

// Save replaces the table contents with entries. Last writer wins.
func (p *PostgresProvider) Save(ctx context.Context, entries []models.ScoreEntry) error {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM score_entries`); err != nil {
		return fmt.Errorf("clear score entries: %w", err)
	}
	for _, e := range entries {
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO score_entries (name, correct_answers, time_seconds, created_at)
			VALUES (:name, :correct_answers, :time_seconds, NOW())
		`, e); err != nil {
			return fmt.Errorf("insert score entry: %w", err)
		}
	}
	return tx.Commit()
}
