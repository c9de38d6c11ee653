package quiz

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/quizgolf/backend/internal/models"
)

// PostgresProvider reads the quiz from the quiz_settings and quiz_questions tables.
type PostgresProvider struct {
	db *sqlx.DB
}

func NewPostgresProvider(db *sqlx.DB) *PostgresProvider {
	return &PostgresProvider{db: db}
}

func (p *PostgresProvider) LoadQuiz(ctx context.Context) (models.QuizSet, error) {
	var set models.QuizSet
	err := p.db.GetContext(ctx, &set, `SELECT questions_per_session, round_time FROM quiz_settings WHERE id = 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.QuizSet{}, fmt.Errorf("quiz_settings: %w", ErrNotFound)
		}
		return models.QuizSet{}, fmt.Errorf("load quiz settings: %w", err)
	}

	err = p.db.SelectContext(ctx, &set.Questions, `
		SELECT id, question, answer1, answer2, answer3, correct_answer
		FROM quiz_questions
		ORDER BY id
	`)
	if err != nil {
		return models.QuizSet{}, fmt.Errorf("load quiz questions: %w", err)
	}
	return set, nil
}

// Store replaces the stored quiz in a single transaction.
func (p *PostgresProvider) Store(ctx context.Context, set models.QuizSet) error {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO quiz_settings (id, questions_per_session, round_time)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET
			questions_per_session = EXCLUDED.questions_per_session,
			round_time = EXCLUDED.round_time
	`, set.NumberOfQuestionsForSession, set.RoundTime); err != nil {
		return fmt.Errorf("upsert quiz settings: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM quiz_questions`); err != nil {
		return fmt.Errorf("clear quiz questions: %w", err)
	}

	for _, q := range set.Questions {
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO quiz_questions (question, answer1, answer2, answer3, correct_answer)
			VALUES (:question, :answer1, :answer2, :answer3, :correct_answer)
		`, q); err != nil {
			return fmt.Errorf("insert quiz question: %w", err)
		}
	}

	return tx.Commit()
}
