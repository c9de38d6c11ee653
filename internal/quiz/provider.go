package quiz

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/quizgolf/backend/internal/models"
)

var (
	ErrNotFound    = errors.New("quiz not found")
	ErrEmptyQuiz   = errors.New("quiz has no questions")
	ErrInvalidQuiz = errors.New("quiz has an invalid question")
)

// Provider loads quiz content from some backing source.
type Provider interface {
	LoadQuiz(ctx context.Context) (models.QuizSet, error)
}

// DefaultSet is the built-in quiz used whenever the configured source fails:
// four arithmetic questions over five minutes.
func DefaultSet() models.QuizSet {
	return models.QuizSet{
		NumberOfQuestionsForSession: 4,
		RoundTime:                   300,
		Questions: []models.Question{
			{Question: "2+2*2", Answer1: "4", Answer2: "6", Answer3: "8", NumberOfCorrectAnswer: 2},
			{Question: "(2+2)*2", Answer1: "4", Answer2: "6", Answer3: "8", NumberOfCorrectAnswer: 3},
			{Question: "2+2*2/2", Answer1: "4", Answer2: "6", Answer3: "8", NumberOfCorrectAnswer: 1},
			{Question: "(2+2)*2/2", Answer1: "4", Answer2: "6", Answer3: "8", NumberOfCorrectAnswer: 1},
		},
	}
}

// Validate checks a loaded set before it is handed to a sequence.
func Validate(set models.QuizSet) error {
	if len(set.Questions) == 0 {
		return ErrEmptyQuiz
	}
	for i, q := range set.Questions {
		if !q.Valid() {
			return fmt.Errorf("question %d: %w", i+1, ErrInvalidQuiz)
		}
	}
	return nil
}

// LoadQuiz calls onSuccess with the provider's quiz, or onFailure on any
// access, parse or validation error.
func LoadQuiz(ctx context.Context, p Provider, onSuccess func(models.QuizSet), onFailure func(error)) {
	if p == nil {
		onFailure(ErrNotFound)
		return
	}
	set, err := p.LoadQuiz(ctx)
	if err == nil {
		err = Validate(set)
	}
	if err != nil {
		onFailure(err)
		return
	}
	onSuccess(set)
}

// LoadOrDefault returns the provider's quiz, substituting DefaultSet on failure.
func LoadOrDefault(ctx context.Context, p Provider) models.QuizSet {
	var result models.QuizSet
	LoadQuiz(ctx, p, func(set models.QuizSet) {
		log.Printf("[QUIZ] Loaded %d questions (%d per session, round %ds)", len(set.Questions), set.SessionLength(), set.RoundTime)
		result = set
	}, func(err error) {
		log.Printf("[QUIZ] Failed to load quiz, using default set: %v", err)
		result = DefaultSet()
	})
	return result
}
