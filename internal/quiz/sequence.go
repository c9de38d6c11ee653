package quiz

import (
	"math/rand/v2"

	"github.com/quizgolf/backend/internal/models"
)

// Result is a snapshot of one session's progress.
type Result struct {
	QuestionCount     int `json:"question_count"`
	QuestionsAnswered int `json:"questions_answered"`
	CorrectAnswers    int `json:"correct_answers"`
}

// Sequence draws unique questions per session from a pool that is recycled
// once it can no longer fill a whole session.
type Sequence struct {
	length int
	rng    *rand.Rand

	fresh []models.Question
	used  []models.Question

	session []models.Question
	cursor  int // index of the current question, -1 before the first draw

	questionsAnswered int
	correctAnswers    int
	answered          bool
}

// NewSequence copies the quiz questions into the fresh pool.
func NewSequence(set models.QuizSet, rng *rand.Rand) *Sequence {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	fresh := make([]models.Question, len(set.Questions))
	copy(fresh, set.Questions)
	return &Sequence{
		length: set.SessionLength(),
		rng:    rng,
		fresh:  fresh,
		cursor: -1,
	}
}

// SessionLength is the configured number of questions per session.
func (s *Sequence) SessionLength() int {
	return s.length
}

// PoolSizes reports how many questions are fresh and how many were used.
func (s *Sequence) PoolSizes() (fresh, used int) {
	return len(s.fresh), len(s.used)
}

func (s *Sequence) recycle() {
	s.fresh = append(s.fresh, s.used...)
	s.used = s.used[:0]
}

// StartNewSequence resets counters and samples the next session.
func (s *Sequence) StartNewSequence() {
	if len(s.fresh) < s.length {
		s.recycle()
	}

	s.correctAnswers = 0
	s.questionsAnswered = 0
	s.answered = false
	s.cursor = -1
	s.session = s.session[:0]

	n := min(len(s.fresh), s.length)
	for i := 0; i < n; i++ {
		idx := s.rng.IntN(len(s.fresh))
		q := s.fresh[idx]
		s.fresh = append(s.fresh[:idx], s.fresh[idx+1:]...)
		s.used = append(s.used, q)
		s.session = append(s.session, q)
	}
}

// GetNextQuestion advances to the next question of the session. It returns
// false when the session is exhausted.
func (s *Sequence) GetNextQuestion() (models.Question, bool) {
	if s.cursor+1 >= len(s.session) {
		s.cursor = len(s.session)
		return models.Question{}, false
	}
	s.cursor++
	s.answered = false
	return s.session[s.cursor], true
}

// CurrentQuestion returns the question being played, if any.
func (s *Sequence) CurrentQuestion() (models.Question, bool) {
	if s.cursor < 0 || s.cursor >= len(s.session) {
		return models.Question{}, false
	}
	return s.session[s.cursor], true
}

// SubmitAnswer scores a 1-based hole index against the current question.
// Once the question is solved further submissions are ignored.
func (s *Sequence) SubmitAnswer(choice int) bool {
	q, ok := s.CurrentQuestion()
	if !ok || s.answered {
		return false
	}
	s.questionsAnswered++
	if q.NumberOfCorrectAnswer != choice {
		return false
	}
	s.answered = true
	s.correctAnswers++
	return true
}

// Result returns the counters of the running session.
func (s *Sequence) Result() Result {
	return Result{
		QuestionCount:     len(s.session),
		QuestionsAnswered: s.questionsAnswered,
		CorrectAnswers:    s.correctAnswers,
	}
}
