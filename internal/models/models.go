package models

import "strings"

// DefaultQuestionsPerSession is used when a quiz set does not say how many
// questions one session should draw.
const DefaultQuestionsPerSession = 5

// Question is a single quiz question with three answer holes.
// NumberOfCorrectAnswer is 1-based.
type Question struct {
	ID                    int    `db:"id" json:"-" yaml:"-"`
	Question              string `db:"question" json:"Question" yaml:"question"`
	Answer1               string `db:"answer1" json:"Answer1" yaml:"answer1"`
	Answer2               string `db:"answer2" json:"Answer2" yaml:"answer2"`
	Answer3               string `db:"answer3" json:"Answer3" yaml:"answer3"`
	NumberOfCorrectAnswer int    `db:"correct_answer" json:"NumberOfCorrectAnswer" yaml:"correct"`
}

// Answers returns the three answer labels in hole order.
func (q Question) Answers() [3]string {
	return [3]string{q.Answer1, q.Answer2, q.Answer3}
}

// Valid reports whether the question can be played.
func (q Question) Valid() bool {
	return strings.TrimSpace(q.Question) != "" && q.NumberOfCorrectAnswer >= 1 && q.NumberOfCorrectAnswer <= 3
}

// QuizSet is the content loaded once per boot.
type QuizSet struct {
	NumberOfQuestionsForSession int        `db:"questions_per_session" json:"NumberOfQuestionsForSession" yaml:"questions_per_session"`
	RoundTime                   int        `db:"round_time" json:"RoundTime" yaml:"round_time"`
	Questions                   []Question `json:"Questions" yaml:"questions"`
}

// SessionLength is the configured number of questions per session.
func (q QuizSet) SessionLength() int {
	if q.NumberOfQuestionsForSession <= 0 {
		return DefaultQuestionsPerSession
	}
	return q.NumberOfQuestionsForSession
}

// Duration returns the round time in seconds, or fallback when the set has none.
func (q QuizSet) Duration(fallback int) float64 {
	if q.RoundTime <= 0 {
		return float64(fallback)
	}
	return float64(q.RoundTime)
}

// ScoreEntry is one leaderboard row. JSON keys match the persisted score file.
type ScoreEntry struct {
	Name           string  `db:"name" json:"Name"`
	CorrectAnswers int     `db:"correct_answers" json:"CorrectAnswers"`
	Time           float64 `db:"time_seconds" json:"Time"`
}
