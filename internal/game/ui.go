package game

import (
	"github.com/quizgolf/backend/internal/models"
	"github.com/quizgolf/backend/internal/score"
)

// MenuUI is the headset's menu canvas.
type MenuUI interface {
	ShowPanel(p Panel)
	ShowGameResultButtons(show bool)
	SetCountdownCounter(n int)
	SetGameResult(total, correct int, seconds float64)
	SetGameTimer(seconds float64)
	SetQuestionData(q models.Question)
}

// KeyboardUI is the on-screen keyboard used for name entry.
type KeyboardUI interface {
	OpenKeyboardPanel()
	OpenEmptyNamePanel()
	CloseAllKeyboardPanels()
	SetNameText(text string)
}

// Rig moves the player in the scene.
type Rig interface {
	TeleportHome()
}

// ScoreService loads and saves leaderboard entries off the tick loop.
type ScoreService interface {
	LoadScoreList(cb func(score.Status, []models.ScoreEntry))
	SaveEntry(entry models.ScoreEntry, cb func())
}
