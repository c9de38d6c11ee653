package score

import (
	"log"
	"sort"

	"github.com/quizgolf/backend/internal/models"
)

// Sorted returns a copy of entries in leaderboard order: most correct answers
// first, then fastest time.
func Sorted(entries []models.ScoreEntry) []models.ScoreEntry {
	sorted := make([]models.ScoreEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CorrectAnswers == sorted[j].CorrectAnswers {
			return sorted[i].Time < sorted[j].Time
		}
		return sorted[i].CorrectAnswers > sorted[j].CorrectAnswers
	})
	return sorted
}

// ScrollMode controls how the board scrolls after a refresh.
type ScrollMode int

const (
	ResetToBegin ScrollMode = iota
	ScrollToEnd
)

// BoardView is the scoreboard panel on the headset.
type BoardView interface {
	Active() bool
	ShowBoard(show bool)
	SetLoadingTooltip()
	SetScroll(normalized float64)
	ScrollTo(normalized float64)
	SetData(entries []models.ScoreEntry)
	ClearBoard()
}

// Board wraps the scoreboard panel with leaderboard-specific behaviour.
type Board struct {
	view BoardView
}

func NewBoard(view BoardView) *Board {
	return &Board{view: view}
}

func (b *Board) SetLoadingTooltip() {
	b.view.SetLoadingTooltip()
}

func (b *Board) ClearBoard() {
	b.view.ClearBoard()
}

func (b *Board) ShowBoard(show bool) {
	if show && !b.view.Active() {
		b.view.ShowBoard(true)
		return
	}
	if !show {
		b.view.ShowBoard(false)
	}
}

// Refresh replaces the board content with the sorted entries. The panel is
// hidden while data changes and restored afterwards.
func (b *Board) Refresh(entries []models.ScoreEntry) {
	active := b.view.Active()
	b.view.ShowBoard(false)
	b.view.ClearBoard()
	b.view.SetData(Sorted(entries))
	b.view.ShowBoard(active)
}

func (b *Board) Scroll(mode ScrollMode) {
	if !b.view.Active() {
		log.Printf("[SCORE] Scrolling a hidden scoreboard has no effect")
		return
	}
	switch mode {
	case ResetToBegin:
		b.view.SetScroll(1.0)
	case ScrollToEnd:
		b.view.SetScroll(1.0)
		b.view.ScrollTo(0.0)
	default:
		log.Printf("[SCORE] Unknown scroll mode %d", mode)
	}
}
