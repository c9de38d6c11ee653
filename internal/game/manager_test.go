package game

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/quizgolf/backend/internal/controller"
	"github.com/quizgolf/backend/internal/events"
	"github.com/quizgolf/backend/internal/models"
	"github.com/quizgolf/backend/internal/score"
	"github.com/quizgolf/backend/internal/sound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMenu struct {
	panels        []Panel
	resultButtons []bool
	counters      []int
	timers        []float64
	questions     []models.Question

	resultTotal   int
	resultCorrect int
	resultSeconds float64
	resultCalls   int
}

func (f *fakeMenu) ShowPanel(p Panel)                 { f.panels = append(f.panels, p) }
func (f *fakeMenu) ShowGameResultButtons(show bool)   { f.resultButtons = append(f.resultButtons, show) }
func (f *fakeMenu) SetCountdownCounter(n int)         { f.counters = append(f.counters, n) }
func (f *fakeMenu) SetGameTimer(seconds float64)      { f.timers = append(f.timers, seconds) }
func (f *fakeMenu) SetQuestionData(q models.Question) { f.questions = append(f.questions, q) }

func (f *fakeMenu) SetGameResult(total, correct int, seconds float64) {
	f.resultTotal, f.resultCorrect, f.resultSeconds = total, correct, seconds
	f.resultCalls++
}

func (f *fakeMenu) lastPanel() Panel { return f.panels[len(f.panels)-1] }

func (f *fakeMenu) lastQuestion() models.Question { return f.questions[len(f.questions)-1] }

type fakeKeyboard struct {
	opens      int
	emptyOpens int
	closes     int
	names      []string
}

func (f *fakeKeyboard) OpenKeyboardPanel()      { f.opens++ }
func (f *fakeKeyboard) OpenEmptyNamePanel()     { f.emptyOpens++ }
func (f *fakeKeyboard) CloseAllKeyboardPanels() { f.closes++ }
func (f *fakeKeyboard) SetNameText(text string) { f.names = append(f.names, text) }

type fakeBoard struct {
	active   bool
	tooltips int
	clears   int
	data     []models.ScoreEntry
	scrolls  []float64
}

func (f *fakeBoard) Active() bool                        { return f.active }
func (f *fakeBoard) ShowBoard(show bool)                 { f.active = show }
func (f *fakeBoard) SetLoadingTooltip()                  { f.tooltips++ }
func (f *fakeBoard) SetScroll(normalized float64)        { f.scrolls = append(f.scrolls, normalized) }
func (f *fakeBoard) ScrollTo(float64)                    {}
func (f *fakeBoard) SetData(entries []models.ScoreEntry) { f.data = entries }
func (f *fakeBoard) ClearBoard()                         { f.clears++; f.data = nil }

type fakeRig struct{ teleports int }

func (f *fakeRig) TeleportHome() { f.teleports++ }

type fakeSound struct {
	themes int
	played []sound.Sound
}

func (f *fakeSound) PlayMainTheme()     { f.themes++ }
func (f *fakeSound) Play(s sound.Sound) { f.played = append(f.played, s) }

func (f *fakeSound) count(s sound.Sound) int {
	n := 0
	for _, p := range f.played {
		if p == s {
			n++
		}
	}
	return n
}

func (f *fakeSound) last() sound.Sound { return f.played[len(f.played)-1] }

type fakeDevice struct {
	profiles []controller.Profile
	ungrabs  int
}

func (f *fakeDevice) Apply(p controller.Profile) { f.profiles = append(f.profiles, p) }
func (f *fakeDevice) Ungrab()                    { f.ungrabs++ }

func (f *fakeDevice) last() controller.Profile { return f.profiles[len(f.profiles)-1] }

type stubQuiz struct {
	set models.QuizSet
	err error
}

func (s stubQuiz) LoadQuiz(context.Context) (models.QuizSet, error) { return s.set, s.err }

type memScores struct {
	entries []models.ScoreEntry
	saves   int
}

func (m *memScores) Load(context.Context) ([]models.ScoreEntry, error) {
	if m.entries == nil {
		return nil, score.ErrNotFound
	}
	return append([]models.ScoreEntry(nil), m.entries...), nil
}

func (m *memScores) Save(_ context.Context, entries []models.ScoreEntry) error {
	m.saves++
	m.entries = append([]models.ScoreEntry(nil), entries...)
	return nil
}

type harness struct {
	m        *StateManager
	loop     *Loop
	events   *events.Registry
	menu     *fakeMenu
	keyboard *fakeKeyboard
	board    *fakeBoard
	rig      *fakeRig
	sound    *fakeSound
	right    *fakeDevice
	left     *fakeDevice
	scores   *memScores
	exits    int
}

func twoQuestionQuiz() models.QuizSet {
	return models.QuizSet{
		NumberOfQuestionsForSession: 2,
		RoundTime:                   60,
		Questions: []models.Question{
			{Question: "1+1", Answer1: "2", Answer2: "3", Answer3: "4", NumberOfCorrectAnswer: 1},
			{Question: "2+2", Answer1: "2", Answer2: "3", Answer3: "4", NumberOfCorrectAnswer: 3},
		},
	}
}

func newHarness(t *testing.T, provider stubQuiz, debug bool) *harness {
	t.Helper()
	h := &harness{
		events:   events.NewRegistry(),
		menu:     &fakeMenu{},
		keyboard: &fakeKeyboard{},
		board:    &fakeBoard{},
		rig:      &fakeRig{},
		sound:    &fakeSound{},
		right:    &fakeDevice{},
		left:     &fakeDevice{},
		scores:   &memScores{},
	}

	var m *StateManager
	h.loop = NewLoop(60, func(dt float64) { m.Tick(dt) })
	m = NewStateManager(Deps{
		Menu:     h.menu,
		Keyboard: h.keyboard,
		Board:    h.board,
		Rig:      h.rig,
		Sound:    h.sound,
		Right:    h.right,
		Left:     h.left,
		Scores:   score.NewService(h.scores, h.loop, false),
		Quiz:     provider,
		Events:   h.events,
		OnExit:   func() { h.exits++ },
	}, Settings{
		StartCountdownSeconds: 3,
		FinalCountdownSeconds: 3,
		DefaultSessionSeconds: 300,
		DebugMode:             debug,
		Rand:                  rand.New(rand.NewPCG(1, 2)),
	})
	h.m = m
	m.Start(context.Background())
	return h
}

func (h *harness) send(e events.Event) {
	h.m.Dispatch(e)
}

func (h *harness) press(kind events.Kind) {
	h.send(events.Event{Kind: kind})
}

// settle lets score I/O started on worker goroutines rejoin the loop.
func (h *harness) settle() {
	for range 3 {
		h.loop.Wait()
		h.loop.Step(0)
	}
}

func (h *harness) startGame(t *testing.T) {
	t.Helper()
	h.press(events.MainMenuStart)
	h.loop.Step(3.5)
	require.Equal(t, StateInGame, h.m.State())
}

func (h *harness) answerCorrectly() {
	q, _ := h.m.sequence.CurrentQuestion()
	h.send(events.Event{Kind: events.HoleHit, Hole: q.NumberOfCorrectAnswer})
}

func (h *harness) finishGame(t *testing.T) {
	t.Helper()
	h.startGame(t)
	h.loop.Step(10)
	h.answerCorrectly()
	h.answerCorrectly()
	require.Equal(t, StateGameResult, h.m.State())
}

func TestStartShowsMainMenu(t *testing.T) {
	h := newHarness(t, stubQuiz{set: twoQuestionQuiz()}, false)

	assert.Equal(t, StateMainMenu, h.m.State())
	assert.Equal(t, PanelMainMenu, h.menu.lastPanel())
	assert.Equal(t, 1, h.sound.themes)
	assert.Equal(t, controller.Menu, h.right.last().Mode)
	assert.Equal(t, controller.Menu, h.left.last().Mode)
	assert.Equal(t, len(events.Kinds), h.events.Count())
}

func TestQuizLoadFailureUsesDefaultSet(t *testing.T) {
	h := newHarness(t, stubQuiz{err: errors.New("disk on fire")}, false)

	snap := h.m.Snapshot()
	assert.Equal(t, 300.0, snap.SessionSeconds)
	assert.Equal(t, 4, h.m.sequence.SessionLength())
}

func TestPreGameCountdown(t *testing.T) {
	h := newHarness(t, stubQuiz{set: twoQuestionQuiz()}, false)
	h.press(events.MainMenuStart)
	assert.Equal(t, StateCountdown, h.m.State())
	assert.Equal(t, PanelCountdown, h.menu.lastPanel())

	h.loop.Step(0.5)
	h.loop.Step(1)
	h.loop.Step(1)
	assert.Equal(t, []int{3, 2, 1}, h.menu.counters)
	assert.Equal(t, 3, h.sound.count(sound.Countdown))
	assert.Equal(t, StateCountdown, h.m.State())

	h.loop.Step(1)
	assert.Equal(t, sound.GameStart, h.sound.played[3])
	assert.Equal(t, StateInGame, h.m.State())
	assert.Equal(t, PanelQuiz, h.menu.lastPanel())
	assert.Equal(t, controller.Game, h.right.last().Mode)
	assert.Equal(t, controller.Game, h.left.last().Mode)
	require.Len(t, h.menu.questions, 1)
	assert.Equal(t, 60.0, h.menu.timers[0])
}

func TestHelpFlow(t *testing.T) {
	h := newHarness(t, stubQuiz{set: twoQuestionQuiz()}, false)

	h.press(events.MainMenuHelp)
	assert.Equal(t, StateHelp, h.m.State())
	h.press(events.HelpCancel)
	assert.Equal(t, StateMainMenu, h.m.State())

	h.press(events.MainMenuHelp)
	h.press(events.HelpSubmit)
	assert.Equal(t, StateCountdown, h.m.State())
}

func TestAnsweringAllQuestionsEndsSession(t *testing.T) {
	h := newHarness(t, stubQuiz{set: twoQuestionQuiz()}, false)
	h.startGame(t)

	first := h.menu.lastQuestion()
	h.send(events.Event{Kind: events.HoleHit, Hole: first.NumberOfCorrectAnswer%3 + 1})
	assert.Equal(t, sound.WrongAnswer, h.sound.last())
	assert.Len(t, h.menu.questions, 1)

	h.answerCorrectly()
	assert.Equal(t, sound.CorrectAnswer, h.sound.last())
	require.Len(t, h.menu.questions, 2)
	assert.NotEqual(t, first.Question, h.menu.lastQuestion().Question)

	h.loop.Step(10)
	h.answerCorrectly()

	assert.Equal(t, StateGameResult, h.m.State())
	assert.Equal(t, PanelGameResult, h.menu.lastPanel())
	assert.Equal(t, sound.GameEnd, h.sound.last())
	assert.Equal(t, []bool{true}, h.menu.resultButtons)
	assert.Equal(t, 2, h.menu.resultTotal)
	assert.Equal(t, 2, h.menu.resultCorrect)
	assert.InDelta(t, 10.0, h.menu.resultSeconds, 1e-9)
	assert.Equal(t, 1, h.rig.teleports)
	assert.GreaterOrEqual(t, h.right.ungrabs, 1)
	assert.GreaterOrEqual(t, h.left.ungrabs, 1)
	assert.Equal(t, controller.Menu, h.right.last().Mode)
}

func TestGameTimerExpiry(t *testing.T) {
	set := twoQuestionQuiz()
	set.RoundTime = 5
	h := newHarness(t, stubQuiz{set: set}, false)
	h.startGame(t)
	before := h.sound.count(sound.Countdown)

	h.loop.Step(1)
	assert.Equal(t, before, h.sound.count(sound.Countdown))
	h.loop.Step(1.5)
	h.loop.Step(1)
	h.loop.Step(1)
	assert.Equal(t, before+3, h.sound.count(sound.Countdown))
	assert.Equal(t, StateInGame, h.m.State())

	h.loop.Step(1)
	assert.Equal(t, StateGameResult, h.m.State())
	assert.Equal(t, 0.0, h.menu.timers[len(h.menu.timers)-1])
	assert.InDelta(t, 5.0, h.menu.resultSeconds, 1e-9)
	assert.Equal(t, 0, h.menu.resultCorrect)

	h.loop.Step(1)
	assert.Equal(t, 1, h.menu.resultCalls)
}

func TestFinalCountdownBeepsOnDisplayedSecond(t *testing.T) {
	set := twoQuestionQuiz()
	set.RoundTime = 5
	h := newHarness(t, stubQuiz{set: set}, false)
	h.startGame(t)
	before := h.sound.count(sound.Countdown)

	h.loop.Step(1)
	assert.Equal(t, before, h.sound.count(sound.Countdown), "4.0 left")
	h.loop.Step(0.5)
	assert.Equal(t, before+1, h.sound.count(sound.Countdown), "3.5 left")
	h.loop.Step(1)
	h.loop.Step(1)
	assert.Equal(t, before+3, h.sound.count(sound.Countdown), "1.5 left")
	assert.Equal(t, StateInGame, h.m.State())
}

func TestZeroQuestionSessionGoesToResult(t *testing.T) {
	h := newHarness(t, stubQuiz{set: twoQuestionQuiz()}, false)
	h.m.setQuiz(models.QuizSet{RoundTime: 30})

	h.press(events.MainMenuStart)
	h.loop.Step(3.5)

	assert.Equal(t, StateGameResult, h.m.State())
	assert.Empty(t, h.menu.questions)
	assert.Equal(t, 0, h.menu.resultTotal)
	assert.Equal(t, 0.0, h.menu.resultSeconds)
}

func TestStopReturnsToMenu(t *testing.T) {
	h := newHarness(t, stubQuiz{set: twoQuestionQuiz()}, false)
	h.startGame(t)

	h.send(events.Event{Kind: events.ControllerGrab, Hand: "right"})
	assert.Equal(t, controller.Grab, h.right.last().Mode)

	h.press(events.QuizStop)
	assert.Equal(t, StateMainMenu, h.m.State())
	assert.Equal(t, PanelMainMenu, h.menu.lastPanel())
	assert.Equal(t, 1, h.right.ungrabs)
	assert.Equal(t, controller.Menu, h.right.last().Mode)
	assert.Equal(t, 0.0, h.m.Snapshot().RemainingSeconds)

	timers := len(h.menu.timers)
	h.loop.Step(100)
	assert.Len(t, h.menu.timers, timers)
	assert.Equal(t, 0, h.menu.resultCalls)
}

func TestGrabAndUngrabSwitchModes(t *testing.T) {
	h := newHarness(t, stubQuiz{set: twoQuestionQuiz()}, false)

	h.send(events.Event{Kind: events.ControllerGrab, Hand: "left"})
	assert.Equal(t, controller.Menu, h.left.last().Mode)

	h.startGame(t)
	h.send(events.Event{Kind: events.ControllerGrab, Hand: "left"})
	assert.Equal(t, controller.Grab, h.left.last().Mode)
	h.send(events.Event{Kind: events.ControllerUngrab, Hand: "left"})
	assert.Equal(t, controller.Game, h.left.last().Mode)

	n := len(h.left.profiles)
	h.send(events.Event{Kind: events.ControllerGrab, Hand: "middle"})
	assert.Len(t, h.left.profiles, n)
}

func TestSaveFlow(t *testing.T) {
	h := newHarness(t, stubQuiz{set: twoQuestionQuiz()}, false)
	h.scores.entries = []models.ScoreEntry{{Name: "Slow", CorrectAnswers: 2, Time: 50}}
	h.finishGame(t)

	h.press(events.GameResultSave)
	assert.Equal(t, StateNameEntry, h.m.State())
	assert.Equal(t, 1, h.keyboard.opens)
	assert.Equal(t, []bool{true, false}, h.menu.resultButtons)

	h.send(events.Event{Kind: events.KeyboardSubmit, Text: "   "})
	assert.Equal(t, StateNameEntry, h.m.State())
	assert.Equal(t, 1, h.keyboard.emptyOpens)

	h.press(events.KeyboardEmptyNameOK)
	assert.Equal(t, 2, h.keyboard.opens)
	assert.Equal(t, []string{""}, h.keyboard.names)

	h.send(events.Event{Kind: events.KeyboardSubmit, Text: "Ada"})
	assert.Equal(t, StateScoreboard, h.m.State())
	assert.Equal(t, 1, h.keyboard.closes)
	assert.True(t, h.board.active)
	assert.Equal(t, 1, h.board.tooltips)

	h.settle()
	require.Len(t, h.scores.entries, 2)
	assert.Equal(t, models.ScoreEntry{Name: "Ada", CorrectAnswers: 2, Time: 10}, h.scores.entries[1])
	require.Len(t, h.board.data, 2)
	assert.Equal(t, "Ada", h.board.data[0].Name)
	assert.Equal(t, []float64{1.0}, h.board.scrolls)

	h.press(events.ScoreCancel)
	assert.Equal(t, StateMainMenu, h.m.State())
	assert.False(t, h.board.active)
}

func TestCancelNameEntrySkipsSave(t *testing.T) {
	h := newHarness(t, stubQuiz{set: twoQuestionQuiz()}, false)
	h.finishGame(t)

	h.press(events.GameResultSave)
	h.press(events.KeyboardCancel)
	assert.Equal(t, StateScoreboard, h.m.State())

	h.settle()
	assert.Equal(t, 0, h.scores.saves)
	assert.Empty(t, h.board.data)
	assert.True(t, h.board.active)
}

func TestResultBackToMenu(t *testing.T) {
	h := newHarness(t, stubQuiz{set: twoQuestionQuiz()}, false)
	h.finishGame(t)

	h.press(events.GameResultToMenu)
	assert.Equal(t, StateMainMenu, h.m.State())
	assert.Equal(t, PanelMainMenu, h.menu.lastPanel())

	h.startGame(t)
	assert.Equal(t, 0, h.m.sequence.Result().CorrectAnswers)
}

func TestScoreboardFromMenu(t *testing.T) {
	h := newHarness(t, stubQuiz{set: twoQuestionQuiz()}, false)
	h.scores.entries = []models.ScoreEntry{
		{Name: "B", CorrectAnswers: 1, Time: 10},
		{Name: "A", CorrectAnswers: 3, Time: 40},
		{Name: "C", CorrectAnswers: 3, Time: 20},
	}

	h.press(events.MainMenuScore)
	assert.Equal(t, StateScoreboard, h.m.State())
	assert.Equal(t, PanelNone, h.menu.lastPanel())

	h.settle()
	require.Len(t, h.board.data, 3)
	assert.Equal(t, []string{"C", "A", "B"}, []string{h.board.data[0].Name, h.board.data[1].Name, h.board.data[2].Name})
}

func TestStaleScoreLoadIsDropped(t *testing.T) {
	h := newHarness(t, stubQuiz{set: twoQuestionQuiz()}, false)
	h.scores.entries = []models.ScoreEntry{{Name: "A", CorrectAnswers: 1, Time: 1}}

	h.press(events.MainMenuScore)
	h.press(events.ScoreCancel)
	h.settle()

	assert.Equal(t, StateMainMenu, h.m.State())
	assert.Nil(t, h.board.data)
}

func TestEventsIgnoredOutsideTheirState(t *testing.T) {
	h := newHarness(t, stubQuiz{set: twoQuestionQuiz()}, false)
	panels := len(h.menu.panels)

	h.send(events.Event{Kind: events.HoleHit, Hole: 1})
	h.press(events.QuizStop)
	h.press(events.GameResultSave)
	h.send(events.Event{Kind: events.KeyboardSubmit, Text: "x"})
	h.press(events.ScoreCancel)
	h.press(events.HelpSubmit)

	assert.Equal(t, StateMainMenu, h.m.State())
	assert.Len(t, h.menu.panels, panels)
	assert.Empty(t, h.sound.played)
}

func TestTeleportArbitration(t *testing.T) {
	h := newHarness(t, stubQuiz{set: twoQuestionQuiz()}, false)
	h.startGame(t)

	h.send(events.Event{Kind: events.TeleportButton, Hand: "left", Pressed: true})
	h.send(events.Event{Kind: events.TeleportButton, Hand: "right", Pressed: true})
	assert.Equal(t, "", h.m.Snapshot().TeleportHolder)

	h.loop.Step(0)
	assert.Equal(t, "right", h.m.Snapshot().TeleportHolder)
	assert.False(t, h.left.last().Teleport)
	assert.True(t, h.right.last().Teleport)

	h.send(events.Event{Kind: events.TeleportButton, Hand: "right", Pressed: false})
	h.loop.Step(0)
	assert.Equal(t, "left", h.m.Snapshot().TeleportHolder)

	h.send(events.Event{Kind: events.TeleportButton, Hand: "left", Pressed: false})
	h.loop.Step(0)
	assert.Equal(t, "", h.m.Snapshot().TeleportHolder)
	assert.True(t, h.left.last().Teleport)
	assert.True(t, h.right.last().Teleport)
}

func TestTeleportBlockDoesNotCarryIntoNextGame(t *testing.T) {
	h := newHarness(t, stubQuiz{set: twoQuestionQuiz()}, false)
	h.startGame(t)

	h.send(events.Event{Kind: events.TeleportButton, Hand: "right", Pressed: true})
	h.loop.Step(0)
	require.Equal(t, "right", h.m.Snapshot().TeleportHolder)
	require.False(t, h.left.last().Teleport)

	h.loop.Step(100)
	require.Equal(t, StateGameResult, h.m.State())

	h.send(events.Event{Kind: events.TeleportButton, Hand: "right", Pressed: false})
	h.loop.Step(0)

	h.press(events.GameResultToMenu)
	h.startGame(t)
	h.loop.Step(0)

	assert.Equal(t, "", h.m.Snapshot().TeleportHolder)
	assert.True(t, h.left.last().Teleport)
	assert.True(t, h.right.last().Teleport)
	assert.False(t, h.m.Snapshot().TeleportPending)
}

func TestStopClearsPendingTeleport(t *testing.T) {
	h := newHarness(t, stubQuiz{set: twoQuestionQuiz()}, false)
	h.startGame(t)

	h.send(events.Event{Kind: events.TeleportButton, Hand: "left", Pressed: true})
	h.loop.Step(0)
	require.Equal(t, "left", h.m.Snapshot().TeleportHolder)

	h.press(events.QuizStop)
	h.startGame(t)

	assert.Equal(t, "", h.m.Snapshot().TeleportHolder)
	assert.True(t, h.right.last().Teleport)
}

func TestTeleportSkipsGrabbingHand(t *testing.T) {
	h := newHarness(t, stubQuiz{set: twoQuestionQuiz()}, false)
	h.startGame(t)

	h.send(events.Event{Kind: events.ControllerGrab, Hand: "right"})
	h.send(events.Event{Kind: events.TeleportButton, Hand: "right", Pressed: true})
	h.loop.Step(0)
	h.send(events.Event{Kind: events.TeleportButton, Hand: "left", Pressed: true})
	h.loop.Step(0)

	assert.Equal(t, "left", h.m.Snapshot().TeleportHolder)
}

func TestDebugSolve(t *testing.T) {
	h := newHarness(t, stubQuiz{set: twoQuestionQuiz()}, true)
	h.startGame(t)

	h.press(events.DebugSolve)
	assert.Equal(t, sound.CorrectAnswer, h.sound.last())
	h.press(events.DebugSolve)
	assert.Equal(t, StateGameResult, h.m.State())
	assert.Equal(t, 2, h.menu.resultCorrect)

	off := newHarness(t, stubQuiz{set: twoQuestionQuiz()}, false)
	off.startGame(t)
	played := len(off.sound.played)
	off.press(events.DebugSolve)
	assert.Len(t, off.sound.played, played)
}

func TestEasterEggPlaysInAnyState(t *testing.T) {
	h := newHarness(t, stubQuiz{set: twoQuestionQuiz()}, false)
	h.press(events.EasterEggHit)
	h.press(events.MainMenuHelp)
	h.press(events.EasterEggHit)
	assert.Equal(t, 2, h.sound.count(sound.EasterEgg))
}

func TestExitInvokesHook(t *testing.T) {
	h := newHarness(t, stubQuiz{set: twoQuestionQuiz()}, false)
	h.press(events.Exit)
	assert.Equal(t, 1, h.exits)
}

func TestReconnectReappliesProfile(t *testing.T) {
	h := newHarness(t, stubQuiz{set: twoQuestionQuiz()}, false)
	n := len(h.right.profiles)
	h.send(events.Event{Kind: events.ControllerReconnected, Hand: "right"})
	require.Len(t, h.right.profiles, n+1)
	assert.Equal(t, controller.Menu, h.right.last().Mode)
}

func TestTeardownRemovesListeners(t *testing.T) {
	h := newHarness(t, stubQuiz{set: twoQuestionQuiz()}, false)
	h.m.Teardown()

	assert.Equal(t, 0, h.events.Count())
	h.press(events.MainMenuStart)
	assert.Equal(t, StateMainMenu, h.m.State())
}

func TestSessionPostsOntoLoop(t *testing.T) {
	h := newHarness(t, stubQuiz{set: twoQuestionQuiz()}, false)
	s := NewSession(h.loop, h.m)

	s.Post(events.Event{Kind: events.MainMenuHelp})
	assert.Equal(t, StateMainMenu, h.m.State())
	h.loop.Step(0)
	assert.Equal(t, StateHelp, h.m.State())

	q := h.m.QuizSummary()
	assert.Equal(t, 2, q.QuestionCount)
	assert.Equal(t, 2, q.SessionLength)
	assert.Equal(t, 2, q.FreshQuestions)
	assert.Equal(t, 60.0, q.SessionSeconds)
}
