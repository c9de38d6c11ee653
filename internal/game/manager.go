package game

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"

	"github.com/quizgolf/backend/internal/controller"
	"github.com/quizgolf/backend/internal/events"
	"github.com/quizgolf/backend/internal/models"
	"github.com/quizgolf/backend/internal/quiz"
	"github.com/quizgolf/backend/internal/score"
	"github.com/quizgolf/backend/internal/sound"
)

const subscriberName = "game"

// Deps are the collaborators the state manager drives.
type Deps struct {
	Menu     MenuUI
	Keyboard KeyboardUI
	Board    score.BoardView
	Rig      Rig
	Sound    sound.Player
	Right    controller.Device
	Left     controller.Device
	Scores   ScoreService
	Quiz     quiz.Provider
	Events   *events.Registry
	OnExit   func()
}

// Settings are the timing and debug knobs of a session.
type Settings struct {
	StartCountdownSeconds float64
	FinalCountdownSeconds int
	DefaultSessionSeconds int
	DebugMode             bool
	Rand                  *rand.Rand
}

// StateManager is the application-state coordinator: it reacts to headset
// input, moves between panels, runs the timers and drives the question
// sequence. All methods must be called from the tick loop goroutine.
type StateManager struct {
	deps     Deps
	settings Settings

	events     *events.Registry
	subscribed bool

	right   *controller.Hand
	left    *controller.Hand
	arbiter *controller.Arbiter
	board   *score.Board

	quizSet  models.QuizSet
	sequence *quiz.Sequence

	state             State
	panel             Panel
	inGame            bool
	scoreboardVisible bool
	keyboardOpen      bool

	frame       int64
	countdown   *Countdown
	gameTimer   *Countdown
	duration    float64
	lastElapsed float64
	lastResult  quiz.Result
	boardLoads  int
}

// NewStateManager wires the hand controllers and helpers. Call Start before
// feeding events.
func NewStateManager(deps Deps, settings Settings) *StateManager {
	if deps.Events == nil {
		deps.Events = events.NewRegistry()
	}
	if settings.DefaultSessionSeconds <= 0 {
		settings.DefaultSessionSeconds = 300
	}

	right := controller.NewHand(controller.Right, deps.Right)
	left := controller.NewHand(controller.Left, deps.Left)

	return &StateManager{
		deps:     deps,
		settings: settings,
		events:   deps.Events,
		right:    right,
		left:     left,
		arbiter:  controller.NewArbiter(right, left),
		board:    score.NewBoard(deps.Board),
		state:    StateMainMenu,
		panel:    PanelNone,
	}
}

// Start loads the quiz, subscribes to input and shows the main menu. A quiz
// that fails to load is replaced by the built-in default set.
func (m *StateManager) Start(ctx context.Context) {
	m.setQuiz(quiz.LoadOrDefault(ctx, m.deps.Quiz))

	m.subscribe()
	m.initialSetup()
}

func (m *StateManager) setQuiz(set models.QuizSet) {
	m.quizSet = set
	m.sequence = quiz.NewSequence(set, m.settings.Rand)
	m.duration = set.Duration(m.settings.DefaultSessionSeconds)
	log.Printf("[GAME] Quiz ready: %d questions, %d per session, %.0fs per round",
		len(set.Questions), set.SessionLength(), m.duration)
}

func (m *StateManager) initialSetup() {
	m.deps.Sound.PlayMainTheme()
	m.showPanel(PanelMainMenu)
	m.state = StateMainMenu
	m.left.SetMode(controller.Menu)
	m.right.SetMode(controller.Menu)
}

func (m *StateManager) subscribe() {
	if m.subscribed {
		return
	}
	handlers := map[events.Kind]events.Handler{
		events.MainMenuStart:         func(events.Event) { m.mainMenuToCountdown() },
		events.MainMenuHelp:          func(events.Event) { m.mainMenuToHelp() },
		events.MainMenuScore:         func(events.Event) { m.mainMenuToScore() },
		events.HelpSubmit:            func(events.Event) { m.helpToCountdown() },
		events.HelpCancel:            func(events.Event) { m.helpToMainMenu() },
		events.QuizStop:              func(events.Event) { m.inGameToMainMenu() },
		events.Exit:                  func(events.Event) { m.exit() },
		events.GameResultToMenu:      func(events.Event) { m.gameResultToMainMenu() },
		events.GameResultSave:        func(events.Event) { m.gameResultToNameEntry() },
		events.ScoreCancel:           func(events.Event) { m.scoreToMainMenu() },
		events.KeyboardSubmit:        func(e events.Event) { m.keyboardSubmit(e.Text) },
		events.KeyboardCancel:        func(events.Event) { m.keyboardCancel() },
		events.KeyboardEmptyNameOK:   func(events.Event) { m.keyboardEmptyNameOK() },
		events.HoleHit:               func(e events.Event) { m.onHoleHit(e.Hole) },
		events.EasterEggHit:          func(events.Event) { m.deps.Sound.Play(sound.EasterEgg) },
		events.ControllerGrab:        func(e events.Event) { m.onGrab(e.Hand, true) },
		events.ControllerUngrab:      func(e events.Event) { m.onGrab(e.Hand, false) },
		events.TeleportButton:        func(e events.Event) { m.onTeleportButton(e.Hand, e.Pressed) },
		events.ControllerReconnected: func(e events.Event) { m.onReconnected(e.Hand) },
		events.DebugSolve:            func(events.Event) { m.debugSolve() },
	}
	for kind, h := range handlers {
		if _, err := m.events.Subscribe(subscriberName, kind, h); err != nil {
			log.Printf("[GAME] Subscribe %s: %v", kind, err)
		}
	}
	m.subscribed = true
}

// Teardown unregisters every listener the manager added.
func (m *StateManager) Teardown() {
	m.events.Teardown(subscriberName)
	m.subscribed = false
	log.Printf("[GAME] Listeners removed, %d left in registry", m.events.Count())
}

// Dispatch delivers a headset input event.
func (m *StateManager) Dispatch(e events.Event) {
	m.events.Dispatch(e)
}

// Tick advances the frame counter, resolves teleport arbitration and runs
// whichever timers are active.
func (m *StateManager) Tick(dt float64) {
	m.frame++
	m.arbiter.Tick(m.frame)

	switch {
	case m.countdown != nil:
		m.advanceCountdown(dt)
	case m.gameTimer != nil:
		m.advanceGameTimer(dt)
	}
}

func (m *StateManager) advanceCountdown(dt float64) {
	ticks, expired := m.countdown.Advance(dt)
	if !expired {
		m.deps.Menu.SetCountdownCounter(m.countdown.Display())
	}
	for range ticks {
		m.deps.Sound.Play(sound.Countdown)
	}
	if expired {
		m.deps.Sound.Play(sound.GameStart)
		m.countdown = nil
		m.countdownToInGame()
	}
}

func (m *StateManager) advanceGameTimer(dt float64) {
	ticks, expired := m.gameTimer.Advance(dt)
	m.deps.Menu.SetGameTimer(max(0, m.gameTimer.Remaining()))
	if expired {
		m.inGameToGameResult()
		return
	}
	for range ticks {
		m.deps.Sound.Play(sound.Countdown)
	}
}

func (m *StateManager) ignore(kind string) {
	log.Printf("[GAME] Ignoring %s in state %s", kind, m.state)
}

func (m *StateManager) showPanel(p Panel) {
	m.panel = p
	m.deps.Menu.ShowPanel(p)
}

func (m *StateManager) setHandModes(mode controller.Mode) {
	if mode == controller.Menu {
		m.arbiter.Reset()
	}
	m.left.SetMode(mode)
	m.right.SetMode(mode)
}

func (m *StateManager) startCountdown() {
	m.showPanel(PanelCountdown)
	m.state = StateCountdown
	m.countdown = NewCountdown(m.settings.StartCountdownSeconds, int(m.settings.StartCountdownSeconds))
}

func (m *StateManager) mainMenuToCountdown() {
	if m.state != StateMainMenu {
		m.ignore("start")
		return
	}
	m.startCountdown()
}

func (m *StateManager) mainMenuToHelp() {
	if m.state != StateMainMenu {
		m.ignore("help")
		return
	}
	m.showPanel(PanelHelp)
	m.state = StateHelp
}

func (m *StateManager) helpToMainMenu() {
	if m.state != StateHelp {
		m.ignore("help cancel")
		return
	}
	m.showPanel(PanelMainMenu)
	m.state = StateMainMenu
}

func (m *StateManager) helpToCountdown() {
	if m.state != StateHelp {
		m.ignore("help submit")
		return
	}
	m.startCountdown()
}

func (m *StateManager) mainMenuToScore() {
	if m.state != StateMainMenu {
		m.ignore("scoreboard")
		return
	}
	m.showPanel(PanelNone)
	m.board.ClearBoard()
	m.openScoreboard(nil)
}

func (m *StateManager) openScoreboard(entry *models.ScoreEntry) {
	m.state = StateScoreboard
	m.board.SetLoadingTooltip()
	m.board.ShowBoard(true)
	m.scoreboardVisible = true

	m.boardLoads++
	load := m.boardLoads
	refresh := func() {
		m.deps.Scores.LoadScoreList(func(status score.Status, entries []models.ScoreEntry) {
			if m.state != StateScoreboard || load != m.boardLoads {
				log.Printf("[GAME] Dropping stale scoreboard load (%s)", status)
				return
			}
			if status == score.StatusError {
				m.board.ClearBoard()
				return
			}
			m.board.Refresh(entries)
			m.board.Scroll(score.ResetToBegin)
		})
	}

	if entry == nil {
		refresh()
		return
	}
	m.deps.Scores.SaveEntry(*entry, refresh)
}

func (m *StateManager) scoreToMainMenu() {
	if m.state != StateScoreboard {
		m.ignore("score cancel")
		return
	}
	m.board.ShowBoard(false)
	m.scoreboardVisible = false
	m.showPanel(PanelMainMenu)
	m.state = StateMainMenu
}

func (m *StateManager) countdownToInGame() {
	m.inGame = true
	m.state = StateInGame
	m.setHandModes(controller.Game)
	m.showPanel(PanelQuiz)

	m.sequence.StartNewSequence()
	m.gameTimer = nil
	m.lastElapsed = 0

	q, ok := m.sequence.GetNextQuestion()
	if !ok {
		log.Printf("[GAME] No questions available, ending session")
		m.inGameToGameResult()
		return
	}

	m.deps.Menu.SetQuestionData(q)
	m.gameTimer = NewSessionTimer(m.duration, m.settings.FinalCountdownSeconds)
	m.deps.Menu.SetGameTimer(m.gameTimer.Remaining())
}

func (m *StateManager) onHoleHit(hole int) {
	if !m.inGame {
		return
	}
	log.Printf("[GAME] Ball entered hole %d", hole)
	m.submitAnswer(hole)
}

func (m *StateManager) submitAnswer(choice int) {
	if !m.sequence.SubmitAnswer(choice) {
		m.deps.Sound.Play(sound.WrongAnswer)
		return
	}
	m.deps.Sound.Play(sound.CorrectAnswer)
	q, ok := m.sequence.GetNextQuestion()
	if !ok {
		m.inGameToGameResult()
		return
	}
	m.deps.Menu.SetQuestionData(q)
}

func (m *StateManager) debugSolve() {
	if !m.settings.DebugMode || !m.inGame {
		return
	}
	q, ok := m.sequence.CurrentQuestion()
	if !ok {
		return
	}
	m.submitAnswer(q.NumberOfCorrectAnswer)
}

// ungrabAll releases held objects before interactions are disabled so no
// ungrab events arrive in the middle of a state change.
func (m *StateManager) ungrabAll() {
	m.left.Ungrab()
	m.right.Ungrab()
}

func (m *StateManager) inGameToMainMenu() {
	if m.state != StateInGame {
		m.ignore("stop")
		return
	}
	m.inGame = false
	m.ungrabAll()
	m.setHandModes(controller.Menu)
	m.gameTimer = nil
	m.showPanel(PanelMainMenu)
	m.state = StateMainMenu
}

func (m *StateManager) inGameToGameResult() {
	m.inGame = false
	m.ungrabAll()
	m.setHandModes(controller.Menu)

	m.showPanel(PanelGameResult)
	m.deps.Menu.ShowGameResultButtons(true)
	m.deps.Sound.Play(sound.GameEnd)

	m.lastResult = m.sequence.Result()
	m.lastElapsed = 0
	if m.gameTimer != nil {
		m.lastElapsed = m.gameTimer.Elapsed()
	}
	m.deps.Menu.SetGameResult(m.lastResult.QuestionCount, m.lastResult.CorrectAnswers, m.lastElapsed)

	m.gameTimer = nil
	m.state = StateGameResult
	if m.deps.Rig != nil {
		m.deps.Rig.TeleportHome()
	}
	log.Printf("[GAME] Session finished: %d/%d correct in %.1fs",
		m.lastResult.CorrectAnswers, m.lastResult.QuestionCount, m.lastElapsed)
}

func (m *StateManager) gameResultToMainMenu() {
	if m.state != StateGameResult {
		m.ignore("result to menu")
		return
	}
	m.closeKeyboard()
	m.showPanel(PanelMainMenu)
	m.state = StateMainMenu
}

func (m *StateManager) gameResultToNameEntry() {
	if m.state != StateGameResult {
		m.ignore("save")
		return
	}
	m.deps.Keyboard.OpenKeyboardPanel()
	m.keyboardOpen = true
	m.deps.Menu.ShowGameResultButtons(false)
	m.state = StateNameEntry
}

func (m *StateManager) closeKeyboard() {
	m.deps.Keyboard.SetNameText("")
	m.deps.Keyboard.CloseAllKeyboardPanels()
	m.keyboardOpen = false
}

func (m *StateManager) keyboardSubmit(name string) {
	if m.state != StateNameEntry {
		m.ignore("keyboard submit")
		return
	}
	if strings.TrimSpace(name) == "" {
		m.deps.Keyboard.OpenEmptyNamePanel()
		return
	}
	entry := m.makeEntry(name)
	m.nameEntryToScoreboard(&entry)
}

func (m *StateManager) keyboardCancel() {
	if m.state != StateNameEntry {
		m.ignore("keyboard cancel")
		return
	}
	m.nameEntryToScoreboard(nil)
}

func (m *StateManager) keyboardEmptyNameOK() {
	if m.state != StateNameEntry {
		m.ignore("empty name ok")
		return
	}
	m.deps.Keyboard.OpenKeyboardPanel()
	m.deps.Keyboard.SetNameText("")
}

func (m *StateManager) nameEntryToScoreboard(entry *models.ScoreEntry) {
	m.showPanel(PanelNone)
	m.closeKeyboard()
	m.openScoreboard(entry)
}

func (m *StateManager) makeEntry(name string) models.ScoreEntry {
	return models.ScoreEntry{
		Name:           strings.TrimSpace(name),
		CorrectAnswers: m.lastResult.CorrectAnswers,
		Time:           m.lastElapsed,
	}
}

func (m *StateManager) exit() {
	log.Printf("[GAME] Exit requested")
	if m.deps.OnExit != nil {
		m.deps.OnExit()
	}
}

func (m *StateManager) hand(name string) (*controller.Hand, error) {
	switch name {
	case "right":
		return m.right, nil
	case "left":
		return m.left, nil
	default:
		return nil, fmt.Errorf("unknown hand %q", name)
	}
}

func (m *StateManager) onGrab(name string, grabbing bool) {
	h, err := m.hand(name)
	if err != nil {
		log.Printf("[GAME] %v", err)
		return
	}
	h.SetGrabbing(grabbing)
	switch {
	case grabbing && h.Mode() == controller.Game:
		h.SetMode(controller.Grab)
	case !grabbing && h.Mode() == controller.Grab:
		h.SetMode(controller.Game)
	}
}

func (m *StateManager) onTeleportButton(name string, pressed bool) {
	h, err := m.hand(name)
	if err != nil {
		log.Printf("[GAME] %v", err)
		return
	}
	m.arbiter.OnTeleportButton(h.Side(), pressed, m.frame)
}

func (m *StateManager) onReconnected(name string) {
	h, err := m.hand(name)
	if err != nil {
		log.Printf("[GAME] %v", err)
		return
	}
	h.Reapply()
}

// Snapshot is a read-only view of the session for status endpoints.
type Snapshot struct {
	State            State       `json:"state"`
	Panel            Panel       `json:"panel"`
	Frame            int64       `json:"frame"`
	InGame           bool        `json:"in_game"`
	ScoreboardOpen   bool        `json:"scoreboard_open"`
	KeyboardOpen     bool        `json:"keyboard_open"`
	CountdownDisplay int         `json:"countdown_display,omitempty"`
	RemainingSeconds float64     `json:"remaining_seconds,omitempty"`
	SessionSeconds   float64     `json:"session_seconds"`
	Result           quiz.Result `json:"result"`
	ElapsedSeconds   float64     `json:"elapsed_seconds"`
	TeleportHolder   string      `json:"teleport_holder,omitempty"`
	TeleportPending  bool        `json:"teleport_pending"`
}

// Snapshot captures the current session state.
func (m *StateManager) Snapshot() Snapshot {
	s := Snapshot{
		State:          m.state,
		Panel:          m.panel,
		Frame:          m.frame,
		InGame:         m.inGame,
		ScoreboardOpen: m.scoreboardVisible,
		KeyboardOpen:   m.keyboardOpen,
		SessionSeconds: m.duration,
		Result:         m.lastResult,
		ElapsedSeconds: m.lastElapsed,
	}
	if m.countdown != nil {
		s.CountdownDisplay = m.countdown.Display()
	}
	if m.gameTimer != nil {
		s.RemainingSeconds = max(0, m.gameTimer.Remaining())
		s.Result = m.sequence.Result()
	}
	if side, ok := m.arbiter.Holder(); ok {
		s.TeleportHolder = side.String()
	}
	s.TeleportPending = m.arbiter.Pending()
	return s
}

// State returns the current session state.
func (m *StateManager) State() State {
	return m.state
}

// QuizSummary describes the quiz set the session is playing.
type QuizSummary struct {
	QuestionCount  int     `json:"question_count"`
	SessionLength  int     `json:"session_length"`
	SessionSeconds float64 `json:"session_seconds"`
	FreshQuestions int     `json:"fresh_questions"`
	UsedQuestions  int     `json:"used_questions"`
}

// QuizSummary reports the active quiz and the state of its question pools.
func (m *StateManager) QuizSummary() QuizSummary {
	s := QuizSummary{
		QuestionCount:  len(m.quizSet.Questions),
		SessionSeconds: m.duration,
	}
	if m.sequence != nil {
		s.SessionLength = m.sequence.SessionLength()
		s.FreshQuestions, s.UsedQuestions = m.sequence.PoolSizes()
	}
	return s
}
