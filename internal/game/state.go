package game

// State is the session state the manager is in.
type State string

const (
	StateMainMenu   State = "MAIN_MENU"
	StateHelp       State = "HELP"
	StateCountdown  State = "COUNTDOWN"
	StateInGame     State = "IN_GAME"
	StateGameResult State = "GAME_RESULT"
	StateNameEntry  State = "NAME_ENTRY"
	StateScoreboard State = "SCOREBOARD"
)

// Panel is the top-level menu panel shown on the headset. Exactly one is
// visible at a time; the scoreboard is separate and overlays PanelNone.
type Panel string

const (
	PanelNone       Panel = "none"
	PanelMainMenu   Panel = "main_menu"
	PanelQuiz       Panel = "quiz"
	PanelHelp       Panel = "help"
	PanelCountdown  Panel = "countdown"
	PanelGameResult Panel = "game_result"
)
