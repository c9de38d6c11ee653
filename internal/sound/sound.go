package sound

import (
	"fmt"
	"log"
)

// Sound is an in-game one-shot sound.
type Sound int

const (
	CorrectAnswer Sound = iota
	WrongAnswer
	Countdown
	GameEnd
	GameStart
	EasterEgg
)

func (s Sound) String() string {
	switch s {
	case CorrectAnswer:
		return "correct_answer"
	case WrongAnswer:
		return "wrong_answer"
	case Countdown:
		return "countdown"
	case GameEnd:
		return "game_end"
	case GameStart:
		return "game_start"
	case EasterEgg:
		return "easter_egg"
	default:
		return fmt.Sprintf("sound(%d)", int(s))
	}
}

// Player is what the game session needs from audio.
type Player interface {
	PlayMainTheme()
	Play(s Sound)
}

// Sink plays clips on the headset.
type Sink interface {
	PlayLoop(clip string)
	PlayOneShot(clip string)
}

// ClipTable maps sounds to clip names.
type ClipTable struct {
	MainTheme     string
	CorrectAnswer string
	WrongAnswer   string
	Countdown     string
	GameEnd       string
	GameStart     string
	EasterEgg     string

	// EasterEggUsesStartClip makes the easter egg play the game-start clip,
	// matching the shipped game.
	EasterEggUsesStartClip bool
}

// DefaultClips returns the stock clip names.
func DefaultClips(easterEggUsesStartClip bool) ClipTable {
	return ClipTable{
		MainTheme:              "main_theme",
		CorrectAnswer:          "correct_answer",
		WrongAnswer:            "wrong_answer",
		Countdown:              "countdown",
		GameEnd:                "game_end",
		GameStart:              "game_start",
		EasterEgg:              "easter_egg",
		EasterEggUsesStartClip: easterEggUsesStartClip,
	}
}

// Clip resolves s to a clip name.
func (t ClipTable) Clip(s Sound) (string, bool) {
	switch s {
	case CorrectAnswer:
		return t.CorrectAnswer, true
	case WrongAnswer:
		return t.WrongAnswer, true
	case Countdown:
		return t.Countdown, true
	case GameEnd:
		return t.GameEnd, true
	case GameStart:
		return t.GameStart, true
	case EasterEgg:
		if t.EasterEggUsesStartClip {
			return t.GameStart, true
		}
		return t.EasterEgg, true
	default:
		return "", false
	}
}

// Manager resolves sounds through a clip table and plays them on a sink.
type Manager struct {
	clips ClipTable
	sink  Sink
}

func NewManager(clips ClipTable, sink Sink) *Manager {
	return &Manager{clips: clips, sink: sink}
}

func (m *Manager) PlayMainTheme() {
	m.sink.PlayLoop(m.clips.MainTheme)
}

func (m *Manager) Play(s Sound) {
	clip, ok := m.clips.Clip(s)
	if !ok {
		log.Printf("[SOUND] Unknown sound %v", s)
		return
	}
	m.sink.PlayOneShot(clip)
}
