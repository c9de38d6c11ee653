package ws

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/quizgolf/backend/internal/controller"
	"github.com/quizgolf/backend/internal/game"
	"github.com/quizgolf/backend/internal/models"
)

// Broadcaster delivers encoded messages to the headset.
type Broadcaster interface {
	Broadcast(message any)
}

// replayOrder lists the message keys resent to a client on connect.
var replayOrder = []string{
	"show_panel", "result_buttons", "countdown_counter", "game_timer", "question", "game_result",
	"keyboard", "keyboard_text",
	"scoreboard_data", "scoreboard_visible",
	"sound_loop",
	"controller_profile:right", "controller_profile:left",
}

// Bridge turns state manager calls into websocket commands. It stands in for
// the menu, keyboard, scoreboard, rig, audio and controller devices on the
// headset.
type Bridge struct {
	out Broadcaster

	mu          sync.Mutex
	latest      map[string][]byte
	boardActive bool
}

func NewBridge(out Broadcaster) *Bridge {
	return &Bridge{out: out, latest: make(map[string][]byte)}
}

// FormatClock renders seconds as mm:ss, truncating fractions.
func FormatClock(seconds float64) string {
	total := int(max(0, seconds))
	return fmt.Sprintf("%02d:%02d", (total/60)%60, total%60)
}

func (b *Bridge) send(key, msgType string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("[WS] Error marshaling %s: %v", msgType, err)
		return
	}
	msg := WSMessage{Type: msgType, Data: raw}
	if key != "" {
		encoded, err := json.Marshal(msg)
		if err == nil {
			b.mu.Lock()
			b.latest[key] = encoded
			b.mu.Unlock()
		}
	}
	b.out.Broadcast(msg)
}

func (b *Bridge) forget(keys ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, k := range keys {
		delete(b.latest, k)
	}
}

// Replay returns the latest state-bearing messages in a stable order.
func (b *Bridge) Replay() [][]byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out [][]byte
	for _, k := range replayOrder {
		if msg, ok := b.latest[k]; ok {
			out = append(out, msg)
		}
	}
	return out
}

// Menu

func (b *Bridge) ShowPanel(p game.Panel) {
	b.send("show_panel", "show_panel", payload{"panel": p})
	switch p {
	case game.PanelQuiz:
		b.forget("game_result", "countdown_counter")
	case game.PanelMainMenu:
		b.forget("question", "game_timer", "game_result", "result_buttons", "countdown_counter")
	}
}

func (b *Bridge) ShowGameResultButtons(show bool) {
	b.send("result_buttons", "result_buttons", payload{"visible": show})
}

func (b *Bridge) SetCountdownCounter(n int) {
	b.send("countdown_counter", "countdown_counter", payload{"value": n})
}

func (b *Bridge) SetGameResult(total, correct int, seconds float64) {
	b.send("game_result", "game_result", payload{
		"total":   total,
		"correct": correct,
		"seconds": seconds,
		"score":   fmt.Sprintf("%d/%d", correct, total),
		"time":    FormatClock(seconds),
	})
}

func (b *Bridge) SetGameTimer(seconds float64) {
	b.send("game_timer", "game_timer", payload{"seconds": seconds, "text": FormatClock(seconds)})
}

func (b *Bridge) SetQuestionData(q models.Question) {
	b.send("question", "question", payload{"question": q.Question, "answers": q.Answers()})
}

// Keyboard

func (b *Bridge) OpenKeyboardPanel() {
	b.send("keyboard", "keyboard", payload{"panel": "name"})
}

func (b *Bridge) OpenEmptyNamePanel() {
	b.send("keyboard", "keyboard", payload{"panel": "empty_name"})
}

func (b *Bridge) CloseAllKeyboardPanels() {
	b.send("", "keyboard", payload{"panel": "closed"})
	b.forget("keyboard", "keyboard_text")
}

func (b *Bridge) SetNameText(text string) {
	b.send("keyboard_text", "keyboard_text", payload{"text": text})
}

// Scoreboard

type scoreRow struct {
	Rank    int     `json:"rank"`
	Name    string  `json:"name"`
	Correct int     `json:"correct"`
	Seconds float64 `json:"seconds"`
	Time    string  `json:"time"`
}

func (b *Bridge) Active() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.boardActive
}

func (b *Bridge) ShowBoard(show bool) {
	b.mu.Lock()
	b.boardActive = show
	b.mu.Unlock()
	b.send("scoreboard_visible", "scoreboard_visible", payload{"visible": show})
}

func (b *Bridge) SetLoadingTooltip() {
	b.send("scoreboard_data", "scoreboard_loading", payload{})
}

func (b *Bridge) SetScroll(normalized float64) {
	b.send("", "scoreboard_scroll", payload{"position": normalized})
}

func (b *Bridge) ScrollTo(normalized float64) {
	b.send("", "scoreboard_scroll_to", payload{"position": normalized})
}

func (b *Bridge) SetData(entries []models.ScoreEntry) {
	rows := make([]scoreRow, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, scoreRow{
			Rank:    i + 1,
			Name:    e.Name,
			Correct: e.CorrectAnswers,
			Seconds: e.Time,
			Time:    FormatClock(e.Time),
		})
	}
	b.send("scoreboard_data", "scoreboard_data", payload{"entries": rows})
}

func (b *Bridge) ClearBoard() {
	b.send("", "scoreboard_clear", payload{})
	b.forget("scoreboard_data")
}

// Rig

func (b *Bridge) TeleportHome() {
	b.send("", "teleport_home", payload{})
}

// Audio

func (b *Bridge) PlayLoop(clip string) {
	b.send("sound_loop", "sound_loop", payload{"clip": clip})
}

func (b *Bridge) PlayOneShot(clip string) {
	b.send("", "sound", payload{"clip": clip})
}

// Controllers

// HandDevice returns the controller device for side.
func (b *Bridge) HandDevice(side controller.Side) controller.Device {
	return &handDevice{bridge: b, side: side}
}

type handDevice struct {
	bridge *Bridge
	side   controller.Side
}

func (d *handDevice) Apply(p controller.Profile) {
	d.bridge.send("controller_profile:"+d.side.String(), "controller_profile", payload{
		"hand":    d.side.String(),
		"mode":    p.Mode.String(),
		"profile": p,
	})
}

func (d *handDevice) Ungrab() {
	d.bridge.send("", "controller_ungrab", payload{"hand": d.side.String()})
}

type payload = map[string]any
