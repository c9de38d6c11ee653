package events

import (
	"fmt"
	"log"
	"sync"
)

// Kind names an input event coming from the headset.
type Kind string

const (
	MainMenuStart Kind = "main_menu_start"
	MainMenuHelp  Kind = "main_menu_help"
	MainMenuScore Kind = "main_menu_score"
	HelpSubmit    Kind = "help_submit"
	HelpCancel    Kind = "help_cancel"
	QuizStop      Kind = "quiz_stop"
	Exit          Kind = "exit"

	GameResultToMenu Kind = "game_result_to_menu"
	GameResultSave   Kind = "game_result_save"
	ScoreCancel      Kind = "score_cancel"

	KeyboardSubmit        Kind = "keyboard_submit"
	KeyboardCancel        Kind = "keyboard_cancel"
	KeyboardEmptyNameOK   Kind = "keyboard_empty_name_ok"
	HoleHit               Kind = "hole_hit"
	EasterEggHit          Kind = "easter_egg_hit"
	ControllerGrab        Kind = "controller_grab"
	ControllerUngrab      Kind = "controller_ungrab"
	TeleportButton        Kind = "teleport_button"
	ControllerReconnected Kind = "controller_reconnected"
	DebugSolve            Kind = "debug_solve"
)

// Kinds lists every kind the session understands.
var Kinds = []Kind{
	MainMenuStart, MainMenuHelp, MainMenuScore, HelpSubmit, HelpCancel, QuizStop, Exit,
	GameResultToMenu, GameResultSave, ScoreCancel,
	KeyboardSubmit, KeyboardCancel, KeyboardEmptyNameOK,
	HoleHit, EasterEggHit, ControllerGrab, ControllerUngrab, TeleportButton,
	ControllerReconnected, DebugSolve,
}

// Known reports whether k is a recognised kind.
func Known(k Kind) bool {
	for _, kind := range Kinds {
		if kind == k {
			return true
		}
	}
	return false
}

// Event is one input from the headset.
type Event struct {
	Kind    Kind   `json:"type"`
	Hand    string `json:"hand,omitempty"`    // "left" or "right"
	Hole    int    `json:"hole,omitempty"`    // 1-based answer hole
	Pressed bool   `json:"pressed,omitempty"` // teleport button state
	Text    string `json:"text,omitempty"`    // keyboard name text
}

// Handler reacts to an event.
type Handler func(Event)

type subscription struct {
	id      uint64
	owner   string
	handler Handler
}

// Registry is an observer registry with one-call teardown.
type Registry struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[Kind][]subscription
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[Kind][]subscription)}
}

// Subscribe registers handler for kind under owner. An owner may hold one
// subscription per kind; a second one is rejected.
func (r *Registry) Subscribe(owner string, kind Kind, handler Handler) (func(), error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.handlers[kind] {
		if s.owner == owner {
			return nil, fmt.Errorf("%s already subscribed to %s", owner, kind)
		}
	}
	r.nextID++
	id := r.nextID
	r.handlers[kind] = append(r.handlers[kind], subscription{id: id, owner: owner, handler: handler})

	return func() { r.remove(kind, id) }, nil
}

func (r *Registry) remove(kind Kind, id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	subs := r.handlers[kind]
	for i, s := range subs {
		if s.id == id {
			r.handlers[kind] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(r.handlers[kind]) == 0 {
		delete(r.handlers, kind)
	}
}

// Dispatch calls every handler subscribed to e.Kind and returns how many ran.
func (r *Registry) Dispatch(e Event) int {
	r.mu.RLock()
	subs := append([]subscription(nil), r.handlers[e.Kind]...)
	r.mu.RUnlock()

	if len(subs) == 0 {
		log.Printf("[EVENTS] No listener for %s", e.Kind)
	}
	for _, s := range subs {
		s.handler(e)
	}
	return len(subs)
}

// Count returns the number of live subscriptions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, subs := range r.handlers {
		n += len(subs)
	}
	return n
}

// Teardown removes every subscription held by owner.
func (r *Registry) Teardown(owner string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for kind, subs := range r.handlers {
		kept := subs[:0]
		for _, s := range subs {
			if s.owner != owner {
				kept = append(kept, s)
			}
		}
		if len(kept) == 0 {
			delete(r.handlers, kind)
		} else {
			r.handlers[kind] = kept
		}
	}
}
