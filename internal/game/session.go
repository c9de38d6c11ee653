package game

import (
	"context"

	"github.com/quizgolf/backend/internal/events"
)

// Session gives other goroutines safe access to a state manager owned by a
// loop.
type Session struct {
	loop    *Loop
	manager *StateManager
}

func NewSession(loop *Loop, manager *StateManager) *Session {
	return &Session{loop: loop, manager: manager}
}

// Post queues an input event for the next frame.
func (s *Session) Post(e events.Event) {
	s.loop.Post(func() { s.manager.Dispatch(e) })
}

// Snapshot reads the session state on the loop.
func (s *Session) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := s.loop.Call(ctx, func() { snap = s.manager.Snapshot() })
	return snap, err
}

// Quiz reads the active quiz summary on the loop.
func (s *Session) Quiz(ctx context.Context) (QuizSummary, error) {
	var q QuizSummary
	err := s.loop.Call(ctx, func() { q = s.manager.QuizSummary() })
	return q, err
}
