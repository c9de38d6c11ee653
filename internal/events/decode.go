package events

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrUnknownKind = errors.New("unknown event type")
	ErrBadHand     = errors.New("hand must be left or right")
)

// Decode parses a JSON input event and checks it names a known kind. Events
// addressed to a controller must say which hand.
func Decode(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, fmt.Errorf("invalid event payload: %w", err)
	}
	if err := e.Validate(); err != nil {
		return Event{}, err
	}
	return e, nil
}

// Validate checks the kind and, for controller events, the hand.
func (e Event) Validate() error {
	if !Known(e.Kind) {
		return fmt.Errorf("%w %q", ErrUnknownKind, e.Kind)
	}
	switch e.Kind {
	case ControllerGrab, ControllerUngrab, TeleportButton, ControllerReconnected:
		if e.Hand != "left" && e.Hand != "right" {
			return ErrBadHand
		}
	}
	return nil
}
