package controller

import (
	"fmt"
	"log"
)

// Side identifies a hand controller.
type Side int

const (
	Right Side = iota
	Left
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Mode is the interaction mode of one hand controller.
type Mode int

const (
	Menu Mode = iota
	Game
	Grab
)

func (m Mode) String() string {
	switch m {
	case Menu:
		return "menu"
	case Game:
		return "game"
	case Grab:
		return "grab"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// BeamMode controls when a pointer beam is drawn.
type BeamMode string

const (
	BeamAlwaysShow  BeamMode = "always_show"
	BeamAlwaysHide  BeamMode = "always_hide"
	BeamShowOnPress BeamMode = "show_on_press"
)

// Profile is the full interaction setup pushed to a controller device.
type Profile struct {
	Side          Side     `json:"-"`
	Mode          Mode     `json:"-"`
	Interactions  bool     `json:"interactions"`
	Teleport      bool     `json:"teleport"`
	StraightBeam  BeamMode `json:"straight_beam"`
	BezierBeam    BeamMode `json:"bezier_beam"`
	UIInteraction bool     `json:"ui_interaction"`
}

// ProfileFor returns the setup for side in mode. The right hand keeps its UI
// pointer in Menu and Game; the left hand never has one.
func ProfileFor(side Side, mode Mode) Profile {
	p := Profile{Side: side, Mode: mode, StraightBeam: BeamAlwaysHide, BezierBeam: BeamAlwaysHide}
	switch mode {
	case Menu:
		if side == Right {
			p.StraightBeam = BeamAlwaysShow
			p.UIInteraction = true
		}
	case Game:
		p.Interactions = true
		p.Teleport = true
		if side == Right {
			p.StraightBeam = BeamAlwaysShow
			p.BezierBeam = BeamAlwaysShow
			p.UIInteraction = true
		} else {
			p.BezierBeam = BeamShowOnPress
		}
	case Grab:
		p.Interactions = true
	}
	return p
}

// Device is the engine-side controller the hand drives.
type Device interface {
	Apply(p Profile)
	Ungrab()
}

// Hand holds the session-scoped state of one controller.
type Hand struct {
	side   Side
	device Device

	mode            Mode
	grabbing        bool
	teleportBlocked bool
}

// NewHand starts in Menu mode and applies that profile to the device.
func NewHand(side Side, device Device) *Hand {
	h := &Hand{side: side, device: device, mode: Menu}
	h.apply()
	return h
}

func (h *Hand) Side() Side     { return h.side }
func (h *Hand) Mode() Mode     { return h.mode }
func (h *Hand) Grabbing() bool { return h.grabbing }
func (h *Hand) Blocked() bool  { return h.teleportBlocked }

func (h *Hand) apply() {
	if h.device == nil {
		return
	}
	p := ProfileFor(h.side, h.mode)
	if h.mode == Game && h.teleportBlocked {
		p.Teleport = false
		p.BezierBeam = BeamAlwaysHide
	}
	h.device.Apply(p)
}

// SetMode switches the controller mode. Menu mode drops any teleport block so
// the next game starts with teleport enabled.
func (h *Hand) SetMode(mode Mode) {
	switch mode {
	case Menu, Game, Grab:
	default:
		log.Printf("[HAND] Invalid mode %d for %s hand", int(mode), h.side)
		return
	}
	h.mode = mode
	if mode == Menu {
		h.teleportBlocked = false
	}
	h.apply()
}

// Ungrab drops whatever the hand holds.
func (h *Hand) Ungrab() {
	if h.device != nil {
		h.device.Ungrab()
	}
	h.grabbing = false
}

// SetGrabbing records a grab state change reported by the device.
func (h *Hand) SetGrabbing(grabbing bool) {
	h.grabbing = grabbing
}

// BlockTeleport enables or disables teleport. Only Game mode is affected.
func (h *Hand) BlockTeleport(block bool) {
	if h.mode != Game {
		return
	}
	h.teleportBlocked = block
	h.apply()
}

// Reapply pushes the current profile again, e.g. after the device reconnects.
func (h *Hand) Reapply() {
	h.apply()
}
