package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/charcontroller/controller"
)

type action int

const (
	actNone action = iota
	actLeft
	actRight
	actUp
	actJump
	actDash
	actReset
	actQuit
)

// Terminals only report key presses and auto-repeats, never releases. A
// key counts as held until no repeat has arrived for releaseAfter.
type heldKeys struct {
	releaseAfter time.Duration
	last         map[action]time.Time
	reset        bool
}

func newHeldKeys(releaseAfter time.Duration) *heldKeys {
	return &heldKeys{
		releaseAfter: releaseAfter,
		last:         make(map[action]time.Time),
	}
}

func (h *heldKeys) press(a action, now time.Time) {
	switch a {
	case actNone, actQuit:
		return
	case actReset:
		h.reset = true
	default:
		h.last[a] = now
	}
}

func (h *heldKeys) held(a action, now time.Time) bool {
	t, ok := h.last[a]
	return ok && now.Sub(t) < h.releaseAfter
}

// snapshot returns the held keys as of now. Reset fires once per press.
func (h *heldKeys) snapshot(now time.Time, prev controller.InputSnapshot) controller.InputSnapshot {
	in := controller.InputSnapshot{
		Left:  h.held(actLeft, now),
		Right: h.held(actRight, now),
		Up:    h.held(actUp, now),
		Jump:  h.held(actJump, now),
		Dash:  h.held(actDash, now),
		Reset: h.reset,
	}
	h.reset = false
	return in.WithEdges(prev)
}

func actionFor(ev *tcell.EventKey) action {
	return keyAction(ev.Key(), ev.Rune())
}

func keyAction(key tcell.Key, r rune) action {
	switch key {
	case tcell.KeyLeft:
		return actLeft
	case tcell.KeyRight:
		return actRight
	case tcell.KeyUp:
		return actUp
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actQuit
	case tcell.KeyRune:
		switch r {
		case 'a', 'h':
			return actLeft
		case 'd', 'l':
			return actRight
		case 'w', 'k':
			return actUp
		case ' ', 'z':
			return actJump
		case 'x', 'j':
			return actDash
		case 'r':
			return actReset
		case 'q':
			return actQuit
		}
	}
	return actNone
}
