package controller

import "strings"

// Events is a set of discrete things that happened during a tick. Hosts use
// it for sound and visual cues.
type Events uint16

const (
	EventJump Events = 1 << iota
	EventDoubleJump
	EventQueuedJump
	EventWallJump
	EventDash
	EventLand
	EventClimbStart
	EventClimbEnd
	EventReset
)

var eventNames = []struct {
	e    Events
	name string
}{
	{EventJump, "jump"},
	{EventDoubleJump, "double_jump"},
	{EventQueuedJump, "queued_jump"},
	{EventWallJump, "wall_jump"},
	{EventDash, "dash"},
	{EventLand, "land"},
	{EventClimbStart, "climb_start"},
	{EventClimbEnd, "climb_end"},
	{EventReset, "reset"},
}

func (e Events) Has(flag Events) bool {
	return e&flag != 0
}

func (e Events) String() string {
	if e == 0 {
		return "none"
	}
	var parts []string
	for _, n := range eventNames {
		if e.Has(n.e) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
