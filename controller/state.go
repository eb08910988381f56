package controller

import "github.com/jakecoffman/cp"

// MovementState is the authoritative kinematic and mode state of the
// controlled body. Position is the top-left corner of the bounding box and y
// grows downward.
type MovementState struct {
	Position cp.Vector
	Size     cp.Vector
	Velocity cp.Vector

	// Facing is -1 (left) or +1 (right).
	Facing int

	OnGround            bool
	WallClimbing        bool
	Jumping             bool
	JumpQueuedAfterDash bool

	// WallClimbDirection is +1 on the left wall, -1 on the right wall and 0
	// when not climbing. It points away from the wall.
	WallClimbDirection int

	DashTimer      float64
	WallClimbTimer int

	DashAvailable       bool
	DoubleJumpAvailable bool

	// Clock is the simulation time accumulated from tick inputs. It drives
	// the walk pose toggle.
	Clock float64
}

// NewMovementState returns a body at rest at spawn with every ability
// available.
func NewMovementState(spawn, size cp.Vector) MovementState {
	return MovementState{
		Position:            spawn,
		Size:                size,
		Facing:              1,
		DashAvailable:       true,
		DoubleJumpAvailable: true,
	}
}

// Box returns the bounding box. Because y grows downward, B is the top edge
// and T the bottom edge.
func (s MovementState) Box() cp.BB {
	return cp.BB{
		L: s.Position.X,
		B: s.Position.Y,
		R: s.Position.X + s.Size.X,
		T: s.Position.Y + s.Size.Y,
	}
}

func (s MovementState) Bottom() float64 {
	return s.Position.Y + s.Size.Y
}

func (s *MovementState) setBottom(y float64) {
	s.Position.Y = y - s.Size.Y
}

func (s *MovementState) setLeft(x float64) {
	s.Position.X = x
}

func (s *MovementState) setRight(x float64) {
	s.Position.X = x - s.Size.X
}

// Dashing reports whether the dash timer is inside its active window.
func (s MovementState) Dashing(cfg Config) bool {
	return s.DashTimer > cfg.DashCooldown
}
