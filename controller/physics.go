package controller

import "github.com/jakecoffman/cp"

// applyGravity adds one tick of gravity to the vertical velocity. It runs at
// the top of a tick, so the gravity from the previous displacement is only
// visible to the current one. Climbing pins the body and an active dash
// suspends gravity.
func applyGravity(s *MovementState, cfg Config) {
	if s.WallClimbing || s.Dashing(cfg) {
		return
	}
	s.Velocity.Y += cfg.Gravity
}

// integrate moves the body by its resolved velocity and resolves contacts
// against the arena. Every branch is a clamp; nothing here can fail.
func integrate(s *MovementState, cfg Config, arena Arena) Events {
	var ev Events
	wasGrounded := s.OnGround
	prev := s.Box()

	if s.Dashing(cfg) {
		s.Position.X += float64(s.Facing) * cfg.DashSpeed * cfg.UnitScale
	} else {
		s.Position = s.Position.Add(s.Velocity.Mult(cfg.UnitScale))
	}

	s.OnGround = false
	falling := s.Velocity.Y >= 0 && !s.WallClimbing
	if y, ok := arena.floorUnder(prev, s.Box(), falling); ok {
		s.setBottom(y)
		s.OnGround = true
		s.Velocity.Y = 0
		s.Jumping = false
	}
	if y, ok := arena.ceilingAbove(prev, s.Box()); ok {
		s.Position.Y = y
		if s.Velocity.Y < 0 {
			s.Velocity.Y = 0
		}
	}

	if s.WallClimbing && s.WallClimbTimer == 0 {
		dir := s.WallClimbDirection
		s.Velocity.X = float64(dir) * cfg.WalkSpeed
		s.Facing = dir
		clearClimb(s)
		ev |= EventClimbEnd
	}

	for _, b := range arena.Bands {
		if !b.IsWall() || !overlaps(s.Box(), b.Box) {
			continue
		}
		if s.WallClimbing {
			s.Velocity.Y = 0
		} else {
			s.Velocity.X = 0
		}
		if b.Kind == BandLeftWall {
			s.setLeft(b.Box.R)
		} else {
			s.setRight(b.Box.L)
		}
	}

	if s.OnGround && !wasGrounded {
		ev |= EventLand
	}
	return ev
}

// floorUnder returns the highest floor surface the box crossed or rests on
// while moving from prev to box. Floors the box started below are ignored,
// so a fast fall cannot tunnel through a thin band. A falling box whose top
// started at or above a surface it now sinks into is lifted back onto it;
// that covers a body that grew or a floor that moved under it.
func (a Arena) floorUnder(prev, box cp.BB, falling bool) (float64, bool) {
	var (
		top   float64
		found bool
	)
	for _, b := range a.Bands {
		if b.Kind != BandFloor || !overlapsX(box, b.Box) {
			continue
		}
		crossed := prev.T <= b.Box.B && box.T >= b.Box.B
		sunk := falling && overlapsX(prev, b.Box) && prev.B <= b.Box.B && box.T > b.Box.B
		if crossed || sunk {
			if !found || b.Box.B < top {
				top = b.Box.B
				found = true
			}
		}
	}
	return top, found
}

// ceilingAbove returns the lowest ceiling edge the box pushed through while
// moving from prev to box.
func (a Arena) ceilingAbove(prev, box cp.BB) (float64, bool) {
	var (
		bottom float64
		found  bool
	)
	for _, b := range a.Bands {
		if b.Kind != BandCeiling || !overlapsX(box, b.Box) {
			continue
		}
		if prev.B >= b.Box.T && box.B < b.Box.T {
			if !found || b.Box.T > bottom {
				bottom = b.Box.T
				found = true
			}
		}
	}
	return bottom, found
}

// settle lifts a box out of any floor band it overlaps and returns the
// adjusted top-left corner. Each pass can only move the box up onto a higher
// surface, so it ends after at most one pass per band.
func (a Arena) settle(pos, size cp.Vector) cp.Vector {
	for range a.Bands {
		box := cp.BB{L: pos.X, B: pos.Y, R: pos.X + size.X, T: pos.Y + size.Y}
		moved := false
		for _, b := range a.Bands {
			if b.Kind == BandFloor && overlaps(box, b.Box) {
				pos.Y = b.Box.B - size.Y
				box.B, box.T = pos.Y, b.Box.B
				moved = true
			}
		}
		if !moved {
			break
		}
	}
	return pos
}
