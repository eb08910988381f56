package controller

// resolveInput turns the tick's input into velocity and mode changes. Rules
// run in a fixed order and later rules may override earlier ones. Reset is
// handled by the caller before this runs.
func resolveInput(s *MovementState, in InputSnapshot, cfg Config, arena Arena) Events {
	var ev Events

	// Grounded as of the start of resolution. A ground jump made this tick
	// must not count as being airborne for the double jump or climb rules.
	airborne := !s.OnGround

	if !s.Dashing(cfg) && !s.WallClimbing {
		switch {
		case in.Right:
			s.Velocity.X = cfg.WalkSpeed
			s.Facing = 1
		case in.Left:
			s.Velocity.X = -cfg.WalkSpeed
			s.Facing = -1
		default:
			s.Velocity.X = 0
		}
	}

	if !in.Jump && s.Jumping {
		if s.Velocity.Y < -cfg.JumpCutVelocity {
			s.Velocity.Y = -cfg.JumpCutVelocity
		}
		s.Jumping = false
	}

	if s.OnGround {
		s.DashAvailable = true
		s.DoubleJumpAvailable = true
	}

	if in.Jump && s.OnGround && s.DashTimer == 0 {
		launch(s, cfg)
		ev |= EventJump
	}

	if in.JumpPressed && !s.WallClimbing {
		dashActive := s.DashTimer > 0
		if dashActive && ((s.DoubleJumpAvailable && airborne) || !airborne) {
			s.JumpQueuedAfterDash = true
		}
		if airborne && s.DoubleJumpAvailable && !dashActive {
			launch(s, cfg)
			s.DoubleJumpAvailable = false
			s.JumpQueuedAfterDash = false
			ev |= EventDoubleJump
		}
	}

	if s.JumpQueuedAfterDash && s.DashTimer == 0 {
		launch(s, cfg)
		if airborne {
			s.DoubleJumpAvailable = false
		}
		s.JumpQueuedAfterDash = false
		ev |= EventQueuedJump
	}

	if in.Dash && s.DashAvailable && s.DashTimer == 0 && !s.WallClimbing {
		s.DashTimer = cfg.DashWindow()
		s.DashAvailable = false
		ev |= EventDash
	}

	if airborne && !s.WallClimbing && !s.Dashing(cfg) && in.Up {
		if wall, ok := arena.touchingWall(s.Box()); ok {
			enterClimb(s, wall, cfg)
			ev |= EventClimbStart
		}
	}

	if s.WallClimbing && in.Jump {
		s.Facing = s.WallClimbDirection
		s.Velocity.X = float64(s.WallClimbDirection) * cfg.WalkSpeed
		s.Velocity.Y = -cfg.JumpVelocity
		s.Jumping = true
		clearClimb(s)
		ev |= EventWallJump
	}

	return ev
}

func launch(s *MovementState, cfg Config) {
	s.Velocity.Y = -cfg.JumpVelocity
	s.OnGround = false
	s.Jumping = true
}

func enterClimb(s *MovementState, wall Band, cfg Config) {
	s.WallClimbing = true
	s.Velocity.X = 0
	s.Velocity.Y = 0
	s.WallClimbTimer = cfg.WallClimbDuration
	s.Jumping = false
	if wall.Kind == BandLeftWall {
		s.WallClimbDirection = 1
		s.setLeft(wall.Box.R)
	} else {
		s.WallClimbDirection = -1
		s.setRight(wall.Box.L)
	}
}

func clearClimb(s *MovementState) {
	s.WallClimbing = false
	s.WallClimbDirection = 0
	s.WallClimbTimer = 0
}
