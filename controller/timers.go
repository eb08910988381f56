package controller

// advanceTimers counts the dash timer down by elapsed time and the wall
// climb timer down by one tick. Neither goes below zero.
func advanceTimers(s *MovementState, dt float64) {
	s.DashTimer -= dt
	if s.DashTimer < 0 {
		s.DashTimer = 0
	}
	if s.WallClimbTimer > 0 {
		s.WallClimbTimer--
	}
}
