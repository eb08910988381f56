package controller

import (
	"fmt"
	"math"
)

// Pose selects the sprite the renderer shows.
type Pose int

const (
	PoseIdle Pose = iota
	PoseWalkA
	PoseWalkB
	PoseAirborne
	PoseFastAirborne
	PoseWallClimb
)

func (p Pose) String() string {
	switch p {
	case PoseIdle:
		return "idle"
	case PoseWalkA:
		return "walk_a"
	case PoseWalkB:
		return "walk_b"
	case PoseAirborne:
		return "airborne"
	case PoseFastAirborne:
		return "fast_airborne"
	case PoseWallClimb:
		return "wall_climb"
	default:
		return fmt.Sprintf("pose(%d)", int(p))
	}
}

// SelectPose derives the pose and the horizontal flip flag from s. The walk
// frames alternate every cfg.WalkFramePeriod of simulation time. An active
// dash counts as moving at dash speed.
func SelectPose(s MovementState, cfg Config) (Pose, bool) {
	flip := s.Facing < 0

	speed := math.Abs(s.Velocity.X)
	if s.Dashing(cfg) {
		speed = cfg.DashSpeed
	}

	switch {
	case s.OnGround && speed == 0:
		return PoseIdle, flip
	case s.OnGround:
		if int(math.Floor(s.Clock/cfg.WalkFramePeriod))%2 == 0 {
			return PoseWalkA, flip
		}
		return PoseWalkB, flip
	case s.WallClimbing:
		return PoseWallClimb, flip
	case speed > cfg.FastAirborneThreshold:
		return PoseFastAirborne, flip
	default:
		return PoseAirborne, flip
	}
}
