package controller

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidConfig = errors.New("controller: invalid config")
	ErrInvalidArena  = errors.New("controller: invalid arena")
)

// Config holds every physical constant of the controller. Speeds and
// gravity are per tick; dash durations are in seconds of elapsed time;
// WallClimbDuration counts ticks.
type Config struct {
	WalkSpeed    float64
	JumpVelocity float64
	DashSpeed    float64
	Gravity      float64

	DashActiveDuration float64
	DashCooldown       float64
	WallClimbDuration  int

	// JumpCutVelocity is the upward residual kept when jump is released
	// early.
	JumpCutVelocity       float64
	FastAirborneThreshold float64
	// WalkFramePeriod is the time each of the two walk poses is shown.
	WalkFramePeriod float64
	// UnitScale converts velocity units into world units.
	UnitScale float64

	Width  float64
	Height float64

	// Geometry used by DefaultArena.
	ArenaWidth    float64
	FloorY        float64
	WallBandWidth float64
}

// DefaultConfig returns the stock tuning for a 640x480 arena.
func DefaultConfig() Config {
	return Config{
		WalkSpeed:             5,
		JumpVelocity:          10,
		DashSpeed:             10,
		Gravity:               0.5,
		DashActiveDuration:    0.15,
		DashCooldown:          0.35,
		WallClimbDuration:     30,
		JumpCutVelocity:       3,
		FastAirborneThreshold: 5,
		WalkFramePeriod:       0.1,
		UnitScale:             1,
		Width:                 32,
		Height:                32,
		ArenaWidth:            640,
		FloorY:                480,
		WallBandWidth:         20,
	}
}

// DashWindow is the full span a dash timer starts at.
func (c Config) DashWindow() float64 {
	return c.DashActiveDuration + c.DashCooldown
}

// Validate reports the first malformed constant. It is meant to run once,
// when a controller is built or retuned.
func (c Config) Validate() error {
	nonNegative := []struct {
		name string
		v    float64
	}{
		{"walk_speed", c.WalkSpeed},
		{"jump_velocity", c.JumpVelocity},
		{"dash_speed", c.DashSpeed},
		{"gravity", c.Gravity},
		{"dash_active_duration", c.DashActiveDuration},
		{"dash_cooldown", c.DashCooldown},
		{"jump_cut_velocity", c.JumpCutVelocity},
		{"fast_airborne_threshold", c.FastAirborneThreshold},
		{"wall_band_width", c.WallBandWidth},
	}
	for _, f := range nonNegative {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return fmt.Errorf("%w: %s must be a finite value >= 0, got %g", ErrInvalidConfig, f.name, f.v)
		}
	}

	positive := []struct {
		name string
		v    float64
	}{
		{"walk_frame_period", c.WalkFramePeriod},
		{"unit_scale", c.UnitScale},
		{"width", c.Width},
		{"height", c.Height},
		{"arena_width", c.ArenaWidth},
		{"floor_y", c.FloorY},
	}
	for _, f := range positive {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v <= 0 {
			return fmt.Errorf("%w: %s must be a finite value > 0, got %g", ErrInvalidConfig, f.name, f.v)
		}
	}

	if c.WallClimbDuration < 0 {
		return fmt.Errorf("%w: wall_climb_duration must be >= 0, got %d", ErrInvalidConfig, c.WallClimbDuration)
	}
	if c.ArenaWidth < 2*c.WallBandWidth+c.Width {
		return fmt.Errorf("%w: arena_width %g leaves no room between walls of width %g for a body of width %g",
			ErrInvalidConfig, c.ArenaWidth, c.WallBandWidth, c.Width)
	}
	if c.FloorY < c.Height {
		return fmt.Errorf("%w: floor_y %g is above the body height %g", ErrInvalidConfig, c.FloorY, c.Height)
	}
	return nil
}
