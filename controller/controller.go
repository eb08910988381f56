// Package controller simulates a single platformer body: walking, jumping,
// double jumping, dashing and wall climbing inside a static arena.
//
// A Controller is advanced one tick at a time with an explicit elapsed time
// and input snapshot. It never reads the clock or any global state, so a
// given sequence of ticks always yields the same trajectory.
package controller

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Frame is the result of one tick.
type Frame struct {
	Tick   uint64
	State  MovementState
	Pose   Pose
	Flip   bool
	Events Events
}

// Controller owns one MovementState. It is not safe for concurrent use.
type Controller struct {
	cfg   Config
	arena Arena
	spawn cp.Vector
	state MovementState
	tick  uint64
}

// New validates cfg and arena and places the body at spawn.
func New(cfg Config, arena Arena, spawn cp.Vector) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := arena.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		cfg:   cfg,
		arena: Arena{Bands: append([]Band(nil), arena.Bands...)},
	}
	c.Reset(spawn)
	return c, nil
}

// Reset reinitializes the body at spawn with zero velocity, cleared timers
// and refilled dash and double jump. Spawn becomes the target of later reset
// inputs. A spawn that overlaps a floor band is lifted onto its surface.
func (c *Controller) Reset(spawn cp.Vector) {
	c.spawn = spawn
	c.state = c.spawnState(cp.Vector{X: c.cfg.Width, Y: c.cfg.Height})
	c.tick = 0
}

func (c *Controller) spawnState(size cp.Vector) MovementState {
	return NewMovementState(c.arena.settle(c.spawn, size), size)
}

// Tick advances the simulation by one step. Negative or NaN elapsed time is
// treated as zero.
func (c *Controller) Tick(dt float64, in InputSnapshot) Frame {
	if !(dt > 0) || math.IsInf(dt, 0) {
		dt = 0
	}
	s := &c.state
	c.tick++
	s.Clock += dt

	advanceTimers(s, dt)
	applyGravity(s, c.cfg)

	var ev Events
	if in.Reset {
		*s = c.spawnState(s.Size)
		ev |= EventReset
	} else {
		ev |= resolveInput(s, in, c.cfg, c.arena)
	}

	ev |= integrate(s, c.cfg, c.arena)

	pose, flip := SelectPose(*s, c.cfg)
	return Frame{
		Tick:   c.tick,
		State:  *s,
		Pose:   pose,
		Flip:   flip,
		Events: ev,
	}
}

// State returns a copy of the current state.
func (c *Controller) State() MovementState {
	return c.state
}

func (c *Controller) Config() Config {
	return c.cfg
}

// Arena returns a copy of the collision geometry.
func (c *Controller) Arena() Arena {
	return Arena{Bands: append([]Band(nil), c.arena.Bands...)}
}

func (c *Controller) Spawn() cp.Vector {
	return c.spawn
}

func (c *Controller) Ticks() uint64 {
	return c.tick
}

// SetConfig swaps in new tuning between ticks. An invalid config is rejected
// and the current one is kept. The body size follows the new config with its
// bottom edge held in place, so a grounded body stays on its floor.
func (c *Controller) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	bottom := c.state.Bottom()
	c.state.Size = cp.Vector{X: cfg.Width, Y: cfg.Height}
	c.state.setBottom(bottom)
	return nil
}

// SetArena swaps the collision geometry between ticks. A body left inside a
// floor is lifted onto it by the next tick.
func (c *Controller) SetArena(arena Arena) error {
	if err := arena.Validate(); err != nil {
		return err
	}
	c.arena = Arena{Bands: append([]Band(nil), arena.Bands...)}
	return nil
}
