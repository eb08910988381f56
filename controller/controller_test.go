package controller

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Binary-exact tuning so timer arithmetic has no rounding drift.
const dt = 1.0 / 64

func exactConfig() Config {
	cfg := DefaultConfig()
	cfg.DashActiveDuration = 0.125
	cfg.DashCooldown = 0.25
	cfg.WalkFramePeriod = 0.125
	return cfg
}

func newTestController(t *testing.T, cfg Config, spawn cp.Vector) *Controller {
	t.Helper()
	c, err := New(cfg, DefaultArena(cfg), spawn)
	require.NoError(t, err)
	return c
}

func tickN(c *Controller, n int, in InputSnapshot) Frame {
	var f Frame
	for i := 0; i < n; i++ {
		f = c.Tick(dt, in)
	}
	return f
}

// grounded returns a controller resting on the floor at x.
func grounded(t *testing.T, x float64) *Controller {
	t.Helper()
	cfg := exactConfig()
	c := newTestController(t, cfg, cp.Vector{X: x, Y: cfg.FloorY - cfg.Height})
	f := c.Tick(dt, InputSnapshot{})
	require.True(t, f.State.OnGround)
	return c
}

func TestEndToEndFallThenJump(t *testing.T) {
	cfg := DefaultConfig()
	c := newTestController(t, cfg, cp.Vector{X: 0, Y: 30})

	var f Frame
	for i := 0; i < 50; i++ {
		f = c.Tick(1.0/60, InputSnapshot{})
	}
	require.True(t, f.State.OnGround)
	assert.Equal(t, cp.Vector{}, f.State.Velocity)
	assert.Equal(t, cfg.FloorY, f.State.Bottom())
	assert.Equal(t, cfg.WallBandWidth, f.State.Position.X, "spawn inside the left wall is pushed out")

	f = c.Tick(1.0/60, InputSnapshot{Jump: true, JumpPressed: true})
	assert.Equal(t, -cfg.JumpVelocity, f.State.Velocity.Y)
	assert.False(t, f.State.OnGround)
	assert.True(t, f.State.Jumping)
	assert.True(t, f.Events.Has(EventJump))
	assert.False(t, f.Events.Has(EventDoubleJump))
	assert.True(t, f.State.DoubleJumpAvailable)
}

func TestGroundClampConverges(t *testing.T) {
	cfg := exactConfig()
	c := newTestController(t, cfg, cp.Vector{X: 200, Y: 10})

	landed := false
	for i := 0; i < 200; i++ {
		f := c.Tick(dt, InputSnapshot{})
		if f.Events.Has(EventLand) {
			landed = true
		}
		if landed {
			require.True(t, f.State.OnGround, "tick %d", i)
			require.Equal(t, cfg.FloorY, f.State.Bottom(), "tick %d", i)
			require.Zero(t, f.State.Velocity.Y, "tick %d", i)
		}
	}
	assert.True(t, landed)
}

func TestRestIsIdempotent(t *testing.T) {
	c := grounded(t, 200)
	before := c.State()
	for i := 0; i < 20; i++ {
		c.Tick(0, InputSnapshot{})
	}
	assert.Equal(t, before, c.State())
}

func TestAirborneRestOnlyAccumulatesGravity(t *testing.T) {
	cfg := exactConfig()
	c := newTestController(t, cfg, cp.Vector{X: 200, Y: 100})
	before := c.State()

	f := c.Tick(0, InputSnapshot{})
	want := before
	want.Velocity.Y = cfg.Gravity
	want.Position.Y += cfg.Gravity
	assert.Equal(t, want, f.State)
}

func TestJumpApex(t *testing.T) {
	cfg := exactConfig()
	c := grounded(t, 200)

	f := c.Tick(dt, InputSnapshot{Jump: true, JumpPressed: true})
	require.Equal(t, -cfg.JumpVelocity, f.State.Velocity.Y)

	apex := int(cfg.JumpVelocity / cfg.Gravity)
	for i := 1; i < apex; i++ {
		f = c.Tick(dt, InputSnapshot{Jump: true})
		require.Less(t, f.State.Velocity.Y, 0.0, "tick %d", i)
	}
	f = c.Tick(dt, InputSnapshot{Jump: true})
	assert.Zero(t, f.State.Velocity.Y)
	f = c.Tick(dt, InputSnapshot{Jump: true})
	assert.Greater(t, f.State.Velocity.Y, 0.0)
}

func TestJumpReleaseCutsJumpShort(t *testing.T) {
	cfg := exactConfig()
	c := grounded(t, 200)
	c.Tick(dt, InputSnapshot{Jump: true, JumpPressed: true})

	f := c.Tick(dt, InputSnapshot{})
	assert.Equal(t, -cfg.JumpCutVelocity, f.State.Velocity.Y)
	assert.False(t, f.State.Jumping)

	// A falling body is not pushed back up by a late release.
	c = grounded(t, 200)
	c.Tick(dt, InputSnapshot{Jump: true, JumpPressed: true})
	f = tickN(c, 25, InputSnapshot{Jump: true})
	require.Greater(t, f.State.Velocity.Y, 0.0)
	vy := f.State.Velocity.Y
	f = c.Tick(dt, InputSnapshot{})
	assert.Equal(t, vy+cfg.Gravity, f.State.Velocity.Y)
}

func TestHorizontalIntent(t *testing.T) {
	cfg := exactConfig()
	cases := []struct {
		name   string
		in     InputSnapshot
		vx     float64
		facing int
	}{
		{"none", InputSnapshot{}, 0, 1},
		{"left", InputSnapshot{Left: true}, -cfg.WalkSpeed, -1},
		{"right", InputSnapshot{Right: true}, cfg.WalkSpeed, 1},
		{"both_prefers_right", InputSnapshot{Left: true, Right: true}, cfg.WalkSpeed, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := grounded(t, 200)
			x := c.State().Position.X
			f := c.Tick(dt, tc.in)
			assert.Equal(t, tc.vx, f.State.Velocity.X)
			assert.Equal(t, tc.facing, f.State.Facing)
			assert.Equal(t, x+tc.vx, f.State.Position.X)
		})
	}

	t.Run("facing_kept_when_released", func(t *testing.T) {
		c := grounded(t, 200)
		c.Tick(dt, InputSnapshot{Left: true})
		f := c.Tick(dt, InputSnapshot{})
		assert.Equal(t, -1, f.State.Facing)
		assert.True(t, f.Flip)
	})
}

func TestWallStopsWalking(t *testing.T) {
	cfg := exactConfig()
	c := grounded(t, cfg.WallBandWidth+2)
	f := c.Tick(dt, InputSnapshot{Left: true})
	assert.Equal(t, cfg.WallBandWidth, f.State.Position.X)
	assert.Zero(t, f.State.Velocity.X)

	c = grounded(t, cfg.ArenaWidth-cfg.WallBandWidth-cfg.Width-2)
	f = c.Tick(dt, InputSnapshot{Right: true})
	assert.Equal(t, cfg.ArenaWidth-cfg.WallBandWidth, f.State.Position.X+cfg.Width)
	assert.Zero(t, f.State.Velocity.X)
}

func TestDashExclusivity(t *testing.T) {
	cfg := exactConfig()
	activeTicks := int(cfg.DashActiveDuration / dt)

	cases := []struct {
		name   string
		facing InputSnapshot
		hold   InputSnapshot
		dir    float64
	}{
		{"right_holding_left", InputSnapshot{Right: true}, InputSnapshot{Left: true}, 1},
		{"left_holding_right", InputSnapshot{Left: true}, InputSnapshot{Right: true}, -1},
		{"right_no_keys", InputSnapshot{Right: true}, InputSnapshot{}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := grounded(t, 300)
			c.Tick(dt, tc.facing)

			x := c.State().Position.X
			f := c.Tick(dt, InputSnapshot{Dash: true})
			require.True(t, f.Events.Has(EventDash))
			require.Equal(t, x+tc.dir*cfg.DashSpeed, f.State.Position.X)

			for i := 1; i < activeTicks; i++ {
				x = f.State.Position.X
				f = c.Tick(dt, tc.hold)
				require.True(t, f.State.Dashing(cfg), "tick %d", i)
				require.Equal(t, x+tc.dir*cfg.DashSpeed, f.State.Position.X, "tick %d", i)
			}

			f = c.Tick(dt, tc.hold)
			assert.False(t, f.State.Dashing(cfg))
			assert.Greater(t, f.State.DashTimer, 0.0, "cooldown follows the active window")
		})
	}
}

func TestDashIsHorizontalOnly(t *testing.T) {
	cfg := exactConfig()
	c := newTestController(t, cfg, cp.Vector{X: 300, Y: 100})
	f := tickN(c, 5, InputSnapshot{})
	y, vy := f.State.Position.Y, f.State.Velocity.Y

	// Gravity from the last fall tick lands before the dash starts; after
	// that the vertical velocity is frozen for the active window.
	f = c.Tick(dt, InputSnapshot{Dash: true})
	require.True(t, f.Events.Has(EventDash))
	assert.Equal(t, y, f.State.Position.Y)
	assert.Equal(t, vy+cfg.Gravity, f.State.Velocity.Y)
	assert.False(t, f.State.DashAvailable)

	f = c.Tick(dt, InputSnapshot{})
	assert.Equal(t, y, f.State.Position.Y)
	assert.Equal(t, vy+cfg.Gravity, f.State.Velocity.Y)
}

func TestDashCooldownAndRefill(t *testing.T) {
	cfg := exactConfig()
	window := int(cfg.DashWindow() / dt)

	c := newTestController(t, cfg, cp.Vector{X: 300, Y: 100})
	f := c.Tick(dt, InputSnapshot{Dash: true})
	require.True(t, f.Events.Has(EventDash))

	// No second dash in the air, even after the cooldown.
	for i := 0; i < window+5; i++ {
		f = c.Tick(dt, InputSnapshot{Dash: true})
		require.False(t, f.Events.Has(EventDash), "tick %d", i)
	}
	require.Zero(t, f.State.DashTimer)

	// Landing refills it.
	for !f.State.OnGround {
		f = c.Tick(dt, InputSnapshot{})
	}
	f = c.Tick(dt, InputSnapshot{Dash: true})
	assert.True(t, f.Events.Has(EventDash))
}

func TestGroundDashTimerGatesJump(t *testing.T) {
	cfg := exactConfig()
	window := int(cfg.DashWindow() / dt)
	c := grounded(t, 300)

	f := c.Tick(dt, InputSnapshot{Dash: true})
	require.True(t, f.Events.Has(EventDash))

	// Holding jump during the dash does not jump; pressing it queues one.
	f = c.Tick(dt, InputSnapshot{Jump: true, JumpPressed: true})
	assert.False(t, f.Events.Has(EventJump))
	assert.True(t, f.State.JumpQueuedAfterDash)
	assert.True(t, f.State.OnGround)

	for i := 2; i < window; i++ {
		f = c.Tick(dt, InputSnapshot{})
		require.False(t, f.Events.Has(EventQueuedJump), "tick %d", i)
	}
	f = c.Tick(dt, InputSnapshot{})
	require.Zero(t, f.State.DashTimer)
	assert.True(t, f.Events.Has(EventQueuedJump))
	assert.Equal(t, -cfg.JumpVelocity, f.State.Velocity.Y)
	assert.False(t, f.State.JumpQueuedAfterDash)
	assert.True(t, f.State.DoubleJumpAvailable, "a grounded queued jump keeps the double jump")
}

func TestAirborneQueuedJumpConsumesDoubleJump(t *testing.T) {
	cfg := exactConfig()
	window := int(cfg.DashWindow() / dt)
	c := newTestController(t, cfg, cp.Vector{X: 300, Y: 50})

	c.Tick(dt, InputSnapshot{Dash: true})
	f := c.Tick(dt, InputSnapshot{Jump: true, JumpPressed: true})
	require.True(t, f.State.JumpQueuedAfterDash)
	require.False(t, f.Events.Has(EventDoubleJump))

	for i := 2; i <= window; i++ {
		f = c.Tick(dt, InputSnapshot{Jump: true})
	}
	require.True(t, f.Events.Has(EventQueuedJump))
	assert.Equal(t, -cfg.JumpVelocity, f.State.Velocity.Y)
	assert.False(t, f.State.DoubleJumpAvailable)
	assert.True(t, f.State.Jumping)
}

func TestDoubleJump(t *testing.T) {
	cfg := exactConfig()
	c := grounded(t, 300)

	f := c.Tick(dt, InputSnapshot{Jump: true, JumpPressed: true})
	require.True(t, f.Events.Has(EventJump))
	require.True(t, f.State.DoubleJumpAvailable)

	// Holding the key does not re-trigger.
	f = tickN(c, 5, InputSnapshot{Jump: true})
	require.True(t, f.State.DoubleJumpAvailable)

	f = c.Tick(dt, InputSnapshot{})
	f = c.Tick(dt, InputSnapshot{Jump: true, JumpPressed: true})
	assert.True(t, f.Events.Has(EventDoubleJump))
	assert.Equal(t, -cfg.JumpVelocity, f.State.Velocity.Y)
	assert.False(t, f.State.DoubleJumpAvailable)

	c.Tick(dt, InputSnapshot{})
	f = c.Tick(dt, InputSnapshot{Jump: true, JumpPressed: true})
	assert.False(t, f.Events.Has(EventDoubleJump))
	assert.Greater(t, f.State.Velocity.Y, -cfg.JumpVelocity)
}

// climbing returns a controller that just grabbed the left wall.
func climbing(t *testing.T) (*Controller, Frame) {
	t.Helper()
	cfg := exactConfig()
	c := newTestController(t, cfg, cp.Vector{X: cfg.WallBandWidth, Y: 100})
	c.Tick(dt, InputSnapshot{})
	f := c.Tick(dt, InputSnapshot{Left: true, Up: true})
	require.True(t, f.State.WallClimbing)
	require.True(t, f.Events.Has(EventClimbStart))
	return c, f
}

func TestWallClimbContainment(t *testing.T) {
	cfg := exactConfig()
	c, f := climbing(t)

	assert.Equal(t, 1, f.State.WallClimbDirection)
	assert.Equal(t, cfg.WallBandWidth, f.State.Position.X)
	assert.Equal(t, PoseWallClimb, f.Pose)
	y := f.State.Position.Y

	for i := 1; i < cfg.WallClimbDuration; i++ {
		f = c.Tick(dt, InputSnapshot{Left: true})
		require.True(t, f.State.WallClimbing, "tick %d", i)
		require.Zero(t, f.State.Velocity.Y, "tick %d", i)
		require.Zero(t, f.State.Velocity.X, "tick %d", i)
		require.Equal(t, y, f.State.Position.Y, "tick %d", i)
	}

	f = c.Tick(dt, InputSnapshot{})
	assert.False(t, f.State.WallClimbing)
	assert.True(t, f.Events.Has(EventClimbEnd))
	assert.Equal(t, cfg.WalkSpeed, f.State.Velocity.X)
	assert.Zero(t, f.State.WallClimbDirection)
	assert.Zero(t, f.State.WallClimbTimer)
}

func TestWallClimbRightWall(t *testing.T) {
	cfg := exactConfig()
	c := newTestController(t, cfg, cp.Vector{X: cfg.ArenaWidth - cfg.WallBandWidth - cfg.Width, Y: 100})
	c.Tick(dt, InputSnapshot{})
	f := c.Tick(dt, InputSnapshot{Right: true, Up: true})
	require.True(t, f.State.WallClimbing)
	assert.Equal(t, -1, f.State.WallClimbDirection)
	assert.Equal(t, cfg.ArenaWidth-cfg.WallBandWidth, f.State.Position.X+cfg.Width)
}

func TestNoClimbFromGround(t *testing.T) {
	cfg := exactConfig()
	c := grounded(t, cfg.WallBandWidth)
	f := c.Tick(dt, InputSnapshot{Up: true})
	assert.False(t, f.State.WallClimbing)
}

func TestWallJump(t *testing.T) {
	cfg := exactConfig()
	c, f := climbing(t)
	x := f.State.Position.X

	f = c.Tick(dt, InputSnapshot{Jump: true, JumpPressed: true})
	assert.True(t, f.Events.Has(EventWallJump))
	assert.False(t, f.Events.Has(EventDoubleJump))
	assert.False(t, f.State.WallClimbing)
	assert.Zero(t, f.State.WallClimbTimer)
	assert.Equal(t, -cfg.JumpVelocity, f.State.Velocity.Y)
	assert.Equal(t, cfg.WalkSpeed, f.State.Velocity.X)
	assert.Equal(t, x+cfg.WalkSpeed, f.State.Position.X)
	assert.Equal(t, 1, f.State.Facing)
	assert.True(t, f.State.DoubleJumpAvailable)
}

func TestNoDashWhileClimbing(t *testing.T) {
	c, _ := climbing(t)
	f := c.Tick(dt, InputSnapshot{Dash: true})
	assert.False(t, f.Events.Has(EventDash))
	assert.Zero(t, f.State.DashTimer)
}

func TestTimersNeverNegative(t *testing.T) {
	cfg := exactConfig()
	c := newTestController(t, cfg, cp.Vector{X: 300, Y: 100})
	c.Tick(dt, InputSnapshot{Dash: true})
	f := c.Tick(10, InputSnapshot{})
	assert.Zero(t, f.State.DashTimer)

	f = c.Tick(-1, InputSnapshot{})
	assert.Zero(t, f.State.DashTimer)
	assert.GreaterOrEqual(t, f.State.WallClimbTimer, 0)
}

func TestResetInput(t *testing.T) {
	cfg := exactConfig()
	spawn := cp.Vector{X: 300, Y: 100}
	c := newTestController(t, cfg, spawn)
	tickN(c, 10, InputSnapshot{Right: true})
	c.Tick(dt, InputSnapshot{Dash: true})

	f := c.Tick(dt, InputSnapshot{Reset: true, Left: true, Dash: true})
	assert.True(t, f.Events.Has(EventReset))
	assert.False(t, f.Events.Has(EventDash))
	assert.Equal(t, spawn, f.State.Position)
	assert.Equal(t, cp.Vector{}, f.State.Velocity)
	assert.Zero(t, f.State.DashTimer)
	assert.True(t, f.State.DashAvailable)
}

func TestResetDeterminism(t *testing.T) {
	cfg := exactConfig()
	spawn := cp.Vector{X: 120, Y: 200}

	fresh := newTestController(t, cfg, spawn)

	used := newTestController(t, cfg, cp.Vector{X: 400, Y: 40})
	history := []InputSnapshot{
		{Right: true}, {Dash: true}, {Jump: true, JumpPressed: true}, {Left: true, Up: true},
	}
	for i := 0; i < 120; i++ {
		used.Tick(dt, history[i%len(history)])
	}
	used.Reset(spawn)

	assert.Equal(t, fresh.State(), used.State())
	assert.Equal(t, fresh.Ticks(), used.Ticks())

	for i := 0; i < 200; i++ {
		in := history[(i/7)%len(history)]
		require.Equal(t, fresh.Tick(dt, in), used.Tick(dt, in), "tick %d", i)
	}
}

func TestSetConfigRejectsInvalid(t *testing.T) {
	cfg := exactConfig()
	c := newTestController(t, cfg, cp.Vector{X: 300, Y: 100})

	bad := cfg
	bad.DashCooldown = -1
	require.ErrorIs(t, c.SetConfig(bad), ErrInvalidConfig)
	assert.Equal(t, cfg, c.Config())

	good := cfg
	good.Width = 16
	require.NoError(t, c.SetConfig(good))
	assert.Equal(t, 16.0, c.State().Size.X)
}

func TestNewRejectsInvalidInputs(t *testing.T) {
	cfg := DefaultConfig()
	bad := cfg
	bad.Gravity = -0.5
	_, err := New(bad, DefaultArena(cfg), cp.Vector{})
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(cfg, Arena{}, cp.Vector{})
	require.ErrorIs(t, err, ErrInvalidArena)
}

func TestInputWithEdges(t *testing.T) {
	held := InputSnapshot{Jump: true}

	assert.True(t, held.WithEdges(InputSnapshot{}).JumpPressed)
	assert.False(t, held.WithEdges(held).JumpPressed)
	assert.False(t, InputSnapshot{}.WithEdges(held).JumpPressed)
}

func TestSetConfigGrowingBodyStaysOnFloor(t *testing.T) {
	c := grounded(t, 200)
	cfg := c.Config()
	taller := cfg
	taller.Height = 48

	require.NoError(t, c.SetConfig(taller))
	assert.Equal(t, cfg.FloorY, c.State().Bottom())

	f := tickN(c, 60, InputSnapshot{})
	assert.True(t, f.State.OnGround)
	assert.Equal(t, cfg.FloorY, f.State.Bottom())
	assert.Equal(t, 0.0, f.State.Velocity.Y)
	assert.Equal(t, 48.0, f.State.Size.Y)
}

func TestSpawnInsideFloorIsLifted(t *testing.T) {
	cfg := exactConfig()
	c := newTestController(t, cfg, cp.Vector{X: 200, Y: cfg.FloorY - 10})
	assert.Equal(t, cfg.FloorY, c.State().Bottom())

	f := tickN(c, 60, InputSnapshot{})
	assert.True(t, f.State.OnGround)
	assert.Equal(t, cfg.FloorY, f.State.Bottom())

	tickN(c, 5, InputSnapshot{Right: true})
	f = c.Tick(dt, InputSnapshot{Reset: true})
	assert.True(t, f.State.OnGround)
	assert.Equal(t, cfg.FloorY, f.State.Bottom())
	assert.Equal(t, 200.0, f.State.Position.X)
}

func TestSetArenaLiftsBodyOntoRaisedFloor(t *testing.T) {
	c := grounded(t, 200)
	raised := c.Config()
	raised.FloorY -= 10

	require.ErrorIs(t, c.SetArena(Arena{}), ErrInvalidArena)
	require.NoError(t, c.SetArena(DefaultArena(raised)))

	f := c.Tick(dt, InputSnapshot{})
	assert.True(t, f.State.OnGround)
	assert.Equal(t, raised.FloorY, f.State.Bottom())
	assert.Equal(t, 0.0, f.State.Velocity.Y)
}
