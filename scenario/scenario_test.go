package scenario

import (
	"testing"

	"github.com/milk9111/charcontroller/controller"
	"github.com/milk9111/charcontroller/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedScriptsCompile(t *testing.T) {
	names := prefabs.ScriptNames()
	require.NotEmpty(t, names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			s, err := LoadScript(name)
			require.NoError(t, err)
			assert.Equal(t, name, s.Name)
			assert.Positive(t, s.Ticks)
			assert.Positive(t, s.DT)
		})
	}
}

func TestRunIsDeterministic(t *testing.T) {
	for _, name := range prefabs.ScriptNames() {
		t.Run(name, func(t *testing.T) {
			first, err := RunScript(name)
			require.NoError(t, err)
			second, err := RunScript(name)
			require.NoError(t, err)

			a, err := first.Checksum()
			require.NoError(t, err)
			b, err := second.Checksum()
			require.NoError(t, err)
			assert.Equal(t, a, b)
			assert.Equal(t, first.Frames, second.Frames)
		})
	}
}

func TestFallAndJump(t *testing.T) {
	tr, err := RunScript("fall_and_jump")
	require.NoError(t, err)
	require.Len(t, tr.Frames, 90)

	rest := tr.Frames[49]
	assert.True(t, rest.State.OnGround)
	assert.Equal(t, 480.0, rest.State.Bottom())
	assert.Zero(t, rest.State.Velocity.Y)
	assert.Equal(t, controller.PoseIdle, rest.Pose)

	jump := tr.Frames[50]
	assert.True(t, jump.Events.Has(controller.EventJump))
	assert.True(t, tr.Inputs[50].JumpPressed)
	assert.Equal(t, -10.0, jump.State.Velocity.Y)
	assert.False(t, jump.State.OnGround)
	assert.True(t, jump.State.Jumping)

	assert.False(t, tr.Inputs[51].JumpPressed, "held jump is not a new press")

	cut := tr.Frames[56]
	assert.Equal(t, -3.0, cut.State.Velocity.Y)
	assert.False(t, cut.State.Jumping)

	last, ok := tr.Last()
	require.True(t, ok)
	assert.True(t, last.State.OnGround)
}

func TestDoubleJumpScript(t *testing.T) {
	tr, err := RunScript("double_jump")
	require.NoError(t, err)

	assert.Equal(t, 50, tr.FirstEvent(controller.EventJump))
	require.Equal(t, 60, tr.FirstEvent(controller.EventDoubleJump))

	f := tr.Frames[60]
	assert.Equal(t, -10.0, f.State.Velocity.Y)
	assert.False(t, f.State.DoubleJumpAvailable)
}

func TestDashQueueScript(t *testing.T) {
	tr, err := RunScript("dash_queue")
	require.NoError(t, err)

	dash := tr.FirstEvent(controller.EventDash)
	require.Equal(t, 55, dash)
	assert.True(t, tr.Frames[57].State.JumpQueuedAfterDash)
	assert.Equal(t, -1, tr.FirstEvent(controller.EventDoubleJump))

	queued := tr.FirstEvent(controller.EventQueuedJump)
	require.Greater(t, queued, 57)
	f := tr.Frames[queued]
	assert.Equal(t, -10.0, f.State.Velocity.Y)
	assert.False(t, f.State.JumpQueuedAfterDash)
	assert.Zero(t, f.State.DashTimer)

	for i := 56; i < queued; i++ {
		assert.Zero(t, tr.Frames[i].Events&controller.EventJump, "tick %d", i)
	}
}

func TestWallJumpScript(t *testing.T) {
	tr, err := RunScript("wall_jump")
	require.NoError(t, err)

	assert.Equal(t, 1, tr.FirstEvent(controller.EventClimbStart))
	require.Equal(t, 11, tr.FirstEvent(controller.EventWallJump))

	climb := tr.Frames[10]
	assert.True(t, climb.State.WallClimbing)
	assert.Equal(t, controller.PoseWallClimb, climb.Pose)

	f := tr.Frames[11]
	assert.False(t, f.State.WallClimbing)
	assert.Equal(t, 5.0, f.State.Velocity.X)
	assert.Equal(t, -10.0, f.State.Velocity.Y)
	assert.Equal(t, 1, f.State.Facing)
}

func TestWalkCycleStaysInsideArena(t *testing.T) {
	tr, err := RunScript("walk_cycle")
	require.NoError(t, err)

	s, err := LoadScript("walk_cycle")
	require.NoError(t, err)
	c, err := NewController(s)
	require.NoError(t, err)
	arena := c.Arena()

	var left, right float64 = 1e9, -1e9
	for _, b := range arena.Bands {
		switch b.Kind {
		case controller.BandLeftWall:
			left = b.Box.R
		case controller.BandRightWall:
			right = b.Box.L
		}
	}
	for _, f := range tr.Frames {
		assert.GreaterOrEqual(t, f.State.Position.X, left, "tick %d", f.Tick)
		assert.LessOrEqual(t, f.State.Position.X+f.State.Size.X, right, "tick %d", f.Tick)
	}
}

func TestCompileRequiresInput(t *testing.T) {
	_, err := Compile([]byte(`ticks := 10`))
	require.ErrorIs(t, err, ErrMissingInput)
}

func TestCompileReadsHeader(t *testing.T) {
	s, err := Compile([]byte(`
name := "inline"
ticks := 3
dt := 0.5
preset := "controller_floaty"
arena := "narrow"
spawn := [200, 40.5]
input := func(tick, state) { return {right: true} }
`))
	require.NoError(t, err)
	assert.Equal(t, "inline", s.Name)
	assert.Equal(t, 3, s.Ticks)
	assert.Equal(t, 0.5, s.DT)
	assert.Equal(t, "controller_floaty", s.Preset)
	assert.Equal(t, "narrow", s.Arena)
	assert.Equal(t, []float64{200, 40.5}, s.Spawn)

	c, err := NewController(s)
	require.NoError(t, err)
	assert.Equal(t, 0.25, c.Config().Gravity)

	tr, err := Run(c, s)
	require.NoError(t, err)
	require.Len(t, tr.Frames, 3)
	for _, in := range tr.Inputs {
		assert.True(t, in.Right)
	}
}

func TestInputRejectsNonMap(t *testing.T) {
	s, err := Compile([]byte(`input := func(tick, state) { return 1 }`))
	require.NoError(t, err)

	_, err = s.Input(0, controller.MovementState{}, controller.InputSnapshot{})
	require.Error(t, err)
}

func TestExplicitJumpPressedWins(t *testing.T) {
	s, err := Compile([]byte(`input := func(tick, state) { return {jump: true, jump_pressed: tick == 2} }`))
	require.NoError(t, err)

	prev := controller.InputSnapshot{}
	for tick := 0; tick < 4; tick++ {
		in, err := s.Input(tick, controller.MovementState{}, prev)
		require.NoError(t, err)
		assert.Equal(t, tick == 2, in.JumpPressed, "tick %d", tick)
		prev = in
	}
}

func TestScriptSeesState(t *testing.T) {
	s, err := Compile([]byte(`input := func(tick, state) { return {left: state.on_ground, up: state.x > 10} }`))
	require.NoError(t, err)

	st := controller.MovementState{OnGround: true}
	st.Position.X = 11
	in, err := s.Input(0, st, controller.InputSnapshot{})
	require.NoError(t, err)
	assert.True(t, in.Left)
	assert.True(t, in.Up)
}
