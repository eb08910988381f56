// Package scenario drives a controller from a tengo input script so a run
// can be replayed headlessly and compared tick for tick.
package scenario

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/charcontroller/controller"
	"github.com/milk9111/charcontroller/prefabs"
)

var ErrMissingInput = errors.New("scenario: script missing input function")

const (
	DefaultTicks = 120
	DefaultDT    = 1.0 / 60
)

// The script is run once per tick with this appended. input(tick, state)
// returns a map of held keys.
const inputDispatchScript = `
__result := input(__tick, __state)
`

// Script is a compiled input script. Besides input it may define the
// globals name, ticks, dt, preset, arena and spawn ([x, y]).
type Script struct {
	Name   string
	Ticks  int
	DT     float64
	Preset string
	Arena  string
	Spawn  []float64

	compiled *tengo.Compiled
}

// LoadScript compiles one of the prefabs scripts by name.
func LoadScript(name string) (*Script, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("scenario: load %s: %w", name, err)
	}
	s, err := Compile(src)
	if err != nil {
		return nil, fmt.Errorf("scenario: %s: %w", name, err)
	}
	if s.Name == "" {
		s.Name = name
	}
	return s, nil
}

func Compile(src []byte) (*Script, error) {
	header, err := compile(src, false)
	if err != nil {
		return nil, err
	}
	if err := header.Run(); err != nil {
		return nil, err
	}
	if !header.IsDefined("input") {
		return nil, ErrMissingInput
	}

	s := &Script{Ticks: DefaultTicks, DT: DefaultDT}
	if header.IsDefined("name") {
		s.Name = strings.TrimSpace(header.Get("name").String())
	}
	if header.IsDefined("ticks") {
		s.Ticks = header.Get("ticks").Int()
	}
	if header.IsDefined("dt") {
		s.DT = header.Get("dt").Float()
	}
	if header.IsDefined("preset") {
		s.Preset = strings.TrimSpace(header.Get("preset").String())
	}
	if header.IsDefined("arena") {
		s.Arena = strings.TrimSpace(header.Get("arena").String())
	}
	if header.IsDefined("spawn") {
		for _, v := range header.Get("spawn").Array() {
			f, ok := toFloat(v)
			if !ok {
				return nil, fmt.Errorf("scenario: spawn must be numeric, got %v", v)
			}
			s.Spawn = append(s.Spawn, f)
		}
		if len(s.Spawn) != 2 {
			return nil, fmt.Errorf("scenario: spawn must be [x, y]")
		}
	}
	if s.Ticks < 0 {
		return nil, fmt.Errorf("scenario: negative ticks %d", s.Ticks)
	}

	s.compiled, err = compile(src, true)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func compile(src []byte, dispatch bool) (*tengo.Compiled, error) {
	body := string(src)
	if dispatch {
		body += "\n" + inputDispatchScript
	}
	script := tengo.NewScript([]byte(body))
	if dispatch {
		_ = script.Add("__tick", 0)
		_ = script.Add("__state", map[string]any{})
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return script.Compile()
}

// Input asks the script for the keys held on tick (zero based). The press
// edge for jump comes from prev unless the script sets jump_pressed itself.
func (s *Script) Input(tick int, st controller.MovementState, prev controller.InputSnapshot) (controller.InputSnapshot, error) {
	if err := s.compiled.Set("__tick", tick); err != nil {
		return controller.InputSnapshot{}, err
	}
	if err := s.compiled.Set("__state", stateMap(st)); err != nil {
		return controller.InputSnapshot{}, err
	}
	if err := s.compiled.Run(); err != nil {
		return controller.InputSnapshot{}, fmt.Errorf("scenario: tick %d: %w", tick, err)
	}

	keys := map[string]tengo.Object{}
	switch v := s.compiled.Get("__result").Object().(type) {
	case *tengo.Map:
		keys = v.Value
	case *tengo.ImmutableMap:
		keys = v.Value
	case *tengo.Undefined:
	default:
		return controller.InputSnapshot{}, fmt.Errorf("scenario: tick %d: input returned %s, want map", tick, v.TypeName())
	}

	held := func(name string) bool {
		obj, ok := keys[name]
		return ok && !obj.IsFalsy()
	}
	in := controller.InputSnapshot{
		Left:  held("left"),
		Right: held("right"),
		Up:    held("up"),
		Jump:  held("jump"),
		Dash:  held("dash"),
		Reset: held("reset"),
	}.WithEdges(prev)
	if _, ok := keys["jump_pressed"]; ok {
		in.JumpPressed = held("jump_pressed")
	}
	return in, nil
}

func stateMap(st controller.MovementState) map[string]any {
	return map[string]any{
		"x":                     st.Position.X,
		"y":                     st.Position.Y,
		"vx":                    st.Velocity.X,
		"vy":                    st.Velocity.Y,
		"facing":                st.Facing,
		"on_ground":             st.OnGround,
		"jumping":               st.Jumping,
		"climbing":              st.WallClimbing,
		"dash_timer":            st.DashTimer,
		"dash_available":        st.DashAvailable,
		"double_jump_available": st.DoubleJumpAvailable,
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
