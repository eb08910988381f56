package scenario

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcontroller/controller"
	"github.com/milk9111/charcontroller/levels"
	"github.com/milk9111/charcontroller/prefabs"
)

// Trajectory is the recorded output of a run.
type Trajectory struct {
	Script string
	Inputs []controller.InputSnapshot
	Frames []controller.Frame
}

// Run ticks c once per scripted tick and records every frame.
func Run(c *controller.Controller, s *Script) (*Trajectory, error) {
	tr := &Trajectory{
		Script: s.Name,
		Inputs: make([]controller.InputSnapshot, 0, s.Ticks),
		Frames: make([]controller.Frame, 0, s.Ticks),
	}
	var prev controller.InputSnapshot
	for i := 0; i < s.Ticks; i++ {
		in, err := s.Input(i, c.State(), prev)
		if err != nil {
			return tr, err
		}
		tr.Inputs = append(tr.Inputs, in)
		tr.Frames = append(tr.Frames, c.Tick(s.DT, in))
		prev = in
	}
	return tr, nil
}

// NewController builds the controller a script asks for: its preset, its
// arena (or the default arena for the preset) and its spawn (or the
// level's, or the preset's).
func NewController(s *Script) (*controller.Controller, error) {
	preset := s.Preset
	if preset == "" {
		preset = "controller"
	}
	spec, err := prefabs.LoadControllerSpec(preset)
	if err != nil {
		return nil, err
	}
	cfg, err := spec.Config()
	if err != nil {
		return nil, err
	}

	spawn := spec.SpawnPoint()
	arena := controller.DefaultArena(cfg)
	if s.Arena != "" {
		lvl, err := levels.LoadLevelFromFS(s.Arena)
		if err != nil {
			return nil, fmt.Errorf("scenario: arena %s: %w", s.Arena, err)
		}
		if arena, err = lvl.Arena(); err != nil {
			return nil, err
		}
		spawn = lvl.SpawnPoint(spawn)
	}
	if len(s.Spawn) == 2 {
		spawn = cp.Vector{X: s.Spawn[0], Y: s.Spawn[1]}
	}
	return controller.New(cfg, arena, spawn)
}

// RunScript loads a script by name and runs it on a fresh controller.
func RunScript(name string) (*Trajectory, error) {
	s, err := LoadScript(name)
	if err != nil {
		return nil, err
	}
	c, err := NewController(s)
	if err != nil {
		return nil, err
	}
	return Run(c, s)
}

// Checksum hashes every frame in order. Two runs of the same script on the
// same build must produce the same value.
func (t *Trajectory) Checksum() (string, error) {
	h := sha256.New()
	for _, f := range t.Frames {
		data, err := json.Marshal(f)
		if err != nil {
			return "", fmt.Errorf("scenario: marshal tick %d: %w", f.Tick, err)
		}
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Last returns the final frame, or false for an empty run.
func (t *Trajectory) Last() (controller.Frame, bool) {
	if len(t.Frames) == 0 {
		return controller.Frame{}, false
	}
	return t.Frames[len(t.Frames)-1], true
}

// FirstEvent returns the index of the first frame carrying ev, or -1.
func (t *Trajectory) FirstEvent(ev controller.Events) int {
	for i, f := range t.Frames {
		if f.Events.Has(ev) {
			return i
		}
	}
	return -1
}
