package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcontroller/controller"
	"gopkg.in/yaml.v3"
)

// LoadSpec decodes the named file on top of base, so keys the file omits
// keep their base values.
func LoadSpec[T any](filename string, base T) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	spec := base
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// ControllerSpec is the YAML form of a tuning preset.
type ControllerSpec struct {
	Name                  string     `yaml:"name"`
	WalkSpeed             float64    `yaml:"walk_speed"`
	JumpVelocity          float64    `yaml:"jump_velocity"`
	DashSpeed             float64    `yaml:"dash_speed"`
	Gravity               float64    `yaml:"gravity"`
	DashActiveDuration    float64    `yaml:"dash_active_duration"`
	DashCooldown          float64    `yaml:"dash_cooldown"`
	WallClimbDuration     int        `yaml:"wall_climb_duration"`
	JumpCutVelocity       float64    `yaml:"jump_cut_velocity"`
	FastAirborneThreshold float64    `yaml:"fast_airborne_threshold"`
	WalkFramePeriod       float64    `yaml:"walk_frame_period"`
	UnitScale             float64    `yaml:"unit_scale"`
	Size                  SizeSpec   `yaml:"size"`
	Arena                 ArenaSpec  `yaml:"arena"`
	Spawn                 SpawnSpec  `yaml:"spawn"`
	Sprite                SpriteSpec `yaml:"sprite"`
}

type SizeSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type ArenaSpec struct {
	Name          string  `yaml:"name"`
	Width         float64 `yaml:"width"`
	FloorY        float64 `yaml:"floor_y"`
	WallBandWidth float64 `yaml:"wall_band_width"`
}

type SpawnSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// SpriteSpec maps pose names (controller.Pose.String) to fill colours.
type SpriteSpec struct {
	PoseColors map[string]YAMLColor `yaml:"pose_colors"`
}

// DefaultControllerSpec mirrors controller.DefaultConfig. Presets are
// decoded on top of it, so a file only needs the keys it changes.
func DefaultControllerSpec() ControllerSpec {
	cfg := controller.DefaultConfig()
	return ControllerSpec{
		Name:                  "default",
		WalkSpeed:             cfg.WalkSpeed,
		JumpVelocity:          cfg.JumpVelocity,
		DashSpeed:             cfg.DashSpeed,
		Gravity:               cfg.Gravity,
		DashActiveDuration:    cfg.DashActiveDuration,
		DashCooldown:          cfg.DashCooldown,
		WallClimbDuration:     cfg.WallClimbDuration,
		JumpCutVelocity:       cfg.JumpCutVelocity,
		FastAirborneThreshold: cfg.FastAirborneThreshold,
		WalkFramePeriod:       cfg.WalkFramePeriod,
		UnitScale:             cfg.UnitScale,
		Size:                  SizeSpec{Width: cfg.Width, Height: cfg.Height},
		Arena: ArenaSpec{
			Width:         cfg.ArenaWidth,
			FloorY:        cfg.FloorY,
			WallBandWidth: cfg.WallBandWidth,
		},
		Spawn: SpawnSpec{X: (cfg.ArenaWidth - cfg.Width) / 2, Y: 30},
	}
}

// LoadControllerSpec reads a preset such as "controller" or
// "controller_floaty.yaml".
func LoadControllerSpec(name string) (*ControllerSpec, error) {
	spec, err := LoadSpec(name, DefaultControllerSpec())
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Config converts the preset to a controller.Config and validates it.
func (s *ControllerSpec) Config() (controller.Config, error) {
	cfg := controller.Config{
		WalkSpeed:             s.WalkSpeed,
		JumpVelocity:          s.JumpVelocity,
		DashSpeed:             s.DashSpeed,
		Gravity:               s.Gravity,
		DashActiveDuration:    s.DashActiveDuration,
		DashCooldown:          s.DashCooldown,
		WallClimbDuration:     s.WallClimbDuration,
		JumpCutVelocity:       s.JumpCutVelocity,
		FastAirborneThreshold: s.FastAirborneThreshold,
		WalkFramePeriod:       s.WalkFramePeriod,
		UnitScale:             s.UnitScale,
		Width:                 s.Size.Width,
		Height:                s.Size.Height,
		ArenaWidth:            s.Arena.Width,
		FloorY:                s.Arena.FloorY,
		WallBandWidth:         s.Arena.WallBandWidth,
	}
	if err := cfg.Validate(); err != nil {
		return controller.Config{}, fmt.Errorf("prefabs: %s: %w", s.Name, err)
	}
	return cfg, nil
}

func (s *ControllerSpec) SpawnPoint() cp.Vector {
	return cp.Vector{X: s.Spawn.X, Y: s.Spawn.Y}
}

// PoseColor returns the configured colour for pose, or fallback.
func (s *ControllerSpec) PoseColor(pose controller.Pose, fallback color.Color) color.Color {
	if c, ok := s.Sprite.PoseColors[pose.String()]; ok && c.Color != nil {
		return c.Color
	}
	return fallback
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
