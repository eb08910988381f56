package render

import (
	"image/color"

	"github.com/milk9111/charcontroller/controller"
	"github.com/milk9111/charcontroller/prefabs"
	"golang.org/x/image/colornames"
)

// Palette stores the fill colour for each pose.
type Palette struct {
	colors map[controller.Pose]color.Color
}

// DefaultPalette is used for poses a preset does not colour.
func DefaultPalette() *Palette {
	return &Palette{colors: map[controller.Pose]color.Color{
		controller.PoseIdle:         colornames.Steelblue,
		controller.PoseWalkA:        colornames.Cadetblue,
		controller.PoseWalkB:        colornames.Mediumturquoise,
		controller.PoseAirborne:     colornames.Orange,
		controller.PoseFastAirborne: colornames.Orangered,
		controller.PoseWallClimb:    colornames.Yellowgreen,
	}}
}

// PaletteFromSpec overlays the preset's pose colours on the defaults.
func PaletteFromSpec(spec *prefabs.ControllerSpec) *Palette {
	p := DefaultPalette()
	if spec == nil {
		return p
	}
	for pose := range p.colors {
		p.colors[pose] = spec.PoseColor(pose, p.colors[pose])
	}
	return p
}

// Get returns the colour for pose, white if unknown.
func (p *Palette) Get(pose controller.Pose) color.Color {
	if p == nil {
		return colornames.White
	}
	if c, ok := p.colors[pose]; ok {
		return c
	}
	return colornames.White
}
