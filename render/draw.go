// Package render draws controller frames with ebiten vector shapes.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/charcontroller/common"
	"github.com/milk9111/charcontroller/controller"
	"golang.org/x/image/colornames"
)

var bandColors = map[controller.BandKind]color.Color{
	controller.BandFloor:     colornames.Dimgray,
	controller.BandCeiling:   colornames.Darkslategray,
	controller.BandLeftWall:  colornames.Slategray,
	controller.BandRightWall: colornames.Slategray,
}

func DrawArena(screen *ebiten.Image, arena controller.Arena) {
	screen.Fill(colornames.Midnightblue)
	for _, b := range arena.Bands {
		box := b.Box
		vector.DrawFilledRect(screen, float32(box.L), float32(box.B), float32(box.R-box.L), float32(box.T-box.B), bandColors[b.Kind], false)
	}
}

// DrawBody fills the bounding box with the pose colour and marks the side
// the body faces.
func DrawBody(screen *ebiten.Image, f controller.Frame, palette *Palette) {
	box := f.State.Box()
	x, y := float32(box.L), float32(box.B)
	w, h := float32(box.R-box.L), float32(box.T-box.B)
	vector.DrawFilledRect(screen, x, y, w, h, palette.Get(f.Pose), false)
	vector.StrokeRect(screen, x, y, w, h, 1, colornames.White, false)

	eyeX := x + w*0.75 - 3
	if f.Flip {
		eyeX = x + w*0.25 - 3
	}
	vector.DrawFilledRect(screen, eyeX, y+h*0.25, 6, 6, colornames.White, false)
}

// DrawGhost outlines a past position, faded by age in [0, 1].
func DrawGhost(screen *ebiten.Image, f controller.Frame, age float64) {
	box := f.State.Box()
	a := uint8(common.Lerp(160, 0, common.Clamp(age, 0, 1)))
	vector.StrokeRect(screen, float32(box.L), float32(box.B), float32(box.R-box.L), float32(box.T-box.B), 1,
		color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: a}, false)
}

// DrawDashMeter shows how much of the dash window is left.
func DrawDashMeter(screen *ebiten.Image, x, y float32, timer, window float64) {
	const width = 120
	frac := 0.0
	if window > 0 {
		frac = common.Clamp(timer/window, 0, 1)
	}
	filled := common.Lerp(0, width, frac)
	vector.StrokeRect(screen, x, y, width, 6, 1, colornames.White, false)
	vector.DrawFilledRect(screen, x, y, float32(filled), 6, colornames.Gold, false)
}
