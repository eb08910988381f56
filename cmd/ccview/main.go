// Command ccview plays a recorded input script back in a window, looping
// over its frames.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/charcontroller/common"
	"github.com/milk9111/charcontroller/controller"
	"github.com/milk9111/charcontroller/prefabs"
	"github.com/milk9111/charcontroller/render"
	"github.com/milk9111/charcontroller/scenario"
)

const trailLength = 12

type replayGame struct {
	name    string
	arena   controller.Arena
	palette *render.Palette
	frames  []controller.Frame

	current     int
	tick        int
	ticksPerFrm int
	paused      bool
}

func (g *replayGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.step(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.step(-1)
	}
	if g.paused || len(g.frames) <= 1 {
		return nil
	}
	g.tick++
	if g.tick >= g.ticksPerFrm {
		g.tick = 0
		g.step(1)
	}
	return nil
}

func (g *replayGame) step(n int) {
	if len(g.frames) == 0 {
		return
	}
	g.current = (g.current + n + len(g.frames)) % len(g.frames)
}

func (g *replayGame) Draw(screen *ebiten.Image) {
	render.DrawArena(screen, g.arena)
	if len(g.frames) == 0 {
		return
	}
	for i := trailLength; i > 0; i-- {
		if g.current-i < 0 {
			continue
		}
		render.DrawGhost(screen, g.frames[g.current-i], float64(i)/trailLength)
	}
	f := g.frames[g.current]
	render.DrawBody(screen, f, g.palette)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  tick %d/%d  %s  %s", g.name, f.Tick, len(g.frames), f.Pose, f.Events), 28, 8)
	ebitenutil.DebugPrintAt(screen, "space pause  left/right step", 28, 22)
}

func (g *replayGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func main() {
	speed := flag.Int("slow", 1, "display each frame for this many ticks")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("usage: ccview [-slow n] script (one of %v)", prefabs.ScriptNames())
	}

	s, err := scenario.LoadScript(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	ctrl, err := scenario.NewController(s)
	if err != nil {
		log.Fatal(err)
	}
	arena := ctrl.Arena()
	tr, err := scenario.Run(ctrl, s)
	if err != nil {
		log.Fatal(err)
	}

	palette := render.DefaultPalette()
	preset := s.Preset
	if preset == "" {
		preset = "controller"
	}
	if spec, err := prefabs.LoadControllerSpec(preset); err == nil {
		palette = render.PaletteFromSpec(spec)
	}

	g := &replayGame{
		name:        s.Name,
		arena:       arena,
		palette:     palette,
		frames:      tr.Frames,
		ticksPerFrm: max(*speed, 1),
	}
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("ccview " + s.Name)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
