// Command ccterm runs the character controller in a terminal.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/charcontroller/common"
	"github.com/milk9111/charcontroller/controller"
	"github.com/milk9111/charcontroller/levels"
	"github.com/milk9111/charcontroller/prefabs"
)

type termGame struct {
	screen tcell.Screen
	ctrl   *controller.Controller
	spec   *prefabs.ControllerSpec
	keys   *heldKeys
	sounds *sounds

	prev  controller.InputSnapshot
	frame controller.Frame
}

func main() {
	preset := flag.String("preset", "controller", "tuning preset in prefabs/")
	arenaName := flag.String("arena", "", "arena in levels/; defaults to the preset's arena")
	mute := flag.Bool("mute", false, "disable sound cues")
	release := flag.Duration("release", 120*time.Millisecond, "how long a key stays held after its last repeat")
	flag.Parse()

	ctrl, spec, err := buildController(*preset, *arenaName)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	g := &termGame{
		screen: screen,
		ctrl:   ctrl,
		spec:   spec,
		keys:   newHeldKeys(*release),
		sounds: newSounds(*mute),
	}
	g.run()

	screen.Fini()
	g.sounds.close()
	fmt.Fprintf(os.Stdout, "ran %d ticks\n", g.frame.Tick)
}

func buildController(preset, arenaName string) (*controller.Controller, *prefabs.ControllerSpec, error) {
	spec, err := prefabs.LoadControllerSpec(preset)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := spec.Config()
	if err != nil {
		return nil, nil, err
	}
	if arenaName == "" {
		arenaName = spec.Arena.Name
	}
	arena := controller.DefaultArena(cfg)
	spawn := spec.SpawnPoint()
	if arenaName != "" {
		lvl, err := levels.LoadLevelFromFS(arenaName)
		if err != nil {
			return nil, nil, err
		}
		if arena, err = lvl.Arena(); err != nil {
			return nil, nil, err
		}
		spawn = lvl.SpawnPoint(spawn)
	}
	ctrl, err := controller.New(cfg, arena, spawn)
	return ctrl, spec, err
}

func (g *termGame) run() {
	ticker := time.NewTicker(time.Second / common.TicksPerSecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				a := actionFor(ev)
				if a == actQuit {
					return
				}
				g.keys.press(a, ev.When())
			case *tcell.EventResize:
				g.screen.Sync()
			}

		case now := <-ticker.C:
			in := g.keys.snapshot(now, g.prev)
			g.prev = in
			g.frame = g.ctrl.Tick(1.0/common.TicksPerSecond, in)
			g.sounds.play(g.frame.Events)
			g.draw()
		}
	}
}

// cell maps a world coordinate to a terminal cell.
func cell(v, world float64, cells int) int {
	if cells <= 1 || world <= 0 {
		return 0
	}
	return int(common.Clamp(v/world*float64(cells), 0, float64(cells-1)))
}

func (g *termGame) draw() {
	g.screen.Clear()
	cols, rows := g.screen.Size()
	rows-- // status line
	cfg := g.ctrl.Config()
	worldW, worldH := float64(common.BaseWidth), cfg.FloorY+cfg.Height

	wall := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for _, b := range g.ctrl.Arena().Bands {
		x0, x1 := cell(b.Box.L, worldW, cols), cell(b.Box.R-1, worldW, cols)
		y0, y1 := cell(b.Box.B, worldH, rows), cell(b.Box.T-1, worldH, rows)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				g.screen.SetContent(x, y, '▒', nil, wall)
			}
		}
	}

	s := g.frame.State
	box := s.Box()
	style := tcell.StyleDefault.Foreground(tcellColor(g.spec.PoseColor(g.frame.Pose, color.White)))
	glyph := poseGlyph(g.frame.Pose, g.frame.Flip)
	for y := cell(box.B, worldH, rows); y <= cell(box.T-1, worldH, rows); y++ {
		for x := cell(box.L, worldW, cols); x <= cell(box.R-1, worldW, cols); x++ {
			g.screen.SetContent(x, y, glyph, nil, style)
		}
	}

	status := fmt.Sprintf("tick %d  %s  pos %.1f,%.1f  vel %.1f,%.1f  %s  [arrows/wasd move, space jump, x dash, r reset, q quit]",
		g.frame.Tick, g.frame.Pose, s.Position.X, s.Position.Y, s.Velocity.X, s.Velocity.Y, g.frame.Events)
	for i, r := range []rune(status) {
		if i >= cols {
			break
		}
		g.screen.SetContent(i, rows, r, nil, tcell.StyleDefault)
	}

	g.screen.Show()
}

func poseGlyph(p controller.Pose, flip bool) rune {
	switch p {
	case controller.PoseWalkA:
		if flip {
			return '<'
		}
		return '>'
	case controller.PoseWalkB:
		if flip {
			return '«'
		}
		return '»'
	case controller.PoseAirborne:
		return '^'
	case controller.PoseFastAirborne:
		return '*'
	case controller.PoseWallClimb:
		return '#'
	default:
		return '@'
	}
}

func tcellColor(c color.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}
