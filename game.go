package main

import (
	"fmt"
	"log"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/charcontroller/assets"
	"github.com/milk9111/charcontroller/common"
	"github.com/milk9111/charcontroller/controller"
	"github.com/milk9111/charcontroller/levels"
	"github.com/milk9111/charcontroller/prefabs"
	"github.com/milk9111/charcontroller/render"
)

const tickDT = 1.0 / common.TicksPerSecond

type Game struct {
	preset    string
	presetMod time.Time
	arenaName string
	spec      *prefabs.ControllerSpec
	palette   *render.Palette
	ctrl      *controller.Controller
	frame     controller.Frame

	debug   bool
	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
	watcher *prefabs.Watcher
	cues    *assets.Cues
}

func NewGame(preset, arenaName string, debug, mute bool) (*Game, error) {
	spec, err := prefabs.LoadControllerSpec(preset)
	if err != nil {
		return nil, err
	}
	cfg, err := spec.Config()
	if err != nil {
		return nil, err
	}

	g := &Game{
		preset:    preset,
		arenaName: arenaName,
		spec:      spec,
		palette:   render.PaletteFromSpec(spec),
		debug:     debug,
	}
	g.presetMod, _ = prefabs.ModTime(preset)

	arena, lvl := loadArena(g.arenaFor(spec), cfg)
	spawn := spec.SpawnPoint()
	if lvl != nil {
		spawn = lvl.SpawnPoint(spawn)
	}
	g.ctrl, err = controller.New(cfg, arena, spawn)
	if err != nil {
		return nil, err
	}

	g.frame = controller.Frame{State: g.ctrl.State()}
	g.frame.Pose, g.frame.Flip = controller.SelectPose(g.frame.State, cfg)
	g.pauseUI = NewPauseUI(g)
	if !mute {
		g.cues = assets.NewCues()
	}
	return g, nil
}

// Watch starts reloading the preset when it changes on disk.
func (g *Game) Watch() error {
	w, err := prefabs.NewWatcher(prefabs.Dir)
	if err != nil {
		return err
	}
	g.watcher = w
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	if pausePressed() {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.pollReload()
	g.frame = g.ctrl.Tick(tickDT, pollInput())
	g.cues.Play(g.frame.Events)
	if g.debug && g.frame.Events != 0 {
		log.Printf("controller: tick %d: %s", g.frame.Tick, g.frame.Events)
	}
	return nil
}

// pollReload applies pending preset edits between ticks. A preset that
// fails to parse or validate is logged and the running config is kept.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case ch, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if ch.Script {
				continue
			}
			g.reload(ch.Path)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("prefabs: watch: %v", err)
			}
		default:
			return
		}
	}
}

// arenaFor returns the -arena override, or the arena the preset names.
func (g *Game) arenaFor(spec *prefabs.ControllerSpec) string {
	if g.arenaName != "" {
		return g.arenaName
	}
	return spec.Arena.Name
}

// loadArena resolves a level by name. An empty name, or a level that fails
// to load, falls back to the box arena derived from cfg.
func loadArena(name string, cfg controller.Config) (controller.Arena, *levels.Level) {
	if name == "" {
		return controller.DefaultArena(cfg), nil
	}
	lvl, err := levels.LoadLevelFromFS(name)
	if err != nil {
		log.Printf("levels: %s: %v; using default arena", name, err)
		return controller.DefaultArena(cfg), nil
	}
	arena, err := lvl.Arena()
	if err != nil {
		log.Printf("levels: %v; using default arena", err)
		return controller.DefaultArena(cfg), nil
	}
	return arena, lvl
}

// reload re-reads the running preset. Writes to other presets leave its
// modification time alone and are skipped.
func (g *Game) reload(path string) {
	if mod, ok := prefabs.ModTime(g.preset); ok {
		if mod.Equal(g.presetMod) {
			return
		}
		g.presetMod = mod
	}
	spec, err := prefabs.LoadControllerSpec(g.preset)
	if err != nil {
		log.Printf("prefabs: reload %s: %v", path, err)
		return
	}
	cfg, err := spec.Config()
	if err != nil {
		log.Printf("prefabs: reload %s: %v", path, err)
		return
	}
	if err := g.ctrl.SetConfig(cfg); err != nil {
		log.Printf("prefabs: reload %s: %v", path, err)
		return
	}
	arena, _ := loadArena(g.arenaFor(spec), cfg)
	if err := g.ctrl.SetArena(arena); err != nil {
		log.Printf("prefabs: reload %s: %v", path, err)
	}
	g.spec = spec
	g.palette = render.PaletteFromSpec(spec)
	log.Printf("prefabs: reloaded %s", spec.Name)
}

// resetBody puts the body back at its spawn.
func (g *Game) resetBody() {
	g.ctrl.Reset(g.ctrl.Spawn())
	g.frame = controller.Frame{State: g.ctrl.State()}
	g.frame.Pose, g.frame.Flip = controller.SelectPose(g.frame.State, g.ctrl.Config())
}

func (g *Game) Draw(screen *ebiten.Image) {
	render.DrawArena(screen, g.ctrl.Arena())
	render.DrawBody(screen, g.frame, g.palette)

	if g.debug {
		g.drawOverlay(screen)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawOverlay(screen *ebiten.Image) {
	s := g.frame.State
	cfg := g.ctrl.Config()
	lines := []string{
		fmt.Sprintf("tick %d  fps %.1f  preset %s", g.frame.Tick, ebiten.ActualFPS(), g.spec.Name),
		fmt.Sprintf("pos  %7.2f %7.2f", s.Position.X, s.Position.Y),
		fmt.Sprintf("vel  %7.2f %7.2f", s.Velocity.X, s.Velocity.Y),
		fmt.Sprintf("pose %s  flip %v", g.frame.Pose, g.frame.Flip),
		fmt.Sprintf("ground %v  jumping %v  queued %v", s.OnGround, s.Jumping, s.JumpQueuedAfterDash),
		fmt.Sprintf("dash %.3f (avail %v)  double %v", s.DashTimer, s.DashAvailable, s.DoubleJumpAvailable),
		fmt.Sprintf("climb %v dir %d timer %d", s.WallClimbing, s.WallClimbDirection, s.WallClimbTimer),
		fmt.Sprintf("events %s", g.frame.Events),
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 28, 8+i*14)
	}
	render.DrawDashMeter(screen, 28, float32(12+len(lines)*14), s.DashTimer, cfg.DashWindow())
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
