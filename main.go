package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/charcontroller/common"
)

func main() {
	preset := flag.String("preset", "controller", "tuning preset in prefabs/ (basename, .yaml optional)")
	arenaName := flag.String("arena", "", "arena in levels/ (basename, .json optional); defaults to the preset's arena")
	debug := flag.Bool("debug", false, "show the state overlay")
	watch := flag.Bool("watch", false, "reload the preset when files under prefabs/ change")
	mute := flag.Bool("mute", false, "disable sound cues")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(*preset, *arenaName, *debug, *mute)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if *watch {
		if err := game.Watch(); err != nil {
			log.Printf("prefabs: watch disabled: %v", err)
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("charcontroller")
	ebiten.SetTPS(common.TicksPerSecond)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
