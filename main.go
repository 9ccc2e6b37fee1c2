package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	script := flag.String("script", "", "hand script in prefabs/scripts/ (overrides game.yaml)")
	cursor := flag.Bool("cursor", false, "add a player whose right hand follows the mouse")
	drop := flag.Float64("drop", -1, "chance in [0,1] that a body frame is dropped (negative keeps game.yaml)")
	tps := flag.Int("tps", 0, "sensor and game tick rate (0 keeps game.yaml)")
	watch := flag.Bool("watch", false, "reload prefabs/ when files change")
	debug := flag.Bool("debug", false, "enable debug mode")
	seed := flag.Uint64("seed", 0, "seed for launch sides and frame drops (0 picks one)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(Options{
		Script:   *script,
		Cursor:   *cursor,
		DropRate: *drop,
		TPS:      *tps,
		Watch:    *watch,
		Debug:    *debug,
		Seed:     *seed,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowSize(w*3/4, h*3/4)
	ebiten.SetWindowTitle("kinectninja")

	if err := ebiten.RunGame(game); err != nil {
		log.Print(err)
	}
}
