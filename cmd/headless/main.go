// Command headless runs a session against the simulated sensor without a window
// and logs every point scored.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/milk9111/kinectninja/dispatch"
	"github.com/milk9111/kinectninja/game"
	"github.com/milk9111/kinectninja/prefabs"
	"github.com/milk9111/kinectninja/sensor"
)

func main() {
	script := flag.String("script", "", "hand script in prefabs/scripts/ (overrides game.yaml)")
	drop := flag.Float64("drop", -1, "chance in [0,1] that a body frame is dropped (negative keeps game.yaml)")
	tps := flag.Int("tps", 0, "sensor tick rate (0 keeps game.yaml)")
	duration := flag.Duration("duration", 30*time.Second, "how long to run (0 runs until interrupted)")
	seed := flag.Uint64("seed", 1, "seed for launch sides and frame drops")
	flag.Parse()

	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		log.Fatal(err)
	}
	if *script != "" {
		spec.Sensor.Script = *script
	}
	if *drop >= 0 {
		spec.Sensor.DropRate = *drop
	}
	if *tps > 0 {
		spec.TickHz = *tps
	}

	src, err := sensor.LoadScriptBodySource(spec.Sensor.Script, spec.TickHz)
	if err != nil {
		log.Fatal(err)
	}

	cfg := sensor.ConfigFromSpec(spec, src)
	cfg.Seed = *seed
	cfg.DisableColor = true
	dev, err := sensor.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}

	session := game.NewSession(dev.ColorFrameDescription(), dev.CoordinateMapper(), game.NewRandomSource(*seed), game.TuningFromSpec(spec))
	loop := dispatch.New(dev, session, dispatch.Discard)

	last := 0
	loop.OnStep = func(cmds *game.RenderCommands) {
		if cmds.Score != last {
			last = cmds.Score
			log.Printf("frame %d: score %d", session.Frames(), cmds.Score)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	log.Printf("running %s at %d Hz", spec.Sensor.Script, spec.TickHz)
	err = loop.Run(ctx)
	if cerr := dev.Close(); cerr != nil {
		log.Printf("sensor close: %v", cerr)
	}
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		log.Fatal(err)
	}

	steps, dropped := loop.Stats()
	published, devDropped := dev.Stats()
	log.Printf("done: score %d after %d steps (%d dropped, device published %d, dropped %d)", session.Score(), steps, dropped, published, devDropped)
}
