package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/kinectninja/dispatch"
	"github.com/milk9111/kinectninja/game"
	"github.com/milk9111/kinectninja/prefabs"
	"github.com/milk9111/kinectninja/render"
	"github.com/milk9111/kinectninja/sensor"
	"github.com/milk9111/kinectninja/tracking"
)

type Options struct {
	Script   string
	Cursor   bool
	DropRate float64 // negative keeps the spec's rate
	TPS      int     // zero keeps the spec's tick rate
	Watch    bool
	Debug    bool
	Seed     uint64
}

type Game struct {
	debug bool

	width, height int

	sensor  *sensor.Sensor
	script  *sensor.ScriptBodySource
	cursor  *sensor.CursorBodySource
	loop    *dispatch.Loop
	overlay *render.Overlay
	hud     *render.HUD
	watcher *prefabs.Watcher
}

func NewGame(opts Options) (*Game, error) {
	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		return nil, err
	}
	if opts.Script != "" {
		spec.Sensor.Script = opts.Script
	}
	if opts.DropRate >= 0 {
		spec.Sensor.DropRate = opts.DropRate
	}
	if opts.TPS > 0 {
		spec.TickHz = opts.TPS
	}

	g := &Game{debug: opts.Debug, width: spec.Frame.Width, height: spec.Frame.Height}

	var sources sensor.MultiBodySource
	if spec.Sensor.Script != "" {
		g.script, err = sensor.LoadScriptBodySource(spec.Sensor.Script, spec.TickHz)
		if err != nil {
			return nil, err
		}
		sources = append(sources, g.script)
	}
	if opts.Cursor {
		desc := tracking.FrameDescription{Width: spec.Frame.Width, Height: spec.Frame.Height, BytesPerPixel: 4}
		g.cursor = sensor.NewCursorBodySource(tracking.DefaultPinholeMapper(desc), spec.Sensor.CursorDepth)
		sources = append(sources, g.cursor)
	}

	cfg := sensor.ConfigFromSpec(spec, sources)
	cfg.Seed = opts.Seed
	g.sensor, err = sensor.Open(cfg)
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	session := game.NewSession(
		g.sensor.ColorFrameDescription(),
		g.sensor.CoordinateMapper(),
		game.NewRandomSource(seed),
		game.TuningFromSpec(spec),
	)

	g.overlay = render.NewOverlay(g.sensor.ColorFrameDescription())
	g.hud = render.NewHUD()
	g.loop = dispatch.New(g.sensor, session, g.overlay)

	if opts.Watch {
		g.watcher, err = prefabs.NewWatcher()
		if err != nil {
			log.Printf("watch: %v; hot reload disabled", err)
			g.watcher = nil
		}
	}

	ebiten.SetTPS(g.sensor.TickHz())
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyJ) {
		session := g.loop.Session()
		t := session.Tuning()
		t.ShowJoints = !t.ShowJoints
		session.SetTuning(t)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}

	if g.cursor != nil {
		x, y := ebiten.CursorPosition()
		g.cursor.MoveTo(float64(x), float64(y))
	}

	g.applyChanges()
	g.loop.Pump()

	g.hud.SetScore(g.loop.Session().Score())
	g.hud.UI.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.overlay.Draw(screen)
	g.hud.UI.Draw(screen)

	if g.debug {
		steps, dropped := g.loop.Stats()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %.1f  FPS: %.1f  steps: %d  dropped: %d", ebiten.ActualTPS(), ebiten.ActualFPS(), steps, dropped), 8, g.height-24)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Close releases the sensor and the file watcher.
func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if err := g.sensor.Close(); err != nil {
		log.Printf("sensor close: %v", err)
	}
}

// applyChanges drains pending prefab edits.
func (g *Game) applyChanges() {
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
			g.applyChange(ch)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) applyChange(ch prefabs.Change) {
	switch ch.Kind {
	case prefabs.ChangeSpec:
		if ch.Name() != prefabs.GameFile {
			return
		}
		data, err := os.ReadFile(ch.Path)
		if err != nil {
			log.Printf("reload %s: %v", ch.Name(), err)
			return
		}
		spec, err := prefabs.ParseGameSpec(data)
		if err != nil {
			log.Printf("reload %s: %v", ch.Name(), err)
			return
		}
		if spec.Frame.Width != g.width || spec.Frame.Height != g.height {
			log.Printf("reload %s: frame size changes need a restart", ch.Name())
		}
		g.loop.Session().SetTuning(game.TuningFromSpec(spec))
		log.Printf("reloaded %s", ch.Name())
	case prefabs.ChangeScript:
		if g.script == nil || ch.Name() != filepath.Base(g.script.Name()) {
			return
		}
		src, err := prefabs.LoadScript(ch.Name())
		if err != nil {
			log.Printf("reload %s: %v", ch.Name(), err)
			return
		}
		if err := g.script.Reload(src); err != nil {
			log.Printf("reload %s: %v", ch.Name(), err)
			return
		}
		log.Printf("reloaded %s", ch.Name())
	}
}
