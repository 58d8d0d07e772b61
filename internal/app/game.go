//go:build ebiten

package app

import (
	"image"
	"image/color"

	"go.uber.org/zap"

	"ignis/internal/core"
	"ignis/internal/engine"
	"ignis/internal/metrics"
	"ignis/internal/render"
	"ignis/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	// ViewWidth and ViewHeight are the logical size of the fire view. Frames
	// of every resolution are scaled to fit it.
	ViewWidth  = 1280
	ViewHeight = 720
	hudWidth   = 240
)

// Game adapts the benchmark engine to the ebiten.Game interface. Physics runs
// on its own goroutines; Draw is the render context.
type Game struct {
	cfg    *Config
	log    *zap.Logger
	memory metrics.MemoryProbe

	eng     *engine.Engine
	policy  core.Policy
	texture *ebiten.Image
	upload  []byte

	hud     *ui.HUD
	effects *ui.Effects
	logSink *metrics.LogSink
}

// New constructs a Game and starts the first benchmark.
func New(cfg *Config, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Game{
		cfg:     cfg,
		log:     log,
		memory:  metrics.NewProcessMemory(),
		hud:     ui.NewHUD(hudWidth),
		effects: ui.NewEffects(),
		logSink: metrics.NewLogSink(log),
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

// ScreenSize is the logical window size including the HUD panel.
func ScreenSize() (int, int) { return ViewWidth + hudWidth, ViewHeight }

// restart stops the running engine, if any, and starts a new one from cfg.
func (g *Game) restart() error {
	ec, err := g.cfg.EngineConfig()
	if err != nil {
		return err
	}
	g.stop()
	eng, err := engine.New(ec, render.SinkFunc(g.present),
		engine.WithLogger(g.log),
		engine.WithMemoryProbe(g.memory),
		engine.WithMetricsSink(g.hud),
		engine.WithMetricsSink(g.logSink),
	)
	if err != nil {
		return err
	}
	if g.texture != nil && !g.texture.Bounds().Eq(image.Rect(0, 0, ec.Width, ec.Height)) {
		g.texture.Dispose()
		g.texture = nil
	}
	if g.texture == nil {
		g.texture = ebiten.NewImage(ec.Width, ec.Height)
		g.upload = make([]byte, 4*ec.Width*ec.Height)
	}
	g.hud.Reset()
	g.eng = eng
	g.policy = ec.Policy
	return eng.Start()
}

func (g *Game) stop() {
	if g.eng == nil {
		return
	}
	if !g.eng.Stop() {
		g.log.Warn("previous benchmark still running", zap.String("run", g.eng.ID()))
	}
	g.eng = nil
}

// Close stops the running benchmark.
func (g *Game) Close() { g.stop() }

// present uploads a finished frame into the GPU texture.
func (g *Game) present(frame *image.NRGBA) {
	render.Premultiply(g.upload, frame.Pix)
	g.texture.WritePixels(g.upload)
}

// Update handles input and physics fault notices.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.stop()
		return ebiten.Termination
	}

	restart := inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	for key, mode := range map[ebiten.Key]string{
		ebiten.KeyDigit1: core.PolicySerial.String(),
		ebiten.KeyDigit2: core.PolicyParallel.String(),
		ebiten.KeyDigit3: core.PolicyExternalStress.String(),
	} {
		if inpututil.IsKeyJustPressed(key) {
			g.cfg.Mode = mode
			restart = true
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.cfg.Preset = g.cfg.NextPreset().Name
		g.cfg.Width, g.cfg.Height = 0, 0
		restart = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyU) {
		g.cfg.Ultra = !g.cfg.Ultra
		restart = true
	}
	if restart {
		if err := g.restart(); err != nil {
			return err
		}
	}

	if g.eng != nil {
		select {
		case err := <-g.eng.Faults():
			g.hud.SetFault(err)
		default:
		}
	}
	return nil
}

// Draw renders the current grid state and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	if g.eng == nil {
		return
	}
	g.eng.Render()

	geo := fitView(g.texture.Bounds().Dx(), g.texture.Bounds().Dy())
	if g.policy == core.PolicyExternalStress {
		g.effects.Draw(screen, g.texture, geo)
	} else {
		op := &ebiten.DrawImageOptions{}
		op.GeoM = geo
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(g.texture, op)
	}

	g.hud.SetParameters(g.eng.Parameters())
	g.hud.Draw(screen, ViewWidth, ViewHeight)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenSize()
}

// fitView scales a w by h frame to fill the view while keeping its aspect
// ratio, centered.
func fitView(w, h int) ebiten.GeoM {
	var geo ebiten.GeoM
	if w <= 0 || h <= 0 {
		return geo
	}
	scale := min(float64(ViewWidth)/float64(w), float64(ViewHeight)/float64(h))
	geo.Scale(scale, scale)
	geo.Translate((ViewWidth-float64(w)*scale)/2, (ViewHeight-float64(h)*scale)/2)
	return geo
}
