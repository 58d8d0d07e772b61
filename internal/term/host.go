// Package term draws the fire in a terminal using half-block cells, two
// pixels per character.
package term

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"ignis/internal/app"
	"ignis/internal/core"
	"ignis/internal/engine"
	"ignis/internal/metrics"
	"ignis/internal/ui"
)

const halfBlock = '▀'

var (
	statusStyle = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	faultStyle  = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorRed)
)

// Host runs benchmarks against a tcell screen. The screen is the display sink
// and the last row is a status line.
type Host struct {
	screen tcell.Screen
	cfg    *app.Config
	log    *zap.Logger
	memory metrics.MemoryProbe

	eng     *engine.Engine
	summary metrics.Summary
	sampled bool
	fault   error
}

// New returns a host for an initialised screen. It does not start physics.
func New(screen tcell.Screen, cfg *app.Config, log *zap.Logger) *Host {
	if log == nil {
		log = zap.NewNop()
	}
	return &Host{
		screen: screen,
		cfg:    cfg,
		log:    log,
		memory: metrics.NewProcessMemory(),
	}
}

// Engine returns the running engine, or nil.
func (h *Host) Engine() *engine.Engine { return h.eng }

// Publish implements metrics.Sink.
func (h *Host) Publish(s metrics.Summary) {
	h.summary = s
	h.sampled = true
}

// Present implements render.Sink. Each character cell shows the top pixel as
// foreground and the bottom pixel as background of a half block, sampled
// nearest-neighbour from the frame.
func (h *Host) Present(frame *image.NRGBA) {
	cols, rows := h.screen.Size()
	rows-- // status line
	if cols <= 0 || rows <= 0 {
		return
	}
	fw, fh := frame.Rect.Dx(), frame.Rect.Dy()
	prows := rows * 2
	for cy := 0; cy < rows; cy++ {
		top := (2 * cy) * fh / prows
		bottom := (2*cy + 1) * fh / prows
		for cx := 0; cx < cols; cx++ {
			px := cx * fw / cols
			style := tcell.StyleDefault.
				Foreground(overBlack(frame, px, top)).
				Background(overBlack(frame, px, bottom))
			h.screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}
}

// overBlack composites a straight-alpha pixel over black.
func overBlack(frame *image.NRGBA, x, y int) tcell.Color {
	i := frame.PixOffset(x, y)
	p := frame.Pix[i : i+4 : i+4]
	a := int32(p[3])
	return tcell.NewRGBColor(int32(p[0])*a/255, int32(p[1])*a/255, int32(p[2])*a/255)
}

func (h *Host) drawStatus() {
	cols, rows := h.screen.Size()
	if rows <= 0 {
		return
	}
	y := rows - 1
	line := "measuring... | q quit  1/2/3 mode  u ultra  r resolution  enter restart"
	style := statusStyle
	switch {
	case h.fault != nil:
		line = fmt.Sprintf("physics stopped: %v", h.fault)
		style = faultStyle
	case h.sampled:
		c := ui.SpeedColor(h.summary.PhysicsRate)
		line = ui.StatusLine(h.summary)
		style = statusStyle.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	}
	x := 0
	for _, r := range line {
		if x >= cols {
			break
		}
		h.screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < cols; x++ {
		h.screen.SetContent(x, y, ' ', nil, statusStyle)
	}
}

// Restart stops the running engine, if any, and starts a new one from the
// current configuration.
func (h *Host) Restart() error {
	ec, err := h.cfg.EngineConfig()
	if err != nil {
		return err
	}
	h.Close()
	eng, err := engine.New(ec, h,
		engine.WithLogger(h.log),
		engine.WithMemoryProbe(h.memory),
		engine.WithMetricsSink(h),
	)
	if err != nil {
		return err
	}
	h.eng = eng
	h.sampled = false
	h.fault = nil
	return eng.Start()
}

// Close stops the running engine.
func (h *Host) Close() {
	if h.eng == nil {
		return
	}
	if !h.eng.Stop() {
		h.log.Warn("previous benchmark still running", zap.String("run", h.eng.ID()))
	}
	h.eng = nil
}

// HandleKey applies one key press. It reports whether the host should exit.
func (h *Host) HandleKey(ev *tcell.EventKey) (bool, error) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true, nil
	case tcell.KeyEnter:
		return false, h.Restart()
	case tcell.KeyRune:
	default:
		return false, nil
	}
	switch ev.Rune() {
	case 'q', 'Q':
		return true, nil
	case '1':
		h.cfg.Mode = core.PolicySerial.String()
	case '2':
		h.cfg.Mode = core.PolicyParallel.String()
	case '3':
		h.cfg.Mode = core.PolicyExternalStress.String()
	case 'u', 'U':
		h.cfg.Ultra = !h.cfg.Ultra
	case 'r', 'R':
		h.cfg.Preset = h.cfg.NextPreset().Name
		h.cfg.Width, h.cfg.Height = 0, 0
	default:
		return false, nil
	}
	return false, h.Restart()
}

// Run starts a benchmark and renders at cfg.TPS until a quit key or ctx ends.
func (h *Host) Run(ctx context.Context) error {
	if err := h.Restart(); err != nil {
		return err
	}
	defer h.Close()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	tps := h.cfg.TPS
	if tps <= 0 {
		tps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	for {
		var faults <-chan error
		if h.eng != nil {
			faults = h.eng.Faults()
		}
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				h.screen.Sync()
			case *tcell.EventKey:
				quit, err := h.HandleKey(ev)
				if err != nil {
					return err
				}
				if quit {
					return nil
				}
			}
		case err := <-faults:
			h.fault = err
		case <-ticker.C:
			if h.eng != nil {
				h.eng.Render()
			}
			h.drawStatus()
			h.screen.Show()
		}
	}
}
