//go:build ebiten

package ui

import (
	"image/color"

	"ignis/internal/core"
	"ignis/internal/metrics"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	panelPadding = 12
	lineHeight   = 18
	groupGap     = 10
)

var (
	panelColor  = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor  = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	mutedColor  = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	faultColor  = color.RGBA{R: 255, G: 80, B: 80, A: 255}
	helpMessage = []string{"1/2/3 mode  U ultra", "R resolution  Enter restart", "Q quit"}
)

// HUD renders the stats panel to the right of the fire view. It is a
// metrics.Sink so the engine can publish summaries to it directly.
type HUD struct {
	width      int
	panel      *ebiten.Image
	lastHeight int

	summary  metrics.Summary
	sampled  bool
	snapshot core.ParameterSnapshot
	fault    string
}

// NewHUD constructs a HUD with the given panel width.
func NewHUD(width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{width: width}
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int { return h.width }

// Publish implements metrics.Sink.
func (h *HUD) Publish(s metrics.Summary) {
	h.summary = s
	h.sampled = true
}

// SetParameters replaces the configuration listing.
func (h *HUD) SetParameters(s core.ParameterSnapshot) { h.snapshot = s }

// SetFault shows a physics failure until the next Reset.
func (h *HUD) SetFault(err error) {
	if err == nil {
		h.fault = ""
		return
	}
	h.fault = err.Error()
}

// Reset forgets the last summary and fault after a restart.
func (h *HUD) Reset() {
	h.summary = metrics.Summary{}
	h.sampled = false
	h.fault = ""
}

// Draw paints the panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	y := panelPadding + 10
	text.Draw(h.panel, "ignis", face, panelPadding, y, titleColor)
	y += lineHeight + groupGap

	if h.sampled {
		speed := SpeedColor(h.summary.PhysicsRate)
		for _, line := range StatsLines(h.summary) {
			text.Draw(h.panel, line, face, panelPadding, y, speed)
			y += lineHeight
		}
	} else {
		text.Draw(h.panel, "Measuring...", face, panelPadding, y, mutedColor)
		y += lineHeight
	}
	if h.fault != "" {
		text.Draw(h.panel, "Physics stopped:", face, panelPadding, y, faultColor)
		y += lineHeight
		text.Draw(h.panel, h.fault, face, panelPadding, y, faultColor)
		y += lineHeight
	}

	for _, group := range h.snapshot.Groups {
		y += groupGap
		text.Draw(h.panel, group.Name, face, panelPadding, y, titleColor)
		y += lineHeight
		for _, p := range group.Params {
			text.Draw(h.panel, p.Label, face, panelPadding, y, labelColor)
			bounds := text.BoundString(face, p.Value)
			x := h.width - panelPadding - bounds.Dx()
			text.Draw(h.panel, p.Value, face, x, y, mutedColor)
			y += lineHeight
		}
	}

	y = height - panelPadding - lineHeight*(len(helpMessage)-1)
	for _, line := range helpMessage {
		text.Draw(h.panel, line, face, panelPadding, y, mutedColor)
		y += lineHeight
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}
