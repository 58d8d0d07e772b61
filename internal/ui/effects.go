//go:build ebiten

package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// glowOffsets are the pixel shifts, in source texels, of the additive glow taps.
var glowOffsets = [][2]float64{{-2, 0}, {2, 0}, {0, -2}, {0, 2}}

// Effects is the post-processing chain layered on the frame when the GPU
// stress mode is active: a warm tone map, an additive glow, a soft blur and a
// faded reflection near the bottom edge.
type Effects struct {
	half    *ebiten.Image
	scratch *ebiten.Image
}

// NewEffects returns an empty chain. Intermediate images are allocated on
// first use and whenever the source size changes.
func NewEffects() *Effects { return &Effects{} }

// Draw composites src into dst using geo to place the source on screen.
func (e *Effects) Draw(dst, src *ebiten.Image, geo ebiten.GeoM) {
	e.ensure(src)

	// Tone map into the scratch target so the later passes sample it.
	e.scratch.Clear()
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.Scale(1.15, 0.95, 0.8, 1)
	e.scratch.DrawImage(src, op)

	// Glow: additive, offset, faint copies.
	for _, off := range glowOffsets {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(off[0], off[1])
		op.ColorScale.ScaleAlpha(0.18)
		op.Blend = ebiten.BlendLighter
		e.scratch.DrawImage(src, op)
	}

	// Blur: shrink by half and stretch back with linear filtering.
	e.half.Clear()
	op = &ebiten.DrawImageOptions{}
	op.GeoM.Scale(0.5, 0.5)
	op.Filter = ebiten.FilterLinear
	e.half.DrawImage(e.scratch, op)

	op = &ebiten.DrawImageOptions{}
	op.GeoM = geo
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(e.scratch, op)

	op = &ebiten.DrawImageOptions{}
	op.GeoM.Scale(2, 2)
	op.GeoM.Concat(geo)
	op.Filter = ebiten.FilterLinear
	op.ColorScale.ScaleAlpha(0.35)
	op.Blend = ebiten.BlendLighter
	dst.DrawImage(e.half, op)

	// Reflection: a squashed, faded mirror image over the bottom quarter.
	h := float64(src.Bounds().Dy())
	op = &ebiten.DrawImageOptions{}
	op.GeoM.Scale(1, -0.25)
	op.GeoM.Translate(0, h)
	op.GeoM.Concat(geo)
	op.Filter = ebiten.FilterLinear
	op.ColorScale.Scale(0.6, 0.5, 0.5, 0.3)
	dst.DrawImage(e.scratch, op)
}

func (e *Effects) ensure(src *ebiten.Image) {
	b := src.Bounds()
	if e.scratch != nil && e.scratch.Bounds().Eq(b) {
		return
	}
	if e.scratch != nil {
		e.scratch.Dispose()
		e.half.Dispose()
	}
	e.scratch = ebiten.NewImage(b.Dx(), b.Dy())
	e.half = ebiten.NewImage(max(1, b.Dx()/2), max(1, b.Dy()/2))
}
