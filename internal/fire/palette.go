package fire

import (
	"image/color"
	"math"
)

// Palette maps a fire intensity to its color.
type Palette [Levels]color.NRGBA

var palette = buildPalette()

// DefaultPalette returns the black-red-yellow-white ramp. The returned value is
// a copy; the table itself never changes after init.
func DefaultPalette() Palette { return palette }

// At returns the color for intensity i. Out-of-range values clamp to the ends.
func (p *Palette) At(i int) color.NRGBA {
	if i < 0 {
		i = 0
	}
	if i > MaxIntensity {
		i = MaxIntensity
	}
	return p[i]
}

func buildPalette() Palette {
	var p Palette
	for i := range p {
		t := float64(i) / MaxIntensity
		p[i] = color.NRGBA{
			R: ramp(t, 0),
			G: ramp(t, 0.8),
			B: ramp(t, 2.0),
			A: 0xff,
		}
	}
	return p
}

// ramp evaluates clamp(2.5t - offset, 0, 1) scaled to a byte, truncating.
func ramp(t, offset float64) uint8 {
	v := math.Min(1, math.Max(0, t*2.5-offset))
	return uint8(v * 255)
}
