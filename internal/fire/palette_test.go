package fire

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaletteEndpoints(t *testing.T) {
	p := DefaultPalette()
	assert.Equal(t, color.NRGBA{R: 0, G: 0, B: 0, A: 255}, p.At(0))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 127, A: 255}, p.At(MaxIntensity))
	assert.Equal(t, color.NRGBA{R: 177, G: 0, B: 0, A: 255}, p.At(10))
}

func TestPaletteIsPure(t *testing.T) {
	p := DefaultPalette()
	for i := 0; i < Levels; i++ {
		first := p.At(i)
		for n := 0; n < 5; n++ {
			assert.Equal(t, first, p.At(i))
		}
	}

	// Mutating a copy must not leak back into the shared table.
	p[5] = color.NRGBA{R: 1, G: 2, B: 3, A: 4}
	fresh := DefaultPalette()
	assert.NotEqual(t, p[5], fresh.At(5))
}

func TestPaletteClampsOutOfRange(t *testing.T) {
	p := DefaultPalette()
	assert.Equal(t, p.At(0), p.At(-4))
	assert.Equal(t, p.At(MaxIntensity), p.At(99))
}

func TestPaletteIsOpaqueAndMonotonic(t *testing.T) {
	p := DefaultPalette()
	for i := 1; i < Levels; i++ {
		prev, cur := p.At(i-1), p.At(i)
		assert.EqualValues(t, 255, cur.A)
		assert.GreaterOrEqual(t, cur.R, prev.R, "red at %d", i)
		assert.GreaterOrEqual(t, cur.G, prev.G, "green at %d", i)
		assert.GreaterOrEqual(t, cur.B, prev.B, "blue at %d", i)
	}
}
