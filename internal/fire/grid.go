package fire

import (
	"errors"
	"fmt"

	"ignis/internal/core"
)

const (
	// MaxIntensity is the hottest fire value and the value of the source row.
	MaxIntensity = 36
	// Levels is the number of distinct fire intensities.
	Levels = MaxIntensity + 1
)

// ErrInvalidSize is returned when a grid is requested with a non-positive dimension.
var ErrInvalidSize = errors.New("fire: grid dimensions must be positive")

// Grid holds the shared simulation state. It is written by exactly one physics
// role and read by the compositor and sampler without synchronization; readers
// may observe a pass half-applied. Every cell stays in range under any
// interleaving, which is all the readers rely on.
type Grid struct {
	W, H int

	fire  *core.ByteGrid
	smoke *core.ByteGrid
}

// NewGrid allocates a grid and lights the source row. Smoke storage exists only
// when enhanced is set.
func NewGrid(w, h int, enhanced bool) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	g := &Grid{W: w, H: h, fire: core.NewByteGrid(w, h)}
	if enhanced {
		g.smoke = core.NewByteGrid(w, h)
	}
	g.fire.FillRow(h-1, MaxIntensity)
	return g, nil
}

// Size returns the grid dimensions.
func (g *Grid) Size() core.Size { return core.Size{W: g.W, H: g.H} }

// Enhanced reports whether smoke is simulated.
func (g *Grid) Enhanced() bool { return g.smoke != nil }

// Fire exposes the intensity cells, row-major.
func (g *Grid) Fire() []uint8 { return g.fire.Cells() }

// Smoke exposes the smoke density cells, or nil outside enhanced mode.
func (g *Grid) Smoke() []uint8 {
	if g.smoke == nil {
		return nil
	}
	return g.smoke.Cells()
}

// Reset extinguishes everything except the source row.
func (g *Grid) Reset() {
	g.fire.Clear()
	g.fire.FillRow(g.H-1, MaxIntensity)
	if g.smoke != nil {
		g.smoke.Clear()
	}
}
