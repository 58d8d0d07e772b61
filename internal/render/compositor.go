package render

import (
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"

	"ignis/internal/fire"
	"ignis/internal/metrics"
)

// minBandPixels keeps tiny grids on the calling goroutine.
const minBandPixels = 64 * 1024

// Compositor snapshots grid state into a pixel buffer on demand. It never
// synchronizes with the physics workers: a frame may show a pass half-applied.
type Compositor struct {
	grid     *fire.Grid
	palette  fire.Palette
	frame    *image.NRGBA
	sink     Sink
	counters *metrics.Counters
	bands    int
}

// NewCompositor allocates the frame buffer for grid. Counters.Render is
// incremented once per finished render.
func NewCompositor(grid *fire.Grid, sink Sink, counters *metrics.Counters) *Compositor {
	if sink == nil {
		sink = Discard
	}
	cells := grid.W * grid.H
	bands := runtime.GOMAXPROCS(0)
	if limit := cells / minBandPixels; bands > limit {
		bands = limit
	}
	if bands < 1 {
		bands = 1
	}
	return &Compositor{
		grid:     grid,
		palette:  fire.DefaultPalette(),
		frame:    image.NewNRGBA(image.Rect(0, 0, grid.W, grid.H)),
		sink:     sink,
		counters: counters,
		bands:    bands,
	}
}

// Frame returns the buffer the last Render filled.
func (c *Compositor) Frame() *image.NRGBA { return c.frame }

// Render fills the frame from the current grid, presents it and counts it.
// Hosts call it at their own cadence.
func (c *Compositor) Render() {
	cells := c.grid.Fire()
	smoke := c.grid.Smoke()
	pix := c.frame.Pix

	if c.bands == 1 {
		c.fill(pix, cells, smoke)
	} else {
		var g errgroup.Group
		n := len(cells)
		for b := 0; b < c.bands; b++ {
			from, to := n*b/c.bands, n*(b+1)/c.bands
			g.Go(func() error {
				var s []uint8
				if smoke != nil {
					s = smoke[from:to]
				}
				c.fill(pix[from*4:to*4], cells[from:to], s)
				return nil
			})
		}
		_ = g.Wait()
	}

	c.sink.Present(c.frame)
	c.counters.Render.Add(1)
}

func (c *Compositor) fill(buf []byte, cells, smoke []uint8) {
	if smoke == nil {
		fillStandard(buf, cells, &c.palette)
		return
	}
	fillEnhanced(buf, cells, smoke, &c.palette)
}
