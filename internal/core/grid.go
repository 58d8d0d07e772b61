package core

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// At returns the value stored at (x, y).
func (g *ByteGrid) At(x, y int) uint8 { return g.data[y*g.W+x] }

// Row returns the slice backing row y.
func (g *ByteGrid) Row(y int) []uint8 { return g.data[y*g.W : (y+1)*g.W] }

// WrapX wraps a column index horizontally. Rows never wrap.
func (g *ByteGrid) WrapX(x int) int {
	return (x%g.W + g.W) % g.W
}

// ClampX pins a column index to [0, W-1].
func (g *ByteGrid) ClampX(x int) int {
	if x < 0 {
		return 0
	}
	if x >= g.W {
		return g.W - 1
	}
	return x
}

// FillRow sets every cell of row y to v.
func (g *ByteGrid) FillRow(y int, v uint8) {
	row := g.Row(y)
	for i := range row {
		row[i] = v
	}
}

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
