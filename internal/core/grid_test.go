package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewByteGridClampsSize(t *testing.T) {
	g := NewByteGrid(0, -3)
	assert.Equal(t, 1, g.W)
	assert.Equal(t, 1, g.H)
	assert.Len(t, g.Cells(), 1)
}

func TestByteGridIndexing(t *testing.T) {
	g := NewByteGrid(4, 3)
	g.Cells()[g.Index(2, 1)] = 9
	assert.Equal(t, uint8(9), g.At(2, 1))
	assert.Equal(t, []uint8{0, 0, 9, 0}, g.Row(1))

	g.FillRow(2, 7)
	assert.Equal(t, []uint8{7, 7, 7, 7}, g.Row(2))

	g.Clear()
	for _, v := range g.Cells() {
		assert.Zero(t, v)
	}
}

func TestWrapAndClamp(t *testing.T) {
	g := NewByteGrid(5, 1)
	tests := []struct {
		x, wrap, clamp int
	}{
		{x: -1, wrap: 4, clamp: 0},
		{x: 0, wrap: 0, clamp: 0},
		{x: 3, wrap: 3, clamp: 3},
		{x: 5, wrap: 0, clamp: 4},
		{x: 6, wrap: 1, clamp: 4},
		{x: -6, wrap: 4, clamp: 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.wrap, g.WrapX(tt.x), "wrap %d", tt.x)
		assert.Equal(t, tt.clamp, g.ClampX(tt.x), "clamp %d", tt.x)
	}

	single := NewByteGrid(1, 1)
	assert.Equal(t, 0, single.WrapX(1))
	assert.Equal(t, 0, single.WrapX(-1))
	assert.Equal(t, 0, single.ClampX(1))
}
