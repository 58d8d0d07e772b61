package core

import "math/rand/v2"

// Rand is the draw interface the update kernel consumes. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// NewRand returns an unseeded PCG generator for use by a single goroutine.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededRand creates a deterministic generator using the provided seed.
func NewSeededRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// RandFactory builds one Rand per execution context.
type RandFactory func() Rand

// DefaultRandFactory hands out unseeded generators.
func DefaultRandFactory() Rand { return NewRand() }

// ConstRand always draws the same value, clamped into [0, n). Useful when a
// run has to be reproducible across scheduling policies.
type ConstRand int

// IntN implements Rand.
func (c ConstRand) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(c) % n
	if v < 0 {
		v += n
	}
	return v
}
