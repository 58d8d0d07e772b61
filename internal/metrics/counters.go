package metrics

import "sync/atomic"

// Counters tracks completed passes for the two loops. Each counter has a single
// writer; the sampler reads and resets them with Swap, so neither loop ever
// waits on the other.
type Counters struct {
	Physics atomic.Uint64
	Render  atomic.Uint64
}

// Drain returns both counts and zeroes them.
func (c *Counters) Drain() (physics, render uint64) {
	return c.Physics.Swap(0), c.Render.Swap(0)
}
