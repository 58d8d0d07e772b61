package physics

import (
	"runtime/debug"
	"sync"

	"golang.org/x/sync/errgroup"

	"ignis/internal/core"
	"ignis/internal/fire"
)

// span is a half-open column range [from, to) owned by one worker.
type span struct{ from, to int }

// partition splits width columns into at most workers contiguous spans whose
// sizes differ by at most one.
func partition(width, workers int) []span {
	if workers < 1 {
		workers = 1
	}
	if workers > width {
		workers = width
	}
	spans := make([]span, workers)
	base, rem := width/workers, width%workers
	from := 0
	for i := range spans {
		n := base
		if i < rem {
			n++
		}
		spans[i] = span{from: from, to: from + n}
		from += n
	}
	return spans
}

// pool is a fixed set of goroutines, each bound to one column span and its own
// Rand. A pass kicks every worker once and returns when all of them finished.
type pool struct {
	grid  *fire.Grid
	spans []span
	kicks []chan struct{}

	pass  sync.WaitGroup
	group errgroup.Group

	faultOnce sync.Once
	fault     *FaultError
}

func newPool(grid *fire.Grid, workers int, newRand core.RandFactory) *pool {
	p := &pool{grid: grid, spans: partition(grid.W, workers)}
	p.kicks = make([]chan struct{}, len(p.spans))
	for i, sp := range p.spans {
		kick := make(chan struct{})
		p.kicks[i] = kick
		rng := newRand()
		p.group.Go(func() error {
			for range kick {
				p.work(sp, rng)
			}
			return nil
		})
	}
	return p
}

func (p *pool) work(sp span, rng core.Rand) {
	defer p.pass.Done()
	defer func() {
		if r := recover(); r != nil {
			p.faultOnce.Do(func() {
				p.fault = &FaultError{Value: r, Stack: debug.Stack()}
			})
		}
	}()
	p.grid.AdvanceColumns(sp.from, sp.to, rng)
}

// run executes one pass across all workers.
func (p *pool) run() error {
	p.pass.Add(len(p.kicks))
	for _, kick := range p.kicks {
		kick <- struct{}{}
	}
	p.pass.Wait()
	if p.fault != nil {
		return p.fault
	}
	return nil
}

// size returns the number of workers.
func (p *pool) size() int { return len(p.spans) }

// close releases the workers and waits for them to return. It must not be
// called while a pass is in flight.
func (p *pool) close() {
	for _, kick := range p.kicks {
		close(kick)
	}
	_ = p.group.Wait()
}
