package physics

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"ignis/internal/core"
	"ignis/internal/fire"
	"ignis/internal/metrics"
)

// DefaultStopTimeout bounds how long Stop waits for the workers to exit.
const DefaultStopTimeout = time.Second

// State is the scheduler lifecycle phase.
type State int32

const (
	// StateIdle is the initial state; Step is only valid here.
	StateIdle State = iota
	// StateRunning means the free-running loop has been started.
	StateRunning
	// StateStopped is terminal.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

// ErrNotIdle is returned by Start and Step outside the idle state.
var ErrNotIdle = errors.New("physics: scheduler is not idle")

// FaultError carries a panic recovered from a physics pass.
type FaultError struct {
	Value any
	Stack []byte
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("physics: pass panicked: %v", e.Value)
}

// Config tunes a Scheduler.
type Config struct {
	Policy core.Policy
	// Workers sizes the pool for parallel policies. Zero means GOMAXPROCS.
	Workers     int
	StopTimeout time.Duration
	NewRand     core.RandFactory
	Log         *zap.Logger
}

// Scheduler drives the column kernel over a grid as fast as the CPU allows.
// The run flag is checked once per pass; nothing inside a pass blocks on the
// render side.
type Scheduler struct {
	grid     *fire.Grid
	counters *metrics.Counters
	cfg      Config
	log      *zap.Logger

	state    atomic.Int32
	running  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once

	serialRand core.Rand
	pool       *pool

	faults    chan error
	faultOnce sync.Once
	fault     atomic.Pointer[FaultError]

	// beforePass runs at the top of every pass; tests use it to stall or
	// break the worker.
	beforePass func()
}

// New creates an idle scheduler. Counters.Physics is incremented once per
// completed pass.
func New(grid *fire.Grid, counters *metrics.Counters, cfg Config) *Scheduler {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.StopTimeout <= 0 {
		cfg.StopTimeout = DefaultStopTimeout
	}
	if cfg.NewRand == nil {
		cfg.NewRand = core.DefaultRandFactory
	}
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		grid:     grid,
		counters: counters,
		cfg:      cfg,
		log:      log.With(zap.String("policy", cfg.Policy.String())),
		done:     make(chan struct{}),
		faults:   make(chan error, 1),
	}
}

// State reports the lifecycle phase.
func (s *Scheduler) State() State { return State(s.state.Load()) }

// Workers returns the number of goroutines that execute columns.
func (s *Scheduler) Workers() int {
	if !s.cfg.Policy.Parallel() {
		return 1
	}
	return len(partition(s.grid.W, s.cfg.Workers))
}

// Faults delivers at most one error, the first fault that stopped physics.
func (s *Scheduler) Faults() <-chan error { return s.faults }

// Err returns the recorded fault, if any.
func (s *Scheduler) Err() error {
	if f := s.fault.Load(); f != nil {
		return f
	}
	return nil
}

// Step runs one pass synchronously on the calling goroutine (and the pool,
// for parallel policies). It is only valid before Start.
func (s *Scheduler) Step() error {
	if s.State() != StateIdle {
		return ErrNotIdle
	}
	if err := s.safePass(); err != nil {
		return err
	}
	s.counters.Physics.Add(1)
	return nil
}

// Start launches the free-running loop.
func (s *Scheduler) Start() error {
	if !s.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return ErrNotIdle
	}
	s.running.Store(true)
	s.log.Info("physics started",
		zap.Int("workers", s.Workers()),
		zap.Int("width", s.grid.W),
		zap.Int("height", s.grid.H),
	)
	go s.loop()
	return nil
}

// Stop clears the run flag and waits up to the stop timeout for the loop to
// exit. It never blocks longer than that; a worker that misses the deadline is
// left to finish its pass and exit on its own. Stop is idempotent and reports
// whether the loop has exited.
func (s *Scheduler) Stop() bool {
	s.stopOnce.Do(func() {
		prev := State(s.state.Swap(int32(StateStopped)))
		s.running.Store(false)
		if prev != StateRunning {
			s.closePool()
			close(s.done)
			return
		}
		timer := time.NewTimer(s.cfg.StopTimeout)
		defer timer.Stop()
		select {
		case <-s.done:
			s.log.Info("physics stopped")
		case <-timer.C:
			s.log.Warn("physics worker did not exit before timeout",
				zap.Duration("timeout", s.cfg.StopTimeout))
		}
	})
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func (s *Scheduler) loop() {
	defer close(s.done)
	defer s.closePool()

	for s.running.Load() {
		if err := s.safePass(); err != nil {
			var fe *FaultError
			if !errors.As(err, &fe) {
				fe = &FaultError{Value: err}
			}
			s.fail(fe)
			return
		}
		s.counters.Physics.Add(1)
	}
}

// safePass runs one pass and converts a panic into a FaultError.
func (s *Scheduler) safePass() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &FaultError{Value: r, Stack: debug.Stack()}
		}
	}()
	return s.pass()
}

func (s *Scheduler) pass() error {
	if s.beforePass != nil {
		s.beforePass()
	}
	if !s.cfg.Policy.Parallel() {
		if s.serialRand == nil {
			s.serialRand = s.cfg.NewRand()
		}
		s.grid.AdvanceColumns(0, s.grid.W, s.serialRand)
		return nil
	}
	if s.pool == nil {
		s.pool = newPool(s.grid, s.cfg.Workers, s.cfg.NewRand)
	}
	return s.pool.run()
}

func (s *Scheduler) closePool() {
	if s.pool != nil {
		s.pool.close()
		s.pool = nil
	}
}

func (s *Scheduler) fail(fe *FaultError) {
	s.running.Store(false)
	s.faultOnce.Do(func() {
		s.fault.Store(fe)
		s.log.Error("physics worker faulted",
			zap.Any("panic", fe.Value),
			zap.ByteString("stack", fe.Stack),
		)
		s.faults <- fe
	})
}
