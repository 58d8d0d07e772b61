package core

import "time"

// FixedStep paces a host loop at a steady ticks-per-second rate. Hosts use it
// to invoke rendering at a display-like cadence; the physics loop never does.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	fs := &FixedStep{now: time.Now}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step returns the configured tick duration.
func (f *FixedStep) Step() time.Duration { return f.step }

// ShouldStep reports whether the host should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

// Wait sleeps until the next tick is due and returns the time it woke up.
func (f *FixedStep) Wait() time.Time {
	for !f.ShouldStep() {
		remaining := f.step - f.accumulator
		if remaining > 0 {
			time.Sleep(remaining)
		}
	}
	return f.last
}
