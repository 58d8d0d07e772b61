package engine

import (
	"errors"
	"fmt"
	"time"

	"ignis/internal/core"
	"ignis/internal/metrics"
	"ignis/internal/physics"
)

// ErrInvalidSize is returned by New for non-positive dimensions.
var ErrInvalidSize = errors.New("engine: width and height must be positive")

// Config describes one benchmark configuration. Changing any field means
// building a new Engine.
type Config struct {
	Width, Height int
	Policy        core.Policy
	// Ultra enables the smoke simulation and its blended render rule.
	Ultra bool
	// Workers sizes the physics pool; zero means GOMAXPROCS.
	Workers        int
	StopTimeout    time.Duration
	SampleInterval time.Duration
}

// DefaultConfig matches the HD preset on the parallel policy.
func DefaultConfig() Config {
	return Config{
		Width:          1280,
		Height:         720,
		Policy:         core.PolicyParallel,
		StopTimeout:    physics.DefaultStopTimeout,
		SampleInterval: metrics.DefaultInterval,
	}
}

// Size returns the configured grid size.
func (c Config) Size() core.Size { return core.Size{W: c.Width, H: c.Height} }

// Validate reports configuration errors.
func (c Config) Validate() error {
	if !c.Size().Valid() {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	return nil
}
