package engine

import (
	"image"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ignis/internal/core"
	"ignis/internal/fire"
	"ignis/internal/metrics"
	"ignis/internal/physics"
	"ignis/internal/render"
)

type options struct {
	log     *zap.Logger
	sinks   []metrics.Sink
	memory  metrics.MemoryProbe
	newRand core.RandFactory
	now     func() time.Time
}

// Option customises an Engine.
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithMetricsSink adds a destination for throughput summaries.
func WithMetricsSink(sink metrics.Sink) Option {
	return func(o *options) {
		if sink != nil {
			o.sinks = append(o.sinks, sink)
		}
	}
}

// WithMemoryProbe replaces the process memory probe.
func WithMemoryProbe(probe metrics.MemoryProbe) Option {
	return func(o *options) { o.memory = probe }
}

// WithRandFactory replaces the per-goroutine random source factory.
func WithRandFactory(f core.RandFactory) Option {
	return func(o *options) { o.newRand = f }
}

// WithClock replaces the wall clock used for sampling.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Engine owns the grid, the physics scheduler, the compositor and the sampler
// for one configuration.
type Engine struct {
	id  string
	cfg Config
	log *zap.Logger
	now func() time.Time

	grid       *fire.Grid
	counters   metrics.Counters
	physics    *physics.Scheduler
	compositor *render.Compositor
	sampler    *metrics.Sampler
}

// New validates cfg and allocates all storage. No goroutine is started until
// Start. A nil display discards frames.
func New(cfg Config, display render.Sink, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}

	grid, err := fire.NewGrid(cfg.Width, cfg.Height, cfg.Ultra)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	e := &Engine{
		id:   id,
		cfg:  cfg,
		now:  o.now,
		grid: grid,
		log: o.log.With(
			zap.String("run", id),
			zap.Stringer("size", cfg.Size()),
			zap.String("mode", core.ModeLabel(cfg.Ultra)),
		),
	}
	e.physics = physics.New(grid, &e.counters, physics.Config{
		Policy:      cfg.Policy,
		Workers:     cfg.Workers,
		StopTimeout: cfg.StopTimeout,
		NewRand:     o.newRand,
		Log:         e.log,
	})
	e.compositor = render.NewCompositor(grid, display, &e.counters)
	e.sampler = metrics.NewSampler(&e.counters, metrics.SamplerConfig{
		Size:     cfg.Size(),
		Mode:     core.ModeLabel(cfg.Ultra),
		Policy:   cfg.Policy.String(),
		Interval: cfg.SampleInterval,
		Memory:   o.memory,
	}, o.sinks...)
	return e, nil
}

// ID identifies this run in logs and reports.
func (e *Engine) ID() string { return e.id }

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Grid exposes the shared simulation state for read-only inspection.
func (e *Engine) Grid() *fire.Grid { return e.grid }

// Frame returns the pixel buffer refreshed by Render.
func (e *Engine) Frame() *image.NRGBA { return e.compositor.Frame() }

// State reports the physics lifecycle phase.
func (e *Engine) State() physics.State { return e.physics.State() }

// Faults delivers a single notice if the physics worker dies.
func (e *Engine) Faults() <-chan error { return e.physics.Faults() }

// AddMetricsSink registers a sink after construction. Call it from the render
// context only.
func (e *Engine) AddMetricsSink(sink metrics.Sink) { e.sampler.AddSink(sink) }

// Warmup runs n physics passes synchronously before Start.
func (e *Engine) Warmup(n int) error {
	for i := 0; i < n; i++ {
		if err := e.physics.Step(); err != nil {
			return err
		}
	}
	e.counters.Drain()
	return nil
}

// Start launches the physics loop and restarts the sampling interval.
func (e *Engine) Start() error {
	e.sampler.Reset(e.now())
	return e.physics.Start()
}

// Stop halts physics, waiting at most the stop timeout. It reports whether the
// workers exited in time.
func (e *Engine) Stop() bool { return e.physics.Stop() }

// Render composites the current grid into the frame, hands it to the display
// sink and samples throughput. It returns a summary when one was due.
func (e *Engine) Render() (metrics.Summary, bool) {
	e.compositor.Render()
	return e.sampler.Tick(e.now())
}

// Parameters describes the running configuration for display.
func (e *Engine) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Benchmark",
			Params: []core.Parameter{
				intParam("w", "Width", e.cfg.Width),
				intParam("h", "Height", e.cfg.Height),
				stringParam("policy", "Policy", e.cfg.Policy.String()),
				boolParam("ultra", "Ultra", e.cfg.Ultra),
				intParam("workers", "Workers", e.physics.Workers()),
			},
		},
		{
			Name: "Run",
			Params: []core.Parameter{
				stringParam("run", "Run", e.id),
				stringParam("state", "Physics", e.physics.State().String()),
			},
		},
	}}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeBool, Value: strconv.FormatBool(value)}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeString, Value: value}
}
