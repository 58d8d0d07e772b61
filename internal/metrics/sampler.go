package metrics

import (
	"time"

	"ignis/internal/core"
)

// DefaultInterval is the wall-clock gap between summaries.
const DefaultInterval = 500 * time.Millisecond

// Summary is the read-only throughput report handed to sinks.
type Summary struct {
	PhysicsRate float64 // passes per second
	RenderRate  float64 // renders per second
	MemoryMB    uint64
	Mode        string
	Policy      string
	Score       float64 // millions of cells simulated per second
	Size        core.Size
	At          time.Time
}

// Sink receives summaries on the sampling cadence.
type Sink interface {
	Publish(Summary)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Summary)

// Publish implements Sink.
func (f SinkFunc) Publish(s Summary) { f(s) }

// Summarize converts raw counts collected over interval into rates.
func Summarize(physics, render uint64, interval time.Duration, size core.Size) Summary {
	secs := interval.Seconds()
	if secs <= 0 {
		return Summary{Size: size}
	}
	physRate := float64(physics) / secs
	return Summary{
		PhysicsRate: physRate,
		RenderRate:  float64(render) / secs,
		Score:       physRate * float64(size.Cells()) / 1e6,
		Size:        size,
	}
}

// SamplerConfig configures a Sampler.
type SamplerConfig struct {
	Size     core.Size
	Mode     string
	Policy   string
	Interval time.Duration
	Memory   MemoryProbe
}

// Sampler turns counters into summaries once per interval. Tick is called from
// the render context only.
type Sampler struct {
	counters *Counters
	cfg      SamplerConfig
	sinks    []Sink
	last     time.Time
}

// NewSampler creates a Sampler over counters publishing to sinks.
func NewSampler(counters *Counters, cfg SamplerConfig, sinks ...Sink) *Sampler {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Memory == nil {
		cfg.Memory = NewProcessMemory()
	}
	return &Sampler{counters: counters, cfg: cfg, sinks: sinks}
}

// AddSink registers an additional sink. Not safe to call concurrently with Tick.
func (s *Sampler) AddSink(sink Sink) {
	if sink != nil {
		s.sinks = append(s.sinks, sink)
	}
}

// Reset restarts the interval at now and discards pending counts.
func (s *Sampler) Reset(now time.Time) {
	s.last = now
	s.counters.Drain()
}

// Tick emits a summary when at least one interval elapsed since the previous
// one. Rates are computed over the nominal interval, not the measured gap.
func (s *Sampler) Tick(now time.Time) (Summary, bool) {
	if s.last.IsZero() {
		s.last = now
		return Summary{}, false
	}
	if now.Sub(s.last) < s.cfg.Interval {
		return Summary{}, false
	}
	s.last = now

	physics, render := s.counters.Drain()
	summary := Summarize(physics, render, s.cfg.Interval, s.cfg.Size)
	summary.Mode = s.cfg.Mode
	summary.Policy = s.cfg.Policy
	summary.MemoryMB = s.cfg.Memory.UsageMB()
	summary.At = now

	for _, sink := range s.sinks {
		sink.Publish(summary)
	}
	return summary, true
}
