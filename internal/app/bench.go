package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"

	"ignis/internal/core"
	"ignis/internal/engine"
	"ignis/internal/metrics"
	"ignis/internal/render"
)

// Result aggregates the summaries of one scenario run.
type Result struct {
	Scenario     Scenario
	Run          string
	Samples      int
	PhysicsRate  float64
	RenderRate   float64
	Score        float64
	PeakMemoryMB uint64
	// Stopped is false when physics outlived the stop timeout.
	Stopped bool
}

// Publish implements metrics.Sink by folding s into running means.
func (r *Result) Publish(s metrics.Summary) {
	r.Samples++
	n := float64(r.Samples)
	r.PhysicsRate += (s.PhysicsRate - r.PhysicsRate) / n
	r.RenderRate += (s.RenderRate - r.RenderRate) / n
	r.Score += (s.Score - r.Score) / n
	r.PeakMemoryMB = max(r.PeakMemoryMB, s.MemoryMB)
}

// BenchOptions carries the collaborators shared by every scenario.
type BenchOptions struct {
	Log    *zap.Logger
	Memory metrics.MemoryProbe
	// Sinks receive every summary in addition to the result collector.
	Sinks []metrics.Sink
}

// RunScenario benchmarks one scenario headlessly: warmup passes, then free
// running physics while the render path runs at base.TPS for the sweep
// duration. Frames are discarded.
func RunScenario(ctx context.Context, base Config, sweep Sweep, sc Scenario, opts BenchOptions) (Result, error) {
	res := Result{Scenario: sc}
	ec, err := sc.Config(base).EngineConfig()
	if err != nil {
		return res, err
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	engOpts := []engine.Option{
		engine.WithLogger(log),
		engine.WithMetricsSink(&res),
	}
	if opts.Memory != nil {
		engOpts = append(engOpts, engine.WithMemoryProbe(opts.Memory))
	}
	for _, sink := range opts.Sinks {
		engOpts = append(engOpts, engine.WithMetricsSink(sink))
	}
	eng, err := engine.New(ec, render.Discard, engOpts...)
	if err != nil {
		return res, err
	}
	res.Run = eng.ID()

	if err := eng.Warmup(sweep.Warmup); err != nil {
		return res, fmt.Errorf("warmup %s: %w", sc, err)
	}
	if err := eng.Start(); err != nil {
		return res, err
	}
	log.Info("scenario started",
		zap.String("scenario", sc.String()),
		zap.String("run", res.Run),
		zap.Duration("duration", sweep.Duration),
	)

	step := core.NewFixedStep(base.TPS)
	deadline := time.Now().Add(sweep.Duration)
	var fault error
loop:
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			break loop
		case fault = <-eng.Faults():
			break loop
		default:
		}
		step.Wait()
		eng.Render()
	}
	res.Stopped = eng.Stop()
	if fault != nil {
		return res, fmt.Errorf("scenario %s: %w", sc, fault)
	}
	return res, ctx.Err()
}

// RunSweep runs every scenario in order and stops at the first error.
func RunSweep(ctx context.Context, base Config, sweep Sweep, opts BenchOptions) ([]Result, error) {
	results := make([]Result, 0, len(sweep.Scenarios))
	for _, sc := range sweep.Scenarios {
		res, err := RunScenario(ctx, base, sweep, sc, opts)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// WriteReport prints results as a table.
func WriteReport(w io.Writer, results []Result) error {
	table := tablewriter.NewWriter(w)
	if err := table.Append([]string{"Scenario", "Physics FPS", "Render FPS", "Score Mcell/s", "Peak MB", "Samples", "Clean stop"}); err != nil {
		return fmt.Errorf("report header: %w", err)
	}
	for _, r := range results {
		row := []string{
			r.Scenario.String(),
			fmt.Sprintf("%.0f", r.PhysicsRate),
			fmt.Sprintf("%.0f", r.RenderRate),
			fmt.Sprintf("%.1f", r.Score),
			fmt.Sprintf("%d", r.PeakMemoryMB),
			fmt.Sprintf("%d", r.Samples),
			fmt.Sprintf("%t", r.Stopped),
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("report row %s: %w", r.Scenario, err)
		}
	}
	return table.Render()
}
