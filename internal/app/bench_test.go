package app

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ignis/internal/metrics"
)

func TestResultPublishKeepsMeans(t *testing.T) {
	var r Result
	r.Publish(metrics.Summary{PhysicsRate: 100, RenderRate: 60, Score: 6, MemoryMB: 30})
	r.Publish(metrics.Summary{PhysicsRate: 300, RenderRate: 20, Score: 2, MemoryMB: 10})

	assert.Equal(t, 2, r.Samples)
	assert.InDelta(t, 200, r.PhysicsRate, 1e-9)
	assert.InDelta(t, 40, r.RenderRate, 1e-9)
	assert.InDelta(t, 4, r.Score, 1e-9)
	assert.Equal(t, uint64(30), r.PeakMemoryMB)
}

func benchBase() Config {
	base := *NewConfig()
	base.TPS = 120
	base.StopTimeout = 2 * time.Second
	return base
}

func TestRunScenarioCollectsSamples(t *testing.T) {
	sweep := Sweep{Duration: 1200 * time.Millisecond, Warmup: 3}
	var published int
	opts := BenchOptions{
		Memory: metrics.MemoryProbeFunc(func() uint64 { return 7 }),
		Sinks:  []metrics.Sink{metrics.SinkFunc(func(metrics.Summary) { published++ })},
	}

	res, err := RunScenario(context.Background(), benchBase(), sweep, Scenario{Preset: "low", Mode: "serial"}, opts)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Run)
	assert.True(t, res.Stopped)
	assert.GreaterOrEqual(t, res.Samples, 1)
	assert.Equal(t, res.Samples, published)
	assert.Greater(t, res.PhysicsRate, 0.0)
	assert.Greater(t, res.RenderRate, 0.0)
	assert.Equal(t, uint64(7), res.PeakMemoryMB)
}

func TestRunScenarioHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sweep := Sweep{Duration: time.Minute}

	start := time.Now()
	res, err := RunScenario(ctx, benchBase(), sweep, Scenario{Preset: "low", Mode: "parallel"}, BenchOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, res.Stopped)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestRunSweepStopsOnBadScenario(t *testing.T) {
	sweep := Sweep{
		Duration:  10 * time.Millisecond,
		Scenarios: []Scenario{{Preset: "low", Mode: "serial"}, {Preset: "low", Mode: "warp"}},
	}
	results, err := RunSweep(context.Background(), benchBase(), sweep, BenchOptions{})
	require.Error(t, err)
	assert.Len(t, results, 1)
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	err := WriteReport(&buf, []Result{{
		Scenario:    Scenario{Preset: "low", Mode: "serial"},
		Samples:     4,
		PhysicsRate: 812,
		RenderRate:  60,
		Score:       52,
		Stopped:     true,
	}})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Scenario")
	assert.Contains(t, out, "low/serial/std")
	assert.Contains(t, out, "812")
	assert.Contains(t, out, "52.0")
}
