package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ignis/internal/core"
	"ignis/internal/metrics"
)

func TestSpeedColorThreshold(t *testing.T) {
	assert.Equal(t, SlowColor, SpeedColor(0))
	assert.Equal(t, SlowColor, SpeedColor(FastPhysicsFPS))
	assert.Equal(t, FastColor, SpeedColor(FastPhysicsFPS+0.5))
	assert.Equal(t, FastColor, SpeedColor(5000))
}

func TestStatsLines(t *testing.T) {
	s := metrics.Summarize(50, 30, metrics.DefaultInterval, core.Size{W: 320, H: 200})
	s.MemoryMB = 42
	s.Mode = "Std"
	s.Policy = "parallel"

	lines := StatsLines(s)
	assert.Equal(t, []string{
		"Physics: 100 FPS",
		"Render:  60 FPS",
		"Memory:  42 MB",
		"Mode:    Std parallel",
		"Grid:    320x200",
		"Score:   6.4 Mcell/s",
	}, lines)
	assert.Equal(t, "phys 100 fps | render 60 fps | 42 MB | 320x200 Std parallel | 6.4 Mcell/s", StatusLine(s))
}
