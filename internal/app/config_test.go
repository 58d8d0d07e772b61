package app

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"ignis/internal/core"
	"ignis/internal/engine"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigResolvesToHDParallel(t *testing.T) {
	ec, err := NewConfig().EngineConfig()
	require.NoError(t, err)
	assert.Equal(t, 1280, ec.Width)
	assert.Equal(t, 720, ec.Height)
	assert.Equal(t, core.PolicyParallel, ec.Policy)
	assert.False(t, ec.Ultra)
}

func TestExplicitSizeOverridesPreset(t *testing.T) {
	c := NewConfig()
	c.Preset = "8k"
	c.Width, c.Height = 100, 50
	size, err := c.Size()
	require.NoError(t, err)
	assert.Equal(t, core.Size{W: 100, H: 50}, size)
}

func TestEngineConfigRejectsBadInput(t *testing.T) {
	c := NewConfig()
	c.Preset = "16k"
	_, err := c.EngineConfig()
	assert.ErrorIs(t, err, ErrUnknownPreset)

	c = NewConfig()
	c.Mode = "quantum"
	_, err = c.EngineConfig()
	assert.ErrorIs(t, err, core.ErrUnknownPolicy)

	c = NewConfig()
	c.Width = 320
	_, err = c.EngineConfig()
	assert.ErrorIs(t, err, engine.ErrInvalidSize, "height left at zero")
}

func TestParseFlagsWinOverFile(t *testing.T) {
	path := writeFile(t, "ignis.yaml", `
preset: 4k
mode: serial
ultra: true
workers: 6
stop_timeout: 250ms
`)
	c := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	require.NoError(t, c.Parse(fs, []string{"-config", path, "-mode", "stress"}))

	assert.Equal(t, "4k", c.Preset)
	assert.Equal(t, "stress", c.Mode)
	assert.True(t, c.Ultra)
	assert.Equal(t, 6, c.Workers)
	assert.Equal(t, 250*time.Millisecond, c.StopTimeout)

	ec, err := c.EngineConfig()
	require.NoError(t, err)
	assert.Equal(t, core.PolicyExternalStress, ec.Policy)
	assert.Equal(t, 3840, ec.Width)
	assert.Equal(t, 250*time.Millisecond, ec.StopTimeout)
}

func TestLoadFileErrors(t *testing.T) {
	c := NewConfig()
	assert.Error(t, c.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, c.LoadFile(writeFile(t, "bad.yaml", "width: [1, 2")))
}

func TestNextPresetCycles(t *testing.T) {
	c := NewConfig()
	c.Preset = "low"
	var seen []string
	for range Presets {
		next := c.NextPreset()
		seen = append(seen, next.Name)
		c.Preset = next.Name
	}
	assert.Equal(t, []string{"hd", "4k", "8k", "low"}, seen)
}

func TestLookupPresetIsCaseInsensitive(t *testing.T) {
	p, err := LookupPreset("HD")
	require.NoError(t, err)
	assert.Equal(t, core.Size{W: 1280, H: 720}, p.Size)
}

func TestLoadSweep(t *testing.T) {
	path := writeFile(t, "sweep.yaml", `
duration: 2s
scenarios:
  - preset: low
    mode: serial
  - preset: hd
    mode: parallel
    ultra: true
`)
	s, err := LoadSweep(path)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, s.Duration)
	assert.Equal(t, DefaultSweep().Warmup, s.Warmup)
	require.Len(t, s.Scenarios, 2)
	assert.Equal(t, "hd/parallel/ultra", s.Scenarios[1].String())

	cfg := s.Scenarios[1].Config(*NewConfig())
	ec, err := cfg.EngineConfig()
	require.NoError(t, err)
	assert.True(t, ec.Ultra)
	assert.Equal(t, 1280, ec.Width)
}

func TestLoadSweepRejectsUnknownPreset(t *testing.T) {
	path := writeFile(t, "sweep.yaml", "scenarios:\n  - preset: huge\n    mode: serial\n")
	_, err := LoadSweep(path)
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestDefaultSweepCoversPresets(t *testing.T) {
	s := DefaultSweep()
	assert.Len(t, s.Scenarios, len(Presets)*2)
}

func TestLoggerFromConfig(t *testing.T) {
	c := NewConfig()
	c.LogLevel = "warn"
	log, err := c.Logger()
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}
