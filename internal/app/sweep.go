package app

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Scenario is one benchmark configuration in a sweep.
type Scenario struct {
	Preset string `yaml:"preset"`
	Mode   string `yaml:"mode"`
	Ultra  bool   `yaml:"ultra"`
}

func (s Scenario) String() string {
	mode := "std"
	if s.Ultra {
		mode = "ultra"
	}
	return fmt.Sprintf("%s/%s/%s", s.Preset, s.Mode, mode)
}

// Sweep describes a headless benchmark run over several scenarios.
type Sweep struct {
	Duration  time.Duration `yaml:"duration"`
	Warmup    int           `yaml:"warmup"`
	Scenarios []Scenario    `yaml:"scenarios"`
}

// DefaultSweep covers every preset under both policies in standard quality.
func DefaultSweep() Sweep {
	s := Sweep{Duration: 3 * time.Second, Warmup: 10}
	for _, p := range Presets {
		for _, mode := range []string{"serial", "parallel"} {
			s.Scenarios = append(s.Scenarios, Scenario{Preset: p.Name, Mode: mode})
		}
	}
	return s
}

// LoadSweep reads a sweep definition. Missing fields fall back to DefaultSweep.
func LoadSweep(path string) (Sweep, error) {
	s := DefaultSweep()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read sweep: %w", err)
	}
	var file Sweep
	if err := yaml.Unmarshal(data, &file); err != nil {
		return s, fmt.Errorf("parse sweep %s: %w", path, err)
	}
	if file.Duration > 0 {
		s.Duration = file.Duration
	}
	if file.Warmup > 0 {
		s.Warmup = file.Warmup
	}
	if len(file.Scenarios) > 0 {
		s.Scenarios = file.Scenarios
	}
	for i, sc := range s.Scenarios {
		if _, err := LookupPreset(sc.Preset); err != nil {
			return s, fmt.Errorf("scenario %d: %w", i, err)
		}
	}
	return s, nil
}

// Config derives a host configuration for one scenario from base.
func (s Scenario) Config(base Config) *Config {
	c := base
	c.Preset = s.Preset
	c.Width, c.Height = 0, 0
	c.Mode = s.Mode
	c.Ultra = s.Ultra
	return &c
}
