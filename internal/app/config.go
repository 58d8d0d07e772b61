package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"ignis/internal/core"
	"ignis/internal/engine"
	"ignis/internal/logging"
)

// ErrUnknownPreset is returned for resolution names outside Presets.
var ErrUnknownPreset = errors.New("unknown resolution preset")

// Preset is a named benchmark resolution.
type Preset struct {
	Name  string
	Label string
	Size  core.Size
}

// Presets lists the selectable resolutions from smallest to largest.
var Presets = []Preset{
	{Name: "low", Label: "Low (320x200)", Size: core.Size{W: 320, H: 200}},
	{Name: "hd", Label: "HD (1280x720)", Size: core.Size{W: 1280, H: 720}},
	{Name: "4k", Label: "4K (3840x2160)", Size: core.Size{W: 3840, H: 2160}},
	{Name: "8k", Label: "8K (7680x4320)", Size: core.Size{W: 7680, H: 4320}},
}

// LookupPreset finds a preset by name, case-insensitively.
func LookupPreset(name string) (Preset, error) {
	for _, p := range Presets {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	names := make([]string, len(Presets))
	for i, p := range Presets {
		names[i] = p.Name
	}
	sort.Strings(names)
	return Preset{}, fmt.Errorf("%w %q (want one of %s)", ErrUnknownPreset, name, strings.Join(names, ", "))
}

// Config represents the command-line and file parameters shared by all hosts.
type Config struct {
	Preset  string `yaml:"preset"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Mode    string `yaml:"mode"`
	Ultra   bool   `yaml:"ultra"`
	Workers int    `yaml:"workers"`
	// TPS is the host render cadence for hosts that pace themselves.
	TPS         int           `yaml:"tps"`
	StopTimeout time.Duration `yaml:"stop_timeout"`
	LogLevel    string        `yaml:"log_level"`
	LogJSON     bool          `yaml:"log_json"`

	File string `yaml:"-"`
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Preset:      "hd",
		Mode:        "parallel",
		TPS:         60,
		StopTimeout: time.Second,
		LogLevel:    "info",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.File, "config", c.File, "YAML file with default settings")
	fs.StringVar(&c.Preset, "preset", c.Preset, "resolution preset: low, hd, 4k, 8k")
	fs.IntVar(&c.Width, "w", c.Width, "grid width (overrides preset)")
	fs.IntVar(&c.Height, "h", c.Height, "grid height (overrides preset)")
	fs.StringVar(&c.Mode, "mode", c.Mode, "physics policy: serial, parallel, stress")
	fs.BoolVar(&c.Ultra, "ultra", c.Ultra, "simulate and render smoke")
	fs.IntVar(&c.Workers, "workers", c.Workers, "physics workers for parallel policies (0 = GOMAXPROCS)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "render invocations per second for self-paced hosts")
	fs.DurationVar(&c.StopTimeout, "stop-timeout", c.StopTimeout, "how long to wait for physics to stop")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.BoolVar(&c.LogJSON, "log-json", c.LogJSON, "emit JSON log lines")
}

// LoadFile overlays values from a YAML file onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Parse binds c to fs and parses args. When -config names a file, the file is
// applied first and args are parsed again so explicit flags win.
func (c *Config) Parse(fs *flag.FlagSet, args []string) error {
	c.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if c.File == "" {
		return nil
	}
	if err := c.LoadFile(c.File); err != nil {
		return err
	}
	return fs.Parse(args)
}

// Size resolves the grid size: explicit width and height win over the preset.
func (c *Config) Size() (core.Size, error) {
	if c.Width != 0 || c.Height != 0 {
		return core.Size{W: c.Width, H: c.Height}, nil
	}
	p, err := LookupPreset(c.Preset)
	if err != nil {
		return core.Size{}, err
	}
	return p.Size, nil
}

// EngineConfig converts c into an engine configuration.
func (c *Config) EngineConfig() (engine.Config, error) {
	size, err := c.Size()
	if err != nil {
		return engine.Config{}, err
	}
	policy, err := core.ParsePolicy(c.Mode)
	if err != nil {
		return engine.Config{}, err
	}
	ec := engine.DefaultConfig()
	ec.Width, ec.Height = size.W, size.H
	ec.Policy = policy
	ec.Ultra = c.Ultra
	ec.Workers = c.Workers
	if c.StopTimeout > 0 {
		ec.StopTimeout = c.StopTimeout
	}
	return ec, ec.Validate()
}

// NextPreset returns the preset after the current one, wrapping around.
func (c *Config) NextPreset() Preset {
	idx := 0
	for i, p := range Presets {
		if strings.EqualFold(p.Name, c.Preset) {
			idx = (i + 1) % len(Presets)
			break
		}
	}
	return Presets[idx]
}

// Logger builds the host logger from the log settings.
func (c *Config) Logger() (*zap.Logger, error) {
	return logging.New(logging.Config{Level: c.LogLevel, JSON: c.LogJSON})
}
