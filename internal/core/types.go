package core

import (
	"errors"
	"fmt"
	"strings"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Cells returns W*H.
func (s Size) Cells() int { return s.W * s.H }

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool { return s.W > 0 && s.H > 0 }

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.W, s.H) }

// Policy selects how the physics scheduler drives the column kernel.
type Policy int

const (
	// PolicySerial sweeps every column on one goroutine.
	PolicySerial Policy = iota
	// PolicyParallel partitions columns across a fixed worker pool.
	PolicyParallel
	// PolicyExternalStress runs physics like PolicyParallel. The host layers its
	// own post-processing on rendered frames; the engine does not look further.
	PolicyExternalStress
)

// ErrUnknownPolicy is returned by ParsePolicy for unrecognised names.
var ErrUnknownPolicy = errors.New("unknown policy")

var policyNames = map[Policy]string{
	PolicySerial:         "serial",
	PolicyParallel:       "parallel",
	PolicyExternalStress: "stress",
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// Parallel reports whether physics fans out across a worker pool.
func (p Policy) Parallel() bool { return p != PolicySerial }

// ParsePolicy resolves a policy name. Matching is case-insensitive and also
// accepts the historical mode names "single", "multi" and "gpu".
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "serial", "single", "cpu-single":
		return PolicySerial, nil
	case "parallel", "multi", "cpu-multi":
		return PolicyParallel, nil
	case "stress", "gpu", "gpu-stress":
		return PolicyExternalStress, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownPolicy, name)
}

// ModeLabel names the quality mode shown in metric summaries.
func ModeLabel(ultra bool) string {
	if ultra {
		return "ULTRA"
	}
	return "Std"
}
