package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePolicy(t *testing.T) {
	tests := map[string]Policy{
		"serial":     PolicySerial,
		"Single":     PolicySerial,
		"cpu-single": PolicySerial,
		"parallel":   PolicyParallel,
		" multi ":    PolicyParallel,
		"cpu-multi":  PolicyParallel,
		"stress":     PolicyExternalStress,
		"GPU":        PolicyExternalStress,
		"gpu-stress": PolicyExternalStress,
	}
	for name, want := range tests {
		got, err := ParsePolicy(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParsePolicy("turbo")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestPolicyStringRoundTrips(t *testing.T) {
	for _, p := range []Policy{PolicySerial, PolicyParallel, PolicyExternalStress} {
		got, err := ParsePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	assert.Equal(t, "policy(9)", Policy(9).String())
	assert.False(t, PolicySerial.Parallel())
	assert.True(t, PolicyParallel.Parallel())
	assert.True(t, PolicyExternalStress.Parallel())
}

func TestSize(t *testing.T) {
	s := Size{W: 320, H: 200}
	assert.True(t, s.Valid())
	assert.Equal(t, 64000, s.Cells())
	assert.Equal(t, "320x200", s.String())
	assert.False(t, Size{W: 0, H: 5}.Valid())
	assert.False(t, Size{W: 5, H: -1}.Valid())
}

func TestModeLabel(t *testing.T) {
	assert.Equal(t, "ULTRA", ModeLabel(true))
	assert.Equal(t, "Std", ModeLabel(false))
}

func TestParameterLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "A", Params: []Parameter{{Key: "w", Value: "320"}}},
		{Name: "B", Params: []Parameter{{Key: "policy", Value: "serial"}}},
	}}
	p, ok := snap.Lookup("policy")
	require.True(t, ok)
	assert.Equal(t, "serial", p.Value)
	_, ok = snap.Lookup("missing")
	assert.False(t, ok)
}
