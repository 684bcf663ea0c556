package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sched-sim/sched-sim/sim/internal/testutil"
	"github.com/sched-sim/sched-sim/sim/trace"
)

func intPtr(v int) *int             { return &v }
func int64Ptr(v int64) *int64       { return &v }
func float64Ptr(v float64) *float64 { return &v }

func TestLoadRunConfig_AllFields(t *testing.T) {
	path := testutil.WriteTempFile(t, "run.yaml", `
cpus: 2
policy: sjf
quantum: 4
alpha: 0.3
horizon: 500
trace: events
`)
	cfg, err := LoadRunConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 2, *cfg.CPUs)
	assert.Equal(t, "sjf", cfg.Policy)
	assert.Equal(t, 4, *cfg.Quantum)
	assert.Equal(t, 0.3, *cfg.Alpha)
	assert.Equal(t, int64(500), *cfg.Horizon)
	assert.Equal(t, "events", cfg.Trace)
}

func TestLoadRunConfig_UnknownKey_Rejected(t *testing.T) {
	path := testutil.WriteTempFile(t, "run.yaml", "cpus: 1\nquantumm: 3\n")
	_, err := LoadRunConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantumm")
}

func TestLoadRunConfig_MissingFile(t *testing.T) {
	_, err := LoadRunConfig("/nonexistent/run.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading run config")
}

func TestRunConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RunConfig
		wantErr string
	}{
		{"empty config", RunConfig{}, ""},
		{"all set", RunConfig{CPUs: intPtr(3), Policy: "fcfs", Quantum: intPtr(1), Alpha: float64Ptr(1), Horizon: int64Ptr(0), Trace: "ticks"}, ""},
		{"unknown policy", RunConfig{Policy: "lottery"}, "unknown policy"},
		{"unknown trace", RunConfig{Trace: "verbose"}, "unknown trace level"},
		{"zero cpus", RunConfig{CPUs: intPtr(0)}, "cpus must be at least 1"},
		{"zero quantum", RunConfig{Quantum: intPtr(0)}, "quantum must be at least 1"},
		{"zero alpha", RunConfig{Alpha: float64Ptr(0)}, "alpha must be in (0, 1]"},
		{"alpha above one", RunConfig{Alpha: float64Ptr(1.01)}, "alpha must be in (0, 1]"},
		{"negative horizon", RunConfig{Horizon: int64Ptr(-1)}, "horizon must be non-negative"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestRunConfig_Defaults(t *testing.T) {
	cfg := &RunConfig{}

	assert.Equal(t, DefaultCPUs, cfg.NumCPUs())
	assert.Equal(t, int64(0), cfg.HorizonTicks())
	assert.Equal(t, trace.TraceLevelNone, cfg.TraceLevel())
	assert.Equal(t, PolicyConfig{Name: DefaultPolicy, Quantum: DefaultQuantum, Alpha: DefaultSJFAlpha}, cfg.PolicyConfig())
}

func TestRunConfig_PolicyConfig_Overrides(t *testing.T) {
	cfg := &RunConfig{Policy: "sjf", Quantum: intPtr(9), Alpha: float64Ptr(0.75)}
	assert.Equal(t, PolicyConfig{Name: "sjf", Quantum: 9, Alpha: 0.75}, cfg.PolicyConfig())
}

func TestNewSimulatorFromConfig(t *testing.T) {
	// GIVEN a config selecting two units, fcfs and event tracing
	cfg := &RunConfig{CPUs: intPtr(2), Policy: "fcfs", Trace: "events"}

	// WHEN the simulator is built
	s, err := NewSimulatorFromConfig(cfg)
	require.NoError(t, err)

	// THEN units, policy and trace follow the config
	assert.Equal(t, 2, s.NumCPUs)
	assert.IsType(t, &FCFSPolicy{}, s.Policy())
	require.NotNil(t, s.Trace)
	assert.True(t, s.Trace.Config.RecordsEvents())
}

func TestNewSimulatorFromConfig_InvalidConfig_NoSimulator(t *testing.T) {
	s, err := NewSimulatorFromConfig(&RunConfig{Policy: "lottery"})
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestNewSimulatorFromConfig_DefaultsToRoundRobinWithoutTrace(t *testing.T) {
	s, err := NewSimulatorFromConfig(&RunConfig{})
	require.NoError(t, err)

	rr, ok := s.Policy().(*RoundRobinPolicy)
	require.True(t, ok)
	assert.Equal(t, DefaultQuantum, rr.Quantum)
	assert.Nil(t, s.Trace)
	assert.False(t, errors.Is(s.Step(), ErrNoPolicy))
}
