package sim

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sched-sim/sched-sim/sim/trace"
)

// Defaults applied when neither the config file nor a flag sets a value.
const (
	DefaultCPUs    = 1
	DefaultPolicy  = "round-robin"
	DefaultQuantum = 5
)

// RunConfig holds run configuration, loadable from a YAML file.
// Nil pointer fields mean "not set in YAML" and fall back to defaults or flags.
// String fields use empty string for "not set".
type RunConfig struct {
	CPUs    *int     `yaml:"cpus"`
	Policy  string   `yaml:"policy"`
	Quantum *int     `yaml:"quantum"`
	Alpha   *float64 `yaml:"alpha"`
	Horizon *int64   `yaml:"horizon"`
	Trace   string   `yaml:"trace"`
}

// LoadRunConfig reads and parses a YAML run configuration file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	var cfg RunConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	return &cfg, nil
}

// ValidPolicies is the set of recognized scheduling policy names.
// Shared by Validate() and NewPolicy() to avoid duplication.
var ValidPolicies = map[string]bool{"": true, "fcfs": true, "round-robin": true, "sjf": true}

// IsValidPolicy reports whether name is a recognized scheduling policy.
func IsValidPolicy(name string) bool {
	return ValidPolicies[name]
}

// Validate checks that all names and parameter ranges in the config are valid.
func (c *RunConfig) Validate() error {
	if !ValidPolicies[c.Policy] {
		return fmt.Errorf("unknown policy %q; valid: fcfs, round-robin, sjf", c.Policy)
	}
	if !trace.IsValidTraceLevel(c.Trace) {
		return fmt.Errorf("unknown trace level %q; valid: none, ticks, events", c.Trace)
	}
	if c.CPUs != nil && *c.CPUs < 1 {
		return fmt.Errorf("cpus must be at least 1, got %d", *c.CPUs)
	}
	if c.Quantum != nil && *c.Quantum < 1 {
		return fmt.Errorf("quantum must be at least 1, got %d", *c.Quantum)
	}
	if c.Alpha != nil {
		a := *c.Alpha
		if math.IsNaN(a) || a <= 0 || a > 1 {
			return fmt.Errorf("alpha must be in (0, 1], got %f", a)
		}
	}
	if c.Horizon != nil && *c.Horizon < 0 {
		return fmt.Errorf("horizon must be non-negative, got %d", *c.Horizon)
	}
	return nil
}

// NumCPUs returns the configured unit count or the default.
func (c *RunConfig) NumCPUs() int {
	if c.CPUs == nil {
		return DefaultCPUs
	}
	return *c.CPUs
}

// HorizonTicks returns the configured horizon, 0 meaning unbounded.
func (c *RunConfig) HorizonTicks() int64 {
	if c.Horizon == nil {
		return 0
	}
	return *c.Horizon
}

// TraceLevel returns the configured trace level, defaulting to none.
func (c *RunConfig) TraceLevel() trace.TraceLevel {
	if c.Trace == "" {
		return trace.TraceLevelNone
	}
	return trace.TraceLevel(c.Trace)
}

// PolicyConfig resolves the policy selection with defaults filled in.
func (c *RunConfig) PolicyConfig() PolicyConfig {
	pc := PolicyConfig{Name: c.Policy, Quantum: DefaultQuantum, Alpha: DefaultSJFAlpha}
	if pc.Name == "" {
		pc.Name = DefaultPolicy
	}
	if c.Quantum != nil {
		pc.Quantum = *c.Quantum
	}
	if c.Alpha != nil {
		pc.Alpha = *c.Alpha
	}
	return pc
}

// NewSimulatorFromConfig validates cfg and builds a simulator with its policy bound
// and tracing set up. Processes still have to be added by the caller.
func NewSimulatorFromConfig(cfg *RunConfig) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s, err := NewSimulator(cfg.NumCPUs())
	if err != nil {
		return nil, err
	}
	if err := s.Bind(NewPolicy(cfg.PolicyConfig())); err != nil {
		return nil, err
	}
	s.EnableTrace(cfg.TraceLevel())
	return s, nil
}
