package workload

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sched-sim/sched-sim/sim"
)

// WorkloadSpec is the top-level YAML workload description.
// Loaded from YAML via LoadWorkloadSpec(path).
type WorkloadSpec struct {
	Version   string        `yaml:"version"`
	Processes []ProcessSpec `yaml:"processes"`
}

// ProcessSpec describes a single process.
type ProcessSpec struct {
	PID     int         `yaml:"pid"`
	Arrival int64       `yaml:"arrival"`
	Bursts  []BurstSpec `yaml:"bursts"`
}

// BurstSpec describes one burst; Kind is "cpu" or "io".
type BurstSpec struct {
	Kind     string `yaml:"kind"`
	Duration int    `yaml:"duration"`
}

// validVersions is the set of accepted spec versions; empty means the current one.
var validVersions = map[string]bool{"": true, "1": true}

// LoadWorkloadSpec reads and parses a YAML workload specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadWorkloadSpec(path string) (*WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	return &spec, nil
}

// Validate checks that all fields in the spec are valid.
func (s *WorkloadSpec) Validate() error {
	if !validVersions[s.Version] {
		return fmt.Errorf("unknown workload version %q; valid: 1", s.Version)
	}
	if len(s.Processes) == 0 {
		return fmt.Errorf("at least one process required")
	}
	for i, p := range s.Processes {
		for j, b := range p.Bursts {
			if !sim.IsValidBurstKind(b.Kind) {
				return fmt.Errorf("process[%d].bursts[%d]: unknown kind %q; valid: cpu, io", i, j, b.Kind)
			}
		}
		if err := p.toProcess().Validate(); err != nil {
			return fmt.Errorf("process[%d]: %w", i, err)
		}
	}
	return checkUniquePIDs(s.ToProcesses())
}

// ToProcesses converts the spec into engine descriptors, in spec order.
func (s *WorkloadSpec) ToProcesses() []sim.Process {
	out := make([]sim.Process, len(s.Processes))
	for i, p := range s.Processes {
		out[i] = p.toProcess()
	}
	return out
}

func (p ProcessSpec) toProcess() sim.Process {
	bursts := make([]sim.Burst, len(p.Bursts))
	for i, b := range p.Bursts {
		bursts[i] = sim.Burst{Kind: sim.BurstKind(b.Kind), Duration: b.Duration}
	}
	return sim.Process{PID: p.PID, ArrivalTick: p.Arrival, Bursts: bursts}
}

func checkUniquePIDs(procs []sim.Process) error {
	seen := make(map[int]bool, len(procs))
	for _, p := range procs {
		if seen[p.PID] {
			return fmt.Errorf("pid %d: %w", p.PID, sim.ErrDuplicatePID)
		}
		seen[p.PID] = true
	}
	return nil
}
