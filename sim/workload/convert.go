package workload

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/sched-sim/sched-sim/sim"
)

// CurrentVersion is written by FromProcesses.
const CurrentVersion = "1"

// FromProcesses builds a workload spec holding procs in order.
// The result is validated, so a spec that fails here could not be loaded back.
func FromProcesses(procs []sim.Process) (*WorkloadSpec, error) {
	spec := &WorkloadSpec{Version: CurrentVersion, Processes: make([]ProcessSpec, len(procs))}
	for i, p := range procs {
		ps := ProcessSpec{PID: p.PID, Arrival: p.ArrivalTick, Bursts: make([]BurstSpec, len(p.Bursts))}
		for j, b := range p.Bursts {
			ps.Bursts[j] = BurstSpec{Kind: string(b.Kind), Duration: b.Duration}
		}
		spec.Processes[i] = ps
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("converted workload: %w", err)
	}
	return spec, nil
}

// WriteSpec marshals spec to YAML and writes it to w.
func WriteSpec(w io.Writer, spec *WorkloadSpec) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(spec); err != nil {
		return fmt.Errorf("YAML marshal failed: %w", err)
	}
	return enc.Close()
}
