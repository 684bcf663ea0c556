// Package workload loads process descriptors for the simulator from YAML workload
// specs and from single-process files.
package workload

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sched-sim/sched-sim/sim"
)

// Load reads every path and returns the combined descriptors in path order.
// Files ending in .yaml or .yml are workload specs; anything else is a process file.
// Pids must be unique across all files.
func Load(paths ...string) ([]sim.Process, error) {
	var procs []sim.Process
	for _, path := range paths {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			spec, err := LoadWorkloadSpec(path)
			if err != nil {
				return nil, err
			}
			if err := spec.Validate(); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			loaded := spec.ToProcesses()
			logrus.Debugf("loaded %s: %d processes", path, len(loaded))
			procs = append(procs, loaded...)
		default:
			p, err := LoadProcessFile(path)
			if err != nil {
				return nil, err
			}
			logrus.Debugf("loaded %s: pid %d, %d bursts", path, p.PID, len(p.Bursts))
			procs = append(procs, p)
		}
	}
	if err := checkUniquePIDs(procs); err != nil {
		return nil, err
	}
	return procs, nil
}
