package sim

import (
	"fmt"
	"math"
)

// DefaultSJFAlpha weights the latest observation and the previous estimate equally.
const DefaultSJFAlpha = 0.5

// SJFPolicy is a preemptive shortest-job-first policy driven by a per-process
// exponential average:
//
//	prediction' = Alpha*observed + (1-Alpha)*prediction
//
// The estimate lives on the PCB, so every unit compares the same values when
// several units share one ready queue. It is refreshed only while the process
// runs, with observed = QuantumUsed after the increment for the current tick.
type SJFPolicy struct {
	Alpha float64
}

// NewSJFPolicy creates an SJFPolicy. Panics if alpha is outside (0, 1].
func NewSJFPolicy(alpha float64) *SJFPolicy {
	if math.IsNaN(alpha) || alpha <= 0 || alpha > 1 {
		panic(fmt.Sprintf("sjf alpha must be in (0, 1], got %f", alpha))
	}
	return &SJFPolicy{Alpha: alpha}
}

// Decide admits the ready PCB with the lowest prediction into an idle unit, or
// preempts the occupant when its prediction is strictly larger than that minimum.
// Ties go to the PCB closest to the ready head.
func (s *SJFPolicy) Decide(sim *Simulator, cpu int) Action {
	shortest := s.shortest(sim.Ready)
	if shortest == nil {
		return NoOp()
	}
	running := sim.Running[cpu]
	if running == nil {
		return Admit(shortest.PID)
	}
	if running.Prediction > shortest.Prediction {
		return Preempt(running.PID, shortest.PID)
	}
	return NoOp()
}

// ObserveRunning charges the current tick to the occupant and folds it into its
// prediction for the next scan.
func (s *SJFPolicy) ObserveRunning(pcb *PCB) {
	pcb.QuantumUsed++
	pcb.Prediction = s.Predict(pcb.Prediction, float64(pcb.QuantumUsed))
}

// Predict applies one step of the exponential average.
func (s *SJFPolicy) Predict(previous, observed float64) float64 {
	return s.Alpha*observed + (1-s.Alpha)*previous
}

// shortest scans the whole ready queue in order and returns the first PCB with the
// minimum prediction, or nil for an empty queue.
func (s *SJFPolicy) shortest(ready *ProcessQueue) *PCB {
	var best *PCB
	for _, p := range ready.Items() {
		if best == nil || p.Prediction < best.Prediction {
			best = p
		}
	}
	return best
}
