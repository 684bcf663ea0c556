// Defines the workload model consumed by the simulator: bursts and process descriptors.
// A descriptor is immutable input; the engine copies its bursts into a PCB on arrival.

package sim

import (
	"fmt"
	"strings"
)

// BurstKind distinguishes CPU work from I/O waits.
type BurstKind string

const (
	BurstCPU BurstKind = "cpu"
	BurstIO  BurstKind = "io"
)

// validBurstKinds is the set of recognized burst kinds.
var validBurstKinds = map[BurstKind]bool{BurstCPU: true, BurstIO: true}

// IsValidBurstKind reports whether kind names a known burst kind.
func IsValidBurstKind(kind string) bool {
	return validBurstKinds[BurstKind(kind)]
}

// Burst is a contiguous span of CPU or I/O work.
// Duration is the remaining number of ticks; the engine decrements it by one per tick
// while the burst is at the head of its process.
type Burst struct {
	Kind     BurstKind
	Duration int
}

func (b Burst) String() string {
	return fmt.Sprintf("%s(%d)", strings.ToUpper(string(b.Kind)), b.Duration)
}

// Process describes one workload process as supplied by a workload source.
type Process struct {
	PID         int     // Unique process identifier
	ArrivalTick int64   // Tick at which the process is admitted
	Bursts      []Burst // Ordered, non-empty sequence of bursts
}

// TotalDuration returns the sum of all burst durations.
func (p Process) TotalDuration() int {
	total := 0
	for _, b := range p.Bursts {
		total += b.Duration
	}
	return total
}

// Validate checks the data contract of a descriptor: non-empty bursts,
// known kinds, positive durations and a non-negative arrival tick.
func (p Process) Validate() error {
	if len(p.Bursts) == 0 {
		return fmt.Errorf("pid %d: %w", p.PID, ErrEmptyBursts)
	}
	if p.ArrivalTick < 0 {
		return fmt.Errorf("pid %d: arrival tick %d: %w", p.PID, p.ArrivalTick, ErrArrivalInPast)
	}
	for i, b := range p.Bursts {
		if !validBurstKinds[b.Kind] {
			return fmt.Errorf("pid %d: burst[%d] kind %q: %w", p.PID, i, b.Kind, ErrInvalidBurstKind)
		}
		if b.Duration <= 0 {
			return fmt.Errorf("pid %d: burst[%d] duration %d: %w", p.PID, i, b.Duration, ErrNonPositiveDuration)
		}
	}
	return nil
}
