// Package trace provides per-tick state and transition recording for scheduler runs.
// This package has no dependencies on sim/; it stores pure data types.
package trace

import "github.com/markphelps/optional"

// EventKind names a single state transition observed during a tick.
type EventKind string

const (
	EventArrival   EventKind = "arrival"    // descriptor became a PCB
	EventBurstEnd  EventKind = "burst-end"  // head burst reached zero
	EventToReady   EventKind = "to-ready"   // PCB routed to the ready tail
	EventToWaiting EventKind = "to-waiting" // PCB routed to the waiting tail
	EventTerminate EventKind = "terminate"  // last burst consumed, PCB destroyed
	EventDispatch  EventKind = "dispatch"   // PCB assigned to an idle unit
	EventPreempt   EventKind = "preempt"    // occupant evicted back to ready
	EventSplit     EventKind = "split"      // head burst split at admission
)

// EventRecord captures one transition. CPU is -1 when the transition is not tied to a unit.
type EventRecord struct {
	Tick   int64
	Kind   EventKind
	PID    int
	CPU    int
	Detail string
}

// TickRecord captures the queue contents at the end of one tick.
// Running holds one entry per unit; an empty optional marks an idle unit.
type TickRecord struct {
	Tick    int64
	Pending []int
	Ready   []int
	Waiting []int
	Running []optional.Int
}

// Idle reports whether nothing is pending, queued or running.
func (r TickRecord) Idle() bool {
	if len(r.Pending) > 0 || len(r.Ready) > 0 || len(r.Waiting) > 0 {
		return false
	}
	for _, slot := range r.Running {
		if slot.Present() {
			return false
		}
	}
	return true
}
