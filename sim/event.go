package sim

import "github.com/sched-sim/sched-sim/sim/trace"

// recordEvent appends a transition to the trace when event tracing is on.
// cpu is -1 for transitions not tied to a unit.
func (sim *Simulator) recordEvent(kind trace.EventKind, pid int, cpu int, detail string) {
	if sim.Trace == nil || !sim.Trace.Config.RecordsEvents() {
		return
	}
	sim.Trace.RecordEvent(trace.EventRecord{
		Tick:   sim.Clock,
		Kind:   kind,
		PID:    pid,
		CPU:    cpu,
		Detail: detail,
	})
}
