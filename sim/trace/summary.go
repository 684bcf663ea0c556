package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalTicks    int
	EventCounts   map[EventKind]int
	BusyTicks     []int // per unit: ticks that ended with the unit occupied
	MaxReadyDepth int
	MaxWaitDepth  int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		EventCounts: make(map[EventKind]int),
	}
	if st == nil {
		return summary
	}

	for _, e := range st.Events {
		summary.EventCounts[e.Kind]++
	}

	summary.TotalTicks = len(st.Ticks)
	for _, r := range st.Ticks {
		if len(summary.BusyTicks) < len(r.Running) {
			grown := make([]int, len(r.Running))
			copy(grown, summary.BusyTicks)
			summary.BusyTicks = grown
		}
		for i, slot := range r.Running {
			if slot.Present() {
				summary.BusyTicks[i]++
			}
		}
		summary.MaxReadyDepth = max(summary.MaxReadyDepth, len(r.Ready))
		summary.MaxWaitDepth = max(summary.MaxWaitDepth, len(r.Waiting))
	}

	return summary
}
