package trace

import (
	"fmt"
	"io"
	"strings"

	"github.com/markphelps/optional"
)

// Render writes a plain-text trace: for every recorded tick, the transitions of that
// tick (when recorded) followed by the queue contents at its end. Output depends only
// on the trace contents, so identical runs render byte-identical text.
func Render(w io.Writer, st *SimulationTrace) error {
	if st == nil {
		return nil
	}
	ev := 0
	for _, r := range st.Ticks {
		if _, err := fmt.Fprintf(w, "=== tick %08d ===\n", r.Tick); err != nil {
			return err
		}
		for ; ev < len(st.Events) && st.Events[ev].Tick <= r.Tick; ev++ {
			if _, err := fmt.Fprintf(w, "  %s\n", formatEvent(st.Events[ev])); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "  pending=%v ready=%v waiting=%v running=%s\n",
			r.Pending, r.Ready, r.Waiting, formatSlots(r.Running)); err != nil {
			return err
		}
	}
	// events recorded without tick snapshots
	for ; ev < len(st.Events); ev++ {
		if _, err := fmt.Fprintf(w, "[%08d] %s\n", st.Events[ev].Tick, formatEvent(st.Events[ev])); err != nil {
			return err
		}
	}
	return nil
}

func formatEvent(e EventRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-10s pid=%d", e.Kind, e.PID)
	if e.CPU >= 0 {
		fmt.Fprintf(&sb, " cpu=%d", e.CPU)
	}
	if e.Detail != "" {
		fmt.Fprintf(&sb, " %s", e.Detail)
	}
	return sb.String()
}

func formatSlots(slots []optional.Int) string {
	parts := make([]string, len(slots))
	for i, slot := range slots {
		parts[i] = "-"
		slot.If(func(pid int) {
			parts[i] = fmt.Sprint(pid)
		})
	}
	return "[" + strings.Join(parts, " ") + "]"
}
