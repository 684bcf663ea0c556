package sim

import (
	"fmt"
	"strings"
)

// PCB is the engine's runtime record for one live process.
// It exists from arrival until its burst sequence becomes empty, and is held by
// exactly one of the ready queue, the waiting queue or a running slot at a time.
type PCB struct {
	PID    int
	Bursts []Burst // remaining bursts, head first; never empty while the PCB is live

	// QuantumUsed counts ticks observed running since the last I/O burst.
	// Reset by the engine when the process blocks on I/O.
	QuantumUsed int
	// Prediction is the exponentially smoothed estimate of the next CPU burst,
	// maintained by prediction-based policies.
	Prediction float64
}

// newPCB builds a PCB from a descriptor. The bursts are copied so the
// descriptor stays untouched by the engine's decrements.
func newPCB(p Process) *PCB {
	bursts := make([]Burst, len(p.Bursts))
	copy(bursts, p.Bursts)
	return &PCB{PID: p.PID, Bursts: bursts}
}

// Head returns the current burst. Panics if the PCB has no bursts left,
// since a live PCB always holds at least one.
func (p *PCB) Head() *Burst {
	if len(p.Bursts) == 0 {
		panic(fmt.Sprintf("pcb %d: live PCB with no bursts", p.PID))
	}
	return &p.Bursts[0]
}

// popHead discards the current burst and reports whether any bursts remain.
func (p *PCB) popHead() bool {
	p.Bursts = p.Bursts[1:]
	return len(p.Bursts) > 0
}

// SplitHead splits the current burst at offset: a new burst of the same kind with
// duration offset is placed ahead of the remainder. Returns false (and leaves the
// sequence unchanged) when the head is not longer than offset or offset is not positive.
func (p *PCB) SplitHead(offset int) bool {
	head := p.Head()
	if offset <= 0 || head.Duration <= offset {
		return false
	}
	first := Burst{Kind: head.Kind, Duration: offset}
	head.Duration -= offset
	p.Bursts = append([]Burst{first}, p.Bursts...)
	return true
}

// RemainingCPU returns the total CPU ticks left across all remaining bursts.
func (p *PCB) RemainingCPU() int {
	total := 0
	for _, b := range p.Bursts {
		if b.Kind == BurstCPU {
			total += b.Duration
		}
	}
	return total
}

func (p *PCB) String() string {
	parts := make([]string, len(p.Bursts))
	for i, b := range p.Bursts {
		parts[i] = b.String()
	}
	return fmt.Sprintf("pid=%d [%s]", p.PID, strings.Join(parts, " "))
}
