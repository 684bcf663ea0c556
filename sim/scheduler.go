package sim

import (
	"fmt"
)

// ActionKind tags the choice a policy makes for one unit.
type ActionKind int

const (
	ActionNoOp    ActionKind = iota // leave the unit as it is
	ActionAdmit                     // move PID from ready onto the idle unit
	ActionPreempt                   // send EvictedPID to the ready tail and run PID instead
)

// Action is a policy's decision for one unit in one tick.
// A positive Slice asks the engine to split the admitted PCB's head burst at that
// offset before assignment.
type Action struct {
	Kind       ActionKind
	PID        int
	EvictedPID int
	Slice      int
}

// NoOp leaves the unit untouched.
func NoOp() Action { return Action{Kind: ActionNoOp} }

// Admit assigns the ready PCB pid to an idle unit.
func Admit(pid int) Action { return Action{Kind: ActionAdmit, PID: pid} }

// Preempt evicts the running PCB evicted and assigns the ready PCB admitted.
func Preempt(evicted, admitted int) Action {
	return Action{Kind: ActionPreempt, PID: admitted, EvictedPID: evicted}
}

// SchedulePolicy decides, once per unit per tick, whether to admit a ready process
// into the unit or to preempt its occupant. Implementations read the simulator's
// queues but MUST NOT modify them; the engine applies the returned Action.
type SchedulePolicy interface {
	Decide(sim *Simulator, cpu int) Action
}

// RunObserver is implemented by policies that keep per-process bookkeeping on the
// PCB. The engine calls ObserveRunning right after applying the policy's action
// whenever the unit ends up occupied.
type RunObserver interface {
	ObserveRunning(pcb *PCB)
}

// FCFSPolicy never acts; the engine's FIFO fallback dispatches the ready head
// to every idle unit.
type FCFSPolicy struct{}

func (f *FCFSPolicy) Decide(_ *Simulator, _ int) Action {
	return NoOp()
}

// RoundRobinPolicy time-slices by splitting a long CPU burst at admission.
// It never evicts a running process: a process admitted with a burst longer than
// Quantum runs the first Quantum ticks and re-enters ready with the remainder
// through the normal burst-completion routing.
type RoundRobinPolicy struct {
	Quantum int
}

func (rr *RoundRobinPolicy) Decide(sim *Simulator, cpu int) Action {
	if sim.Running[cpu] != nil {
		return NoOp()
	}
	head := sim.Ready.Peek()
	if head == nil {
		return NoOp()
	}
	a := Admit(head.PID)
	if head.Head().Duration > rr.Quantum {
		a.Slice = rr.Quantum
	}
	return a
}

// PolicyConfig selects and parameterizes a scheduling policy.
type PolicyConfig struct {
	Name    string  // "fcfs", "round-robin" (default) or "sjf"
	Quantum int     // round-robin time slice in ticks
	Alpha   float64 // sjf smoothing factor in (0, 1]
}

// NewPolicy creates a SchedulePolicy from its configuration.
// Valid names are defined in ValidPolicies (config.go).
// Empty string defaults to round-robin (for CLI flag default compatibility).
// Panics on unrecognized names or out-of-range parameters; call Validate first.
func NewPolicy(cfg PolicyConfig) SchedulePolicy {
	if !IsValidPolicy(cfg.Name) {
		panic(fmt.Sprintf("unknown scheduling policy %q", cfg.Name))
	}
	switch cfg.Name {
	case "fcfs":
		return &FCFSPolicy{}
	case "", "round-robin":
		if cfg.Quantum < 1 {
			panic(fmt.Sprintf("round-robin quantum must be at least 1, got %d", cfg.Quantum))
		}
		return &RoundRobinPolicy{Quantum: cfg.Quantum}
	case "sjf":
		return NewSJFPolicy(cfg.Alpha)
	default:
		panic(fmt.Sprintf("unhandled scheduling policy %q", cfg.Name))
	}
}
