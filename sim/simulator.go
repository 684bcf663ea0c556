// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/markphelps/optional"
	"github.com/sirupsen/logrus"

	"github.com/sched-sim/sched-sim/sim/trace"
)

// Simulator is the core object that holds simulation time, the process queues
// and the running slots, and advances them one tick at a time.
type Simulator struct {
	Clock   int64
	NumCPUs int
	// Pending holds descriptors that have not arrived yet, in insertion order.
	Pending []Process
	// Ready holds runnable PCBs waiting for a unit.
	Ready *ProcessQueue
	// Waiting holds PCBs blocked on an I/O burst.
	Waiting *ProcessQueue
	// Running has one slot per unit; nil means the unit is idle.
	Running []*PCB
	Metrics *Metrics
	// Trace is nil unless EnableTrace was called.
	Trace *trace.SimulationTrace

	policy    SchedulePolicy
	destroyed bool
}

// NewSimulator creates an engine with numCPUs idle units, empty queues and the
// clock at tick 0. A policy must be bound before stepping.
func NewSimulator(numCPUs int) (*Simulator, error) {
	if numCPUs < 1 {
		return nil, fmt.Errorf("%d cpus: %w", numCPUs, ErrInvalidCPUCount)
	}
	return &Simulator{
		Clock:   0,
		NumCPUs: numCPUs,
		Pending: make([]Process, 0),
		Ready:   &ProcessQueue{},
		Waiting: &ProcessQueue{},
		Running: make([]*PCB, numCPUs),
		Metrics: NewMetrics(numCPUs),
	}, nil
}

// Bind attaches the scheduling policy for the run. Exactly one policy may be bound.
func (sim *Simulator) Bind(policy SchedulePolicy) error {
	if policy == nil {
		return ErrNoPolicy
	}
	if sim.policy != nil {
		return ErrPolicyAlreadyBound
	}
	sim.policy = policy
	return nil
}

// Policy returns the bound policy, or nil.
func (sim *Simulator) Policy() SchedulePolicy {
	return sim.policy
}

// EnableTrace starts collecting a trace at the given level.
// TraceLevelNone (or empty) leaves tracing off.
func (sim *Simulator) EnableTrace(level trace.TraceLevel) {
	if level == "" || level == trace.TraceLevelNone {
		sim.Trace = nil
		return
	}
	sim.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: level})
}

// AddProcess queues a descriptor for arrival. The descriptor must satisfy its data
// contract, must not arrive before the current tick, and its pid must not belong
// to any pending or live process.
func (sim *Simulator) AddProcess(p Process) error {
	if sim.destroyed {
		return ErrDestroyed
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ArrivalTick < sim.Clock {
		return fmt.Errorf("pid %d: arrival tick %d, clock %d: %w", p.PID, p.ArrivalTick, sim.Clock, ErrArrivalInPast)
	}
	if sim.pidKnown(p.PID) {
		return fmt.Errorf("pid %d: %w", p.PID, ErrDuplicatePID)
	}
	sim.Pending = append(sim.Pending, p)
	return nil
}

func (sim *Simulator) pidKnown(pid int) bool {
	for _, p := range sim.Pending {
		if p.PID == pid {
			return true
		}
	}
	return sim.locate(pid) != ""
}

// locate returns where a live pid currently sits ("ready", "waiting", "cpu N"),
// or "" if no live PCB has that pid.
func (sim *Simulator) locate(pid int) string {
	if sim.Ready.Find(pid) != nil {
		return "ready"
	}
	if sim.Waiting.Find(pid) != nil {
		return "waiting"
	}
	for i, r := range sim.Running {
		if r != nil && r.PID == pid {
			return fmt.Sprintf("cpu %d", i)
		}
	}
	return ""
}

// Done reports whether the run is complete: nothing pending, queued or running.
func (sim *Simulator) Done() bool {
	if len(sim.Pending) > 0 || sim.Ready.Len() > 0 || sim.Waiting.Len() > 0 {
		return false
	}
	for _, r := range sim.Running {
		if r != nil {
			return false
		}
	}
	return true
}

// Step simulates one tick: arrivals, waiting progress, running progress,
// scheduling, then the clock advances. The phase order is fixed.
func (sim *Simulator) Step() error {
	if sim.destroyed {
		return ErrDestroyed
	}
	if sim.policy == nil {
		return ErrNoPolicy
	}
	logrus.Debugf("[tick %07d] begin ready=%v waiting=%v", sim.Clock, sim.Ready, sim.Waiting)

	sim.admitArrivals()
	sim.progressWaiting()
	sim.progressRunning()
	sim.schedule()

	for _, p := range sim.Ready.Items() {
		sim.Metrics.Process(p.PID).ReadyTicks++
	}
	if sim.Trace != nil && sim.Trace.Config.RecordsTicks() {
		sim.Trace.RecordTick(sim.Snapshot())
	}
	sim.Metrics.Ticks++
	sim.Clock++
	return nil
}

// Run steps until Done. With horizon > 0 it stops after that many ticks and
// returns ErrHorizonReached if work remains.
func (sim *Simulator) Run(horizon int64) error {
	if sim.destroyed {
		return ErrDestroyed
	}
	if sim.policy == nil {
		return ErrNoPolicy
	}
	logrus.Infof("[tick %07d] Starting simulation: %d cpus, %d pending processes, policy %T",
		sim.Clock, sim.NumCPUs, len(sim.Pending), sim.policy)
	start := sim.Clock
	for !sim.Done() {
		if horizon > 0 && sim.Clock-start >= horizon {
			logrus.Warnf("[tick %07d] Horizon of %d ticks reached with work remaining", sim.Clock, horizon)
			return fmt.Errorf("after %d ticks: %w", horizon, ErrHorizonReached)
		}
		if err := sim.Step(); err != nil {
			return err
		}
	}
	logrus.Infof("[tick %07d] Simulation ended", sim.Clock)
	return nil
}

// Destroy releases every PCB and queue. The simulator cannot be stepped afterwards.
func (sim *Simulator) Destroy() {
	sim.Pending = nil
	sim.Ready.clear()
	sim.Waiting.clear()
	for i := range sim.Running {
		sim.Running[i] = nil
	}
	sim.policy = nil
	sim.destroyed = true
}

// Snapshot returns the current contents of every queue and slot, stamped with Clock.
// Inside Step it is taken before the clock advances, so trace records carry the
// tick that produced them.
func (sim *Simulator) Snapshot() trace.TickRecord {
	pending := make([]int, len(sim.Pending))
	for i, p := range sim.Pending {
		pending[i] = p.PID
	}
	running := make([]optional.Int, len(sim.Running))
	for i, r := range sim.Running {
		if r != nil {
			running[i] = optional.NewInt(r.PID)
		}
	}
	return trace.TickRecord{
		Tick:    sim.Clock,
		Pending: pending,
		Ready:   sim.Ready.PIDs(),
		Waiting: sim.Waiting.PIDs(),
		Running: running,
	}
}

// admitArrivals turns every pending descriptor whose arrival tick equals the clock
// into a PCB, routed by the kind of its first burst.
func (sim *Simulator) admitArrivals() {
	remaining := sim.Pending[:0]
	var arrived []Process
	for _, p := range sim.Pending {
		if p.ArrivalTick == sim.Clock {
			arrived = append(arrived, p)
		} else {
			remaining = append(remaining, p)
		}
	}
	sim.Pending = remaining

	for _, p := range arrived {
		if where := sim.locate(p.PID); where != "" {
			panic(fmt.Sprintf("arrival of pid %d while a live PCB with that pid is in %s", p.PID, where))
		}
		pcb := newPCB(p)
		sim.Metrics.recordArrival(p.PID, sim.Clock)
		sim.recordEvent(trace.EventArrival, p.PID, -1, "")
		logrus.Debugf("[tick %07d] create pid %d", sim.Clock, p.PID)
		sim.route(pcb, -1)
	}
}

// progressWaiting advances the head I/O burst of every waiting PCB by one tick.
// The pass runs over a copy so a PCB re-appended for a following I/O burst is not
// decremented twice in the same tick.
func (sim *Simulator) progressWaiting() {
	waiting := append([]*PCB(nil), sim.Waiting.Items()...)
	for _, pcb := range waiting {
		e := pcb.Head()
		if e.Kind != BurstIO {
			panic(fmt.Sprintf("pid %d in waiting queue with %s head burst", pcb.PID, e.Kind))
		}
		e.Duration--
		sim.Metrics.Process(pcb.PID).IOTicks++
		if e.Duration > 0 {
			continue
		}
		sim.Waiting.Remove(pcb.PID)
		sim.recordEvent(trace.EventBurstEnd, pcb.PID, -1, "io")
		if !pcb.popHead() {
			sim.terminate(pcb, -1)
			continue
		}
		sim.route(pcb, -1)
	}
}

// progressRunning advances the head CPU burst of every occupied slot by one tick
// and frees the slot when that burst completes.
func (sim *Simulator) progressRunning() {
	for i, pcb := range sim.Running {
		if pcb == nil {
			continue
		}
		e := pcb.Head()
		if e.Kind != BurstCPU {
			panic(fmt.Sprintf("pid %d running on cpu %d with %s head burst", pcb.PID, i, e.Kind))
		}
		e.Duration--
		sim.Metrics.Process(pcb.PID).CPUTicks++
		sim.Metrics.CPUBusyTicks[i]++
		if e.Duration > 0 {
			continue
		}
		sim.Running[i] = nil
		sim.recordEvent(trace.EventBurstEnd, pcb.PID, i, "cpu")
		if !pcb.popHead() {
			sim.terminate(pcb, i)
			continue
		}
		if pcb.Head().Kind == BurstIO {
			pcb.QuantumUsed = 0
		}
		sim.route(pcb, i)
	}
}

// schedule consults the bound policy once per unit in ascending order, then
// dispatches the ready head to a unit the policy left idle.
func (sim *Simulator) schedule() {
	observer, _ := sim.policy.(RunObserver)
	for i := range sim.Running {
		action := sim.policy.Decide(sim, i)
		sim.apply(i, action)
		if observer != nil && sim.Running[i] != nil {
			observer.ObserveRunning(sim.Running[i])
		}
		if sim.Running[i] == nil && sim.Ready.Len() > 0 {
			sim.dispatch(i, sim.Ready.Dequeue())
		}
	}
}

// apply carries out a policy action on unit cpu. Actions that contradict the
// engine state are policy defects and panic.
func (sim *Simulator) apply(cpu int, a Action) {
	switch a.Kind {
	case ActionNoOp:
		return
	case ActionAdmit:
		if sim.Running[cpu] != nil {
			panic(fmt.Sprintf("admit pid %d on cpu %d occupied by pid %d", a.PID, cpu, sim.Running[cpu].PID))
		}
		sim.dispatch(cpu, sim.detachReady(a.PID, a.Slice))
	case ActionPreempt:
		evicted := sim.Running[cpu]
		if evicted == nil || evicted.PID != a.EvictedPID {
			panic(fmt.Sprintf("preempt pid %d on cpu %d which does not run it", a.EvictedPID, cpu))
		}
		admitted := sim.detachReady(a.PID, a.Slice)
		sim.Running[cpu] = nil
		sim.Ready.Enqueue(evicted)
		sim.Metrics.Process(evicted.PID).Preemptions++
		sim.recordEvent(trace.EventPreempt, evicted.PID, cpu, fmt.Sprintf("by=%d", admitted.PID))
		logrus.Debugf("[tick %07d] cpu %d preempt pid %d for pid %d", sim.Clock, cpu, evicted.PID, admitted.PID)
		sim.dispatch(cpu, admitted)
	default:
		panic(fmt.Sprintf("unknown action kind %d", a.Kind))
	}
}

// detachReady removes pid from the ready queue, splitting its head burst at slice
// when slice is positive.
func (sim *Simulator) detachReady(pid int, slice int) *PCB {
	pcb := sim.Ready.Remove(pid)
	if pcb == nil {
		panic(fmt.Sprintf("pid %d not in ready queue", pid))
	}
	if pcb.Head().Kind != BurstCPU {
		panic(fmt.Sprintf("pid %d in ready queue with %s head burst", pid, pcb.Head().Kind))
	}
	if slice > 0 && pcb.SplitHead(slice) {
		sim.recordEvent(trace.EventSplit, pid, -1, fmt.Sprintf("slice=%d rest=%d", slice, pcb.Bursts[1].Duration))
	}
	return pcb
}

func (sim *Simulator) dispatch(cpu int, pcb *PCB) {
	sim.Running[cpu] = pcb
	sim.Metrics.recordDispatch(pcb.PID, sim.Clock)
	remaining := pcb.RemainingCPU()
	sim.recordEvent(trace.EventDispatch, pcb.PID, cpu, fmt.Sprintf("cpu-left=%d", remaining))
	logrus.Debugf("[tick %07d] cpu %d run pid %d (%d cpu ticks left)", sim.Clock, cpu, pcb.PID, remaining)
}

// route appends pcb to the queue matching its head burst.
func (sim *Simulator) route(pcb *PCB, cpu int) {
	switch pcb.Head().Kind {
	case BurstCPU:
		sim.Ready.Enqueue(pcb)
		sim.recordEvent(trace.EventToReady, pcb.PID, cpu, "")
	case BurstIO:
		sim.Waiting.Enqueue(pcb)
		sim.recordEvent(trace.EventToWaiting, pcb.PID, cpu, "")
	default:
		panic(fmt.Sprintf("pid %d: illegal burst kind %q", pcb.PID, pcb.Head().Kind))
	}
}

func (sim *Simulator) terminate(pcb *PCB, cpu int) {
	sim.Metrics.recordCompletion(pcb.PID, sim.Clock)
	sim.recordEvent(trace.EventTerminate, pcb.PID, cpu, "")
	logrus.Debugf("[tick %07d] end process pid %d", sim.Clock, pcb.PID)
}
