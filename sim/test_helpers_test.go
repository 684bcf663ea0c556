package sim

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func cpuBurst(d int) Burst { return Burst{Kind: BurstCPU, Duration: d} }

func ioBurst(d int) Burst { return Burst{Kind: BurstIO, Duration: d} }

func proc(pid int, arrival int64, bursts ...Burst) Process {
	return Process{PID: pid, ArrivalTick: arrival, Bursts: bursts}
}

// newTestSimulator builds a simulator with policy bound and procs added.
func newTestSimulator(t *testing.T, cpus int, policy SchedulePolicy, procs ...Process) *Simulator {
	t.Helper()
	s, err := NewSimulator(cpus)
	require.NoError(t, err)
	require.NoError(t, s.Bind(policy))
	for _, p := range procs {
		require.NoError(t, s.AddProcess(p))
	}
	return s
}

// checkInvariants fails the test if a pid is live in two places, a live PCB has
// no bursts, or a head burst has a non-positive duration.
func checkInvariants(t *testing.T, s *Simulator) {
	t.Helper()
	seen := make(map[int]string)
	visit := func(p *PCB, where string) {
		if prev, ok := seen[p.PID]; ok {
			t.Fatalf("tick %d: pid %d in both %s and %s", s.Clock, p.PID, prev, where)
		}
		seen[p.PID] = where
		if len(p.Bursts) == 0 {
			t.Fatalf("tick %d: pid %d in %s with no bursts", s.Clock, p.PID, where)
		}
		if p.Head().Duration <= 0 {
			t.Fatalf("tick %d: pid %d in %s with exhausted head burst", s.Clock, p.PID, where)
		}
	}
	for _, p := range s.Ready.Items() {
		visit(p, "ready")
		require.Equal(t, BurstCPU, p.Head().Kind, "ready pid %d head kind", p.PID)
	}
	for _, p := range s.Waiting.Items() {
		visit(p, "waiting")
		require.Equal(t, BurstIO, p.Head().Kind, "waiting pid %d head kind", p.PID)
	}
	for i, p := range s.Running {
		if p != nil {
			visit(p, fmt.Sprintf("cpu %d", i))
			require.Equal(t, BurstCPU, p.Head().Kind, "running pid %d head kind", p.PID)
		}
	}
}

// runChecked steps s until Done, checking invariants after every tick.
// Returns the number of steps taken.
func runChecked(t *testing.T, s *Simulator, limit int) int {
	t.Helper()
	steps := 0
	for !s.Done() {
		require.Less(t, steps, limit, "simulation did not finish within %d ticks", limit)
		require.NoError(t, s.Step())
		checkInvariants(t, s)
		steps++
	}
	return steps
}

// mixedWorkload exercises arrivals at several ticks, I/O-first processes,
// consecutive I/O bursts and long CPU bursts.
func mixedWorkload() []Process {
	return []Process{
		proc(1, 0, cpuBurst(4), ioBurst(2), cpuBurst(3)),
		proc(2, 0, ioBurst(3), cpuBurst(2)),
		proc(3, 1, cpuBurst(6)),
		proc(4, 2, cpuBurst(1), ioBurst(1), ioBurst(2), cpuBurst(2)),
		proc(5, 5, cpuBurst(3)),
		proc(6, 5, cpuBurst(2), ioBurst(4), cpuBurst(1)),
	}
}

// testPolicies returns fresh instances of every policy.
func testPolicies() map[string]func() SchedulePolicy {
	return map[string]func() SchedulePolicy{
		"fcfs":        func() SchedulePolicy { return &FCFSPolicy{} },
		"round-robin": func() SchedulePolicy { return &RoundRobinPolicy{Quantum: 2} },
		"sjf":         func() SchedulePolicy { return NewSJFPolicy(DefaultSJFAlpha) },
	}
}
