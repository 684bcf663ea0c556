package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sched-sim/sched-sim/sim/internal/testutil"
)

func predicted(pid int, prediction float64) *PCB {
	p := newPCB(proc(pid, 0, cpuBurst(10)))
	p.Prediction = prediction
	return p
}

func TestSJFPolicy_AdmitsLowestPrediction(t *testing.T) {
	// GIVEN an idle unit and ready predictions [3.0, 7.0, 1.0]
	s := readySimulator(t, 1, predicted(1, 3.0), predicted(2, 7.0), predicted(3, 1.0))

	// WHEN the policy decides
	got := NewSJFPolicy(DefaultSJFAlpha).Decide(s, 0)

	// THEN the process predicted at 1.0 is admitted
	assert.Equal(t, Admit(3), got)
}

func TestSJFPolicy_Step_AdmitsLowestAndUpdatesEstimate(t *testing.T) {
	// GIVEN the same ready queue driven through the engine
	s := readySimulator(t, 1, predicted(1, 3.0), predicted(2, 7.0), predicted(3, 1.0))
	require.NoError(t, s.Bind(NewSJFPolicy(0.5)))

	// WHEN one tick runs
	require.NoError(t, s.Step())

	// THEN pid 3 runs, the others keep their order, and its estimate absorbed one tick
	require.NotNil(t, s.Running[0])
	assert.Equal(t, 3, s.Running[0].PID)
	assert.Equal(t, []int{1, 2}, s.Ready.PIDs())
	assert.Equal(t, 1, s.Running[0].QuantumUsed)
	testutil.AssertFloat64Equal(t, "prediction", 1.0, s.Running[0].Prediction, 1e-12)
}

func TestSJFPolicy_TieBreaksByReadyOrder(t *testing.T) {
	s := readySimulator(t, 1, predicted(5, 2.0), predicted(6, 1.0), predicted(7, 1.0))
	assert.Equal(t, Admit(6), NewSJFPolicy(DefaultSJFAlpha).Decide(s, 0))
}

func TestSJFPolicy_Preemption(t *testing.T) {
	tests := []struct {
		name       string
		occupant   float64
		readyPreds []float64
		want       Action
	}{
		{"strictly larger occupant is preempted", 4.0, []float64{6.0, 2.0}, Preempt(1, 11)},
		{"equal prediction keeps occupant", 2.0, []float64{2.0}, NoOp()},
		{"smaller occupant keeps running", 1.0, []float64{2.0, 3.0}, NoOp()},
		{"empty ready keeps occupant", 9.0, nil, NoOp()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var ready []*PCB
			for i, pred := range tc.readyPreds {
				ready = append(ready, predicted(10+i, pred))
			}
			s := readySimulator(t, 1, ready...)
			s.Running[0] = predicted(1, tc.occupant)

			assert.Equal(t, tc.want, NewSJFPolicy(DefaultSJFAlpha).Decide(s, 0))
		})
	}
}

func TestSJFPolicy_Preempt_EngineMovesOccupantToReadyTail(t *testing.T) {
	// GIVEN pid 1 running with a large estimate and two ready processes
	s := readySimulator(t, 1, predicted(2, 5.0), predicted(3, 0.5))
	s.Running[0] = predicted(1, 4.0)
	require.NoError(t, s.Bind(NewSJFPolicy(0.5)))

	// WHEN the tick's scheduling phase runs
	require.NoError(t, s.Step())

	// THEN pid 3 runs and pid 1 sits at the ready tail with its estimate intact
	assert.Equal(t, 3, s.Running[0].PID)
	assert.Equal(t, []int{2, 1}, s.Ready.PIDs())
	assert.Equal(t, 4.0, s.Ready.Find(1).Prediction)
	assert.Equal(t, 1, s.Metrics.Process(1).Preemptions)
}

func TestSJFPolicy_ObserveRunning_ExponentialAverage(t *testing.T) {
	// GIVEN alpha 0.25 and a fresh PCB
	policy := NewSJFPolicy(0.25)
	pcb := predicted(1, 0)

	// WHEN three ticks are observed
	policy.ObserveRunning(pcb)
	policy.ObserveRunning(pcb)
	policy.ObserveRunning(pcb)

	// THEN prediction follows p' = 0.25*used + 0.75*p with used = 1, 2, 3
	want := 0.0
	for used := 1; used <= 3; used++ {
		want = 0.25*float64(used) + 0.75*want
	}
	assert.Equal(t, 3, pcb.QuantumUsed)
	testutil.AssertFloat64Equal(t, "prediction", want, pcb.Prediction, 1e-12)
}

func TestSJFPolicy_EndToEnd_PreemptsLongerRunningEstimate(t *testing.T) {
	// GIVEN one unit, alpha 0.5, pid 1 [CPU(3)] at tick 0 and pid 2 [CPU(2)] at tick 1
	s := newTestSimulator(t, 1, NewSJFPolicy(0.5),
		proc(1, 0, cpuBurst(3)),
		proc(2, 1, cpuBurst(2)),
	)

	// WHEN tick 0 runs, pid 1 is admitted and its estimate becomes 0.5
	require.NoError(t, s.Step())
	require.Equal(t, 1, s.Running[0].PID)
	testutil.AssertFloat64Equal(t, "pid 1 prediction", 0.5, s.Running[0].Prediction, 1e-12)

	// WHEN tick 1 runs, fresh pid 2 (estimate 0) preempts pid 1 (estimate 0.5)
	require.NoError(t, s.Step())
	require.Equal(t, 2, s.Running[0].PID)
	assert.Equal(t, []int{1}, s.Ready.PIDs())
	assert.Equal(t, 2, s.Ready.Peek().Head().Duration)

	// WHEN tick 2 runs, equal estimates (0.5 vs 0.5) keep pid 2 running
	require.NoError(t, s.Step())
	require.Equal(t, 2, s.Running[0].PID)
	testutil.AssertFloat64Equal(t, "pid 2 prediction", 1.25, s.Running[0].Prediction, 1e-12)

	// THEN the run completes with pid 2 finishing at 3 and pid 1 at 5
	runChecked(t, s, 10)
	p1, p2 := s.Metrics.Process(1), s.Metrics.Process(2)
	assert.Equal(t, int64(3), p2.Completion)
	assert.Equal(t, int64(5), p1.Completion)
	assert.Equal(t, 1, p1.Preemptions)
	assert.Equal(t, 2, p1.Dispatches)
	assert.Equal(t, 2, p1.ReadyTicks)
	assert.Equal(t, 0, p2.ReadyTicks)
}

func TestSJFPolicy_TwoUnits_EvictedOccupantComparedOnNextUnit(t *testing.T) {
	tests := []struct {
		name          string
		unit1Estimate float64
		wantRunning   []int
		wantReady     []int
		wantPreempted map[int]int
	}{
		{
			// pid 1 leaves unit 0 for pid 3 and is not better than unit 1's occupant
			name:          "evicted process waits",
			unit1Estimate: 3.0,
			wantRunning:   []int{3, 2},
			wantReady:     []int{1},
			wantPreempted: map[int]int{1: 1, 2: 0},
		},
		{
			// pid 1 leaves unit 0 and immediately displaces the longer estimate on unit 1
			name:          "evicted process moves to next unit",
			unit1Estimate: 5.0,
			wantRunning:   []int{3, 1},
			wantReady:     []int{2},
			wantPreempted: map[int]int{1: 1, 2: 1},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// GIVEN pid 1 (estimate 4) on unit 0, pid 2 on unit 1, pid 3 (estimate 1) ready
			s := readySimulator(t, 2, predicted(3, 1.0))
			s.Running[0] = predicted(1, 4.0)
			s.Running[1] = predicted(2, tc.unit1Estimate)
			require.NoError(t, s.Bind(NewSJFPolicy(0.5)))

			// WHEN one tick runs
			require.NoError(t, s.Step())

			// THEN unit 0 is decided first and unit 1 sees its evictee at the ready tail
			assert.Equal(t, tc.wantRunning, []int{s.Running[0].PID, s.Running[1].PID})
			assert.Equal(t, tc.wantReady, s.Ready.PIDs())
			for pid, want := range tc.wantPreempted {
				assert.Equal(t, want, s.Metrics.Process(pid).Preemptions, "pid %d", pid)
			}
		})
	}
}
