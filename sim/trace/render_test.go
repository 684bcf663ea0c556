package trace

import (
	"bytes"
	"testing"

	"github.com/markphelps/optional"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_TickWithEvents(t *testing.T) {
	// GIVEN one tick with a dispatch
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})
	st.RecordEvent(EventRecord{Tick: 0, Kind: EventDispatch, PID: 1, CPU: 0})
	st.RecordTick(TickRecord{Tick: 0, Pending: []int{}, Ready: []int{}, Waiting: []int{}, Running: []optional.Int{optional.NewInt(1)}})

	// WHEN rendered
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, st))

	// THEN the header, event and queue lines are exact
	want := "=== tick 00000000 ===\n" +
		"  dispatch   pid=1 cpu=0\n" +
		"  pending=[] ready=[] waiting=[] running=[1]\n"
	assert.Equal(t, want, buf.String())
}

func TestRender_IdleSlotAndDetail(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})
	st.RecordEvent(EventRecord{Tick: 3, Kind: EventPreempt, PID: 2, CPU: 1, Detail: "by=4"})
	st.RecordTick(TickRecord{Tick: 3, Ready: []int{2}, Running: []optional.Int{{}, optional.NewInt(4)}})

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, st))

	assert.Contains(t, buf.String(), "  preempt    pid=2 cpu=1 by=4\n")
	assert.Contains(t, buf.String(), "ready=[2] waiting=[] running=[- 4]\n")
}

func TestRender_EventsWithoutTicks(t *testing.T) {
	st := &SimulationTrace{Events: []EventRecord{{Tick: 12, Kind: EventTerminate, PID: 7, CPU: -1}}}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, st))

	assert.Equal(t, "[00000012] terminate  pid=7\n", buf.String())
}

func TestRender_NilTrace_NoOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, nil))
	assert.Empty(t, buf.String())
}
