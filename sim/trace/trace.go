package trace

// TraceLevel controls the verbosity of run tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelTicks captures the end-of-tick queue contents.
	TraceLevelTicks TraceLevel = "ticks"
	// TraceLevelEvents captures tick snapshots plus every transition.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelTicks:  true,
	TraceLevelEvents: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// RecordsEvents reports whether transitions should be recorded.
func (c TraceConfig) RecordsEvents() bool {
	return c.Level == TraceLevelEvents
}

// RecordsTicks reports whether tick snapshots should be recorded.
func (c TraceConfig) RecordsTicks() bool {
	return c.Level == TraceLevelTicks || c.Level == TraceLevelEvents
}

// SimulationTrace collects tick and event records during a run.
type SimulationTrace struct {
	Config TraceConfig
	Ticks  []TickRecord
	Events []EventRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config: config,
		Ticks:  make([]TickRecord, 0),
		Events: make([]EventRecord, 0),
	}
}

// RecordTick appends an end-of-tick snapshot.
func (st *SimulationTrace) RecordTick(record TickRecord) {
	st.Ticks = append(st.Ticks, record)
}

// RecordEvent appends a transition record.
func (st *SimulationTrace) RecordEvent(record EventRecord) {
	st.Events = append(st.Events, record)
}
