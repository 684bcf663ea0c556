// Package sim provides the tick-based scheduling simulation engine.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - process.go and pcb.go: process descriptors and their live control blocks
//   - simulator.go: the five-phase tick (arrivals, waiting, running, scheduling, clock)
//   - scheduler.go: the policy interface and the actions the engine applies
//
// # Architecture
//
// The engine owns every queue and slot. A policy only reads them and returns an
// Action per unit; the engine validates and applies it, then dispatches the ready
// head to any unit the policy left idle. Sub-packages:
//   - sim/workload/: YAML workload specs and process files
//   - sim/trace/: per-tick snapshots and transition records
//
// # Key Interfaces
//
//   - SchedulePolicy: decide Admit, Preempt or NoOp for one unit
//   - RunObserver: per-tick bookkeeping on the occupant (SJF estimates)
//
// Policies: FCFSPolicy, RoundRobinPolicy (slices bursts at admission) and
// SJFPolicy (preemptive, exponential average). NewPolicy builds one from a
// PolicyConfig.
package sim
