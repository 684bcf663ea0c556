// Tracks per-process and per-unit accounting such as:
// turnaround, time spent ready, response time and unit utilization.

package sim

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
	"gonum.org/v1/gonum/stat"
)

// ProcessMetrics is the accounting record of one process, kept after it terminates.
type ProcessMetrics struct {
	PID           int
	ArrivalTick   int64
	FirstDispatch int64 // valid only when Dispatched
	Dispatched    bool
	Completion    int64 // tick in which the last burst finished; valid only when Completed
	Completed     bool
	CPUTicks      int // running-progress decrements
	IOTicks       int // waiting-progress decrements
	ReadyTicks    int // ticks that ended with the process in the ready queue
	Dispatches    int
	Preemptions   int
}

// Turnaround returns completion minus arrival in ticks.
func (p *ProcessMetrics) Turnaround() int64 {
	return p.Completion - p.ArrivalTick
}

// Response returns first dispatch minus arrival in ticks.
func (p *ProcessMetrics) Response() int64 {
	return p.FirstDispatch - p.ArrivalTick
}

// Metrics aggregates statistics about the simulation
// for final reporting.
type Metrics struct {
	Ticks        int64 // number of simulated ticks
	CPUBusyTicks []int // per unit: ticks in which the unit ran a burst
	// records holds one entry per process lifetime, in creation order. A pid may
	// be reused after its process terminates; current points at its latest record.
	records []*ProcessMetrics
	current map[int]int
}

// NewMetrics creates an empty Metrics for numCPUs units.
func NewMetrics(numCPUs int) *Metrics {
	return &Metrics{
		CPUBusyTicks: make([]int, numCPUs),
		current:      make(map[int]int),
	}
}

// Process returns the record of the latest process with pid, creating it on first use.
func (m *Metrics) Process(pid int) *ProcessMetrics {
	if i, ok := m.current[pid]; ok {
		return m.records[i]
	}
	return m.newRecord(pid)
}

// Processes returns every record ordered by pid, then by arrival.
func (m *Metrics) Processes() []*ProcessMetrics {
	out := make([]*ProcessMetrics, len(m.records))
	copy(out, m.records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	return out
}

func (m *Metrics) newRecord(pid int) *ProcessMetrics {
	pm := &ProcessMetrics{PID: pid}
	m.current[pid] = len(m.records)
	m.records = append(m.records, pm)
	return pm
}

// recordArrival starts a fresh record, so a reused pid never inherits the
// accounting of an earlier process.
func (m *Metrics) recordArrival(pid int, tick int64) {
	m.newRecord(pid).ArrivalTick = tick
}

func (m *Metrics) recordDispatch(pid int, tick int64) {
	pm := m.Process(pid)
	if !pm.Dispatched {
		pm.Dispatched = true
		pm.FirstDispatch = tick
	}
	pm.Dispatches++
}

func (m *Metrics) recordCompletion(pid int, tick int64) {
	pm := m.Process(pid)
	pm.Completed = true
	pm.Completion = tick
}

// Utilization returns the busy fraction of each unit over the simulated ticks.
func (m *Metrics) Utilization() []float64 {
	out := make([]float64, len(m.CPUBusyTicks))
	if m.Ticks == 0 {
		return out
	}
	for i, busy := range m.CPUBusyTicks {
		out[i] = float64(busy) / float64(m.Ticks)
	}
	return out
}

// Summary holds distribution statistics over completed processes, in ticks.
type Summary struct {
	Completed      int
	MeanTurnaround float64
	StdTurnaround  float64
	P90Turnaround  float64
	MeanWaiting    float64
	StdWaiting     float64
	MeanResponse   float64
	Throughput     float64 // completed processes per tick
}

// Summary computes statistics over all completed processes.
// Standard deviations are 0 with fewer than two samples.
func (m *Metrics) Summary() Summary {
	var turnaround, waiting, response []float64
	for _, pm := range m.Processes() {
		if !pm.Completed {
			continue
		}
		turnaround = append(turnaround, float64(pm.Turnaround()))
		waiting = append(waiting, float64(pm.ReadyTicks))
		if pm.Dispatched {
			response = append(response, float64(pm.Response()))
		}
	}
	s := Summary{Completed: len(turnaround)}
	if s.Completed == 0 {
		return s
	}
	s.MeanTurnaround = stat.Mean(turnaround, nil)
	s.MeanWaiting = stat.Mean(waiting, nil)
	if len(response) > 0 {
		s.MeanResponse = stat.Mean(response, nil)
	}
	if s.Completed > 1 {
		s.StdTurnaround = stat.StdDev(turnaround, nil)
		s.StdWaiting = stat.StdDev(waiting, nil)
	}
	sorted := append([]float64(nil), turnaround...)
	sort.Float64s(sorted)
	s.P90Turnaround = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	if m.Ticks > 0 {
		s.Throughput = float64(s.Completed) / float64(m.Ticks)
	}
	return s
}

// Print writes the per-process table, the per-unit utilization table and the summary line.
func (m *Metrics) Print(w io.Writer) {
	_, _ = fmt.Fprintln(w, "=== Simulation Metrics ===")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "Arrival", "Response", "Exit", "Turnaround", "Ready", "CPU", "IO", "Dispatches", "Preempted"})
	for _, pm := range m.Processes() {
		response, exit, turnaround := "-", "-", "-"
		if pm.Dispatched {
			response = fmt.Sprint(pm.Response())
		}
		if pm.Completed {
			exit = fmt.Sprint(pm.Completion)
			turnaround = fmt.Sprint(pm.Turnaround())
		}
		table.Append([]string{
			fmt.Sprint(pm.PID), fmt.Sprint(pm.ArrivalTick), response, exit, turnaround,
			fmt.Sprint(pm.ReadyTicks), fmt.Sprint(pm.CPUTicks), fmt.Sprint(pm.IOTicks),
			fmt.Sprint(pm.Dispatches), fmt.Sprint(pm.Preemptions),
		})
	}
	s := m.Summary()
	table.SetFooter([]string{"", "", fmt.Sprintf("Average\n%.2f", s.MeanResponse), "",
		fmt.Sprintf("Average\n%.2f", s.MeanTurnaround), fmt.Sprintf("Average\n%.2f", s.MeanWaiting),
		"", "", "", ""})
	table.Render()

	cpus := tablewriter.NewWriter(w)
	cpus.SetHeader([]string{"CPU", "Busy", "Utilization"})
	for i, u := range m.Utilization() {
		cpus.Append([]string{fmt.Sprint(i), fmt.Sprint(m.CPUBusyTicks[i]), fmt.Sprintf("%.2f%%", u*100)})
	}
	cpus.Render()

	_, _ = fmt.Fprintf(w, "Ticks: %d  Completed: %d  Throughput: %.4f/tick  Turnaround p90: %.2f  stddev: %.2f\n",
		m.Ticks, s.Completed, s.Throughput, s.P90Turnaround, s.StdTurnaround)
}
