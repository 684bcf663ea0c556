package workload

import (
	"bytes"
	"fmt"
	"math/rand"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/sched-sim/sched-sim/sim"
)

// GeneratorSpec describes a synthetic workload. Loaded from YAML via LoadGeneratorSpec(path).
type GeneratorSpec struct {
	Seed    int64       `yaml:"seed"`
	Count   int         `yaml:"count"`
	Arrival ArrivalSpec `yaml:"arrival"`
	CPU     DistSpec    `yaml:"cpu"`
	IO      DistSpec    `yaml:"io"`
	// Bursts is the number of CPU bursts per process; an I/O burst sits between each pair.
	Bursts int `yaml:"bursts"`
	// IOFirst is the probability that a process starts with an I/O burst.
	IOFirst float64 `yaml:"io_first"`
}

// LoadGeneratorSpec reads and parses a YAML generator specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadGeneratorSpec(path string) (*GeneratorSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading generator spec: %w", err)
	}
	var spec GeneratorSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing generator spec: %w", err)
	}
	return &spec, nil
}

// Generate creates Count processes with pids 1..Count in arrival order.
// Deterministic given the same spec and seed. The first process arrives at tick 0.
func Generate(spec *GeneratorSpec) ([]sim.Process, error) {
	if spec.Count < 1 {
		return nil, fmt.Errorf("count must be at least 1, got %d", spec.Count)
	}
	if spec.Bursts < 1 {
		return nil, fmt.Errorf("bursts must be at least 1, got %d", spec.Bursts)
	}
	if spec.IOFirst < 0 || spec.IOFirst > 1 {
		return nil, fmt.Errorf("io_first must be in [0, 1], got %v", spec.IOFirst)
	}
	arrivals, err := NewArrivalSampler(spec.Arrival)
	if err != nil {
		return nil, err
	}
	cpuDist, err := NewDurationSampler(spec.CPU)
	if err != nil {
		return nil, fmt.Errorf("cpu distribution: %w", err)
	}
	needIO := spec.Bursts > 1 || spec.IOFirst > 0
	var ioDist DurationSampler
	if needIO {
		if ioDist, err = NewDurationSampler(spec.IO); err != nil {
			return nil, fmt.Errorf("io distribution: %w", err)
		}
	}

	rng := newRandFromSeed(spec.Seed)
	procs := make([]sim.Process, 0, spec.Count)
	var arrival int64
	for pid := 1; pid <= spec.Count; pid++ {
		var bursts []sim.Burst
		if spec.IOFirst > 0 && rng.Float64() < spec.IOFirst {
			bursts = append(bursts, sim.Burst{Kind: sim.BurstIO, Duration: ioDist.Sample(rng)})
		}
		for i := 0; i < spec.Bursts; i++ {
			if i > 0 {
				bursts = append(bursts, sim.Burst{Kind: sim.BurstIO, Duration: ioDist.Sample(rng)})
			}
			bursts = append(bursts, sim.Burst{Kind: sim.BurstCPU, Duration: cpuDist.Sample(rng)})
		}
		procs = append(procs, sim.Process{PID: pid, ArrivalTick: arrival, Bursts: bursts})
		arrival += arrivals.SampleIAT(rng)
	}
	logrus.Debugf("generated %d processes, last arrival at tick %d", len(procs), procs[len(procs)-1].ArrivalTick)
	return procs, nil
}

func newRandFromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
