package workload

import (
	"fmt"
	"math"
	"math/rand"
)

// ArrivalSampler generates inter-arrival gaps in ticks.
type ArrivalSampler interface {
	// SampleIAT returns the gap to the next arrival. Zero means the same tick.
	SampleIAT(rng *rand.Rand) int64
}

// PoissonSampler generates exponentially-distributed gaps.
type PoissonSampler struct {
	ratePerTick float64
}

func (s *PoissonSampler) SampleIAT(rng *rand.Rand) int64 {
	return int64(rng.ExpFloat64() / s.ratePerTick)
}

// ConstantArrivalSampler spaces arrivals evenly.
type ConstantArrivalSampler struct {
	gap int64
}

func (s *ConstantArrivalSampler) SampleIAT(_ *rand.Rand) int64 {
	return s.gap
}

// ArrivalSpec selects the arrival process. Rate is in processes per tick.
type ArrivalSpec struct {
	Process string  `yaml:"process"`
	Rate    float64 `yaml:"rate"`
}

// NewArrivalSampler creates an ArrivalSampler from an ArrivalSpec.
func NewArrivalSampler(spec ArrivalSpec) (ArrivalSampler, error) {
	if math.IsNaN(spec.Rate) || spec.Rate <= 0 {
		return nil, fmt.Errorf("arrival rate must be positive, got %v", spec.Rate)
	}
	switch spec.Process {
	case "", "poisson":
		return &PoissonSampler{ratePerTick: spec.Rate}, nil
	case "constant":
		return &ConstantArrivalSampler{gap: int64(math.Round(1 / spec.Rate))}, nil
	default:
		return nil, fmt.Errorf("unknown arrival process %q; valid: poisson, constant", spec.Process)
	}
}
