package workload

import (
	"fmt"
	"math"
	"math/rand"
)

// DurationSampler draws burst durations in ticks.
type DurationSampler interface {
	// Sample returns a positive duration (>= 1).
	Sample(rng *rand.Rand) int
}

// ConstantSampler always returns the same duration.
type ConstantSampler struct {
	value int
}

func (s *ConstantSampler) Sample(_ *rand.Rand) int {
	return s.value
}

// ExponentialSampler produces exponentially-distributed durations.
type ExponentialSampler struct {
	mean float64
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) int {
	result := int(math.Round(rng.ExpFloat64() * s.mean))
	if result < 1 {
		return 1
	}
	return result
}

// UniformSampler draws uniformly from [min, max].
type UniformSampler struct {
	min, max int
}

func (s *UniformSampler) Sample(rng *rand.Rand) int {
	return s.min + rng.Intn(s.max-s.min+1)
}

// DistSpec selects a duration distribution and its parameters:
// constant (value), exponential (mean), uniform (min, max).
type DistSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params"`
}

// NewDurationSampler creates a sampler from a DistSpec.
func NewDurationSampler(spec DistSpec) (DurationSampler, error) {
	switch spec.Type {
	case "constant":
		v := int(spec.Params["value"])
		if v < 1 {
			return nil, fmt.Errorf("constant distribution: value must be >= 1, got %v", spec.Params["value"])
		}
		return &ConstantSampler{value: v}, nil
	case "exponential":
		mean := spec.Params["mean"]
		if math.IsNaN(mean) || mean <= 0 {
			return nil, fmt.Errorf("exponential distribution: mean must be positive, got %v", mean)
		}
		return &ExponentialSampler{mean: mean}, nil
	case "uniform":
		lo, hi := int(spec.Params["min"]), int(spec.Params["max"])
		if lo < 1 || hi < lo {
			return nil, fmt.Errorf("uniform distribution: need 1 <= min <= max, got [%d, %d]", lo, hi)
		}
		return &UniformSampler{min: lo, max: hi}, nil
	default:
		return nil, fmt.Errorf("unknown distribution type %q; valid: constant, exponential, uniform", spec.Type)
	}
}
