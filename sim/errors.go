package sim

import "errors"

// Input errors. Callers match these with errors.Is; the engine wraps them with context.
var (
	ErrEmptyBursts         = errors.New("process has no bursts")
	ErrNonPositiveDuration = errors.New("burst duration must be positive")
	ErrInvalidBurstKind    = errors.New("unknown burst kind")
	ErrDuplicatePID        = errors.New("pid already in use")
	ErrArrivalInPast       = errors.New("arrival tick already passed")
	ErrInvalidCPUCount     = errors.New("cpu count must be at least 1")
	ErrNoPolicy            = errors.New("no scheduling policy bound")
	ErrPolicyAlreadyBound  = errors.New("scheduling policy already bound")
	ErrHorizonReached      = errors.New("simulation horizon reached before all processes terminated")
	ErrDestroyed           = errors.New("simulator destroyed")
)
