package opt

import (
	"errors"

	"darwindispatch/internal/geo"
)

var (
	// ErrInvalidConfig marks hyperparameter validation failures. All of them
	// surface before the evolution loop starts; there is no partial run.
	ErrInvalidConfig = errors.New("opt: invalid config")

	// ErrDegenerateInput marks problems the engine refuses to search over
	// (no delivery stops at all). Fewer stops than vehicles is allowed and
	// yields empty routes for the surplus vehicles.
	ErrDegenerateInput = errors.New("opt: degenerate input")

	// ErrOutOfRange mirrors the distance model's unknown-index error.
	ErrOutOfRange = geo.ErrOutOfRange
)
