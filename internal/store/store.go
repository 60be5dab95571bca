package store

import (
	"context"
	"errors"

	"darwindispatch/internal/model"
)

// ErrNotFound is returned for unknown problem ids.
var ErrNotFound = errors.New("store: not found")

// Store holds problem datasets. Solve runs themselves are never persisted;
// only their inputs live here.
type Store interface {
	CreateProblem(ctx context.Context, in model.ProblemIn) (model.ProblemOut, error)
	GetProblem(ctx context.Context, id string) (model.ProblemOut, error)
	ListProblems(ctx context.Context, limit int) ([]model.ProblemOut, error)
	DeleteProblem(ctx context.Context, id string) error

	// Per-problem solver hyperparameter overrides, applied on top of the
	// server defaults when a solve names the problem.
	SaveSolverParams(ctx context.Context, problemID string, p model.SolverParams) error
	GetSolverParams(ctx context.Context, problemID string) (*model.SolverParams, error)
}
