package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"darwindispatch/internal/model"
)

// Memory is a simple in-memory store used when no DATABASE_URL is set.
type Memory struct {
	mu       sync.Mutex
	problems map[string]model.ProblemOut
	params   map[string]model.SolverParams
}

func NewMemory() *Memory {
	return &Memory{
		problems: map[string]model.ProblemOut{},
		params:   map[string]model.SolverParams{},
	}
}

func (m *Memory) CreateProblem(_ context.Context, in model.ProblemIn) (model.ProblemOut, error) {
	out := model.ProblemOut{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Depot:     in.Depot,
		Locations: append([]model.LocationIn(nil), in.Locations...),
		Vehicles:  in.Vehicles,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	m.mu.Lock()
	m.problems[out.ID] = out
	m.mu.Unlock()
	return out, nil
}

func (m *Memory) GetProblem(_ context.Context, id string) (model.ProblemOut, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.problems[id]
	if !ok {
		return model.ProblemOut{}, ErrNotFound
	}
	return p, nil
}

func (m *Memory) ListProblems(_ context.Context, limit int) ([]model.ProblemOut, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.ProblemOut, 0, len(m.problems))
	for _, p := range m.problems {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) DeleteProblem(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.problems[id]; !ok {
		return ErrNotFound
	}
	delete(m.problems, id)
	delete(m.params, id)
	return nil
}

func (m *Memory) SaveSolverParams(_ context.Context, problemID string, p model.SolverParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.problems[problemID]; !ok {
		return ErrNotFound
	}
	m.params[problemID] = p
	return nil
}

func (m *Memory) GetSolverParams(_ context.Context, problemID string) (*model.SolverParams, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.params[problemID]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}
