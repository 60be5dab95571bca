package store

import (
	"context"
	"errors"
	"testing"

	"darwindispatch/internal/model"
)

func TestMemoryProblemLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	in := model.ProblemIn{
		Name:  "downtown",
		Depot: model.LocationIn{ID: "depot", X: 50, Y: 50},
		Locations: []model.LocationIn{
			{ID: "a", X: 10, Y: 20},
			{ID: "b", X: 80, Y: 30},
		},
		Vehicles: 2,
	}
	created, err := m.CreateProblem(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("create returned empty id")
	}

	got, err := m.GetProblem(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "downtown" || len(got.Locations) != 2 || got.Vehicles != 2 {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	list, err := m.ListProblems(ctx, 10)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v (%d items)", err, len(list))
	}

	if err := m.DeleteProblem(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := m.GetProblem(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete: %v, want ErrNotFound", err)
	}
}

func TestMemorySolverParams(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	created, err := m.CreateProblem(ctx, model.ProblemIn{
		Depot:     model.LocationIn{X: 0, Y: 0},
		Locations: []model.LocationIn{{X: 1, Y: 1}},
		Vehicles:  1,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if p, err := m.GetSolverParams(ctx, created.ID); err != nil || p != nil {
		t.Fatalf("expected no params yet, got %+v (%v)", p, err)
	}
	if err := m.SaveSolverParams(ctx, created.ID, model.SolverParams{PopulationSize: 80, Seed: 7}); err != nil {
		t.Fatalf("save params: %v", err)
	}
	p, err := m.GetSolverParams(ctx, created.ID)
	if err != nil || p == nil {
		t.Fatalf("get params: %+v (%v)", p, err)
	}
	if p.PopulationSize != 80 || p.Seed != 7 {
		t.Fatalf("params mismatch: %+v", p)
	}

	if err := m.SaveSolverParams(ctx, "missing", model.SolverParams{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("save on missing problem: %v, want ErrNotFound", err)
	}
}
