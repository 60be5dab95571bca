package opt

import (
	"context"
	"errors"
	"testing"

	"darwindispatch/internal/geo"
)

// tenStopProblem is the end-to-end scenario: 10 deliveries around a
// central depot, 3 vehicles.
func tenStopProblem() Problem {
	coords := [][2]float64{
		{10, 10}, {90, 15}, {20, 85}, {75, 80}, {50, 5},
		{5, 50}, {95, 55}, {60, 95}, {30, 40}, {70, 35},
	}
	stops := make([]Stop, len(coords))
	for i, c := range coords {
		stops[i] = Stop{ID: string(rune('A' + i)), X: c[0], Y: c[1]}
	}
	return Problem{Depot: Stop{ID: "depot", X: 50, Y: 50}, Stops: stops, Vehicles: 3}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.PopulationSize = 50
	cfg.Seed = 42
	return cfg
}

func TestSolveEndToEndBeatsNearestNeighbor(t *testing.T) {
	p := tenStopProblem()
	sol, m, err := Solve(context.Background(), p, testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Generations > 300 {
		t.Fatalf("ran %d generations, limit 300", m.Generations)
	}
	if len(sol.Routes) != 3 {
		t.Fatalf("got %d routes, want 3", len(sol.Routes))
	}
	// every delivery appears in exactly one route
	seen := make([]bool, len(p.Stops))
	for _, r := range sol.Routes {
		for _, s := range r.Stops {
			if seen[s] {
				t.Fatalf("stop %d appears twice", s)
			}
			seen[s] = true
		}
	}
	for i, ok := range seen {
		if !ok {
			t.Fatalf("stop %d missing from all routes", i)
		}
	}

	// independent nearest-neighbor baseline over the same input, measured
	// with the same split and distance model
	pts := []geo.Point{{X: p.Depot.X, Y: p.Depot.Y}}
	for _, s := range p.Stops {
		pts = append(pts, geo.Point{X: s.X, Y: s.Y})
	}
	mtx := geo.NewEuclidean(pts)
	nn := NearestNeighborOrder(mtx)
	baseline := 0.0
	for _, seg := range SplitRoutes(nn, p.Vehicles) {
		baseline += (evaluator{m: mtx, vehicles: p.Vehicles}).routeLength(seg)
	}
	if sol.TotalDistance > baseline {
		t.Fatalf("GA distance %v worse than nearest-neighbor baseline %v", sol.TotalDistance, baseline)
	}
}

func TestSolveBestFitnessNonIncreasing(t *testing.T) {
	_, m, err := Solve(context.Background(), tenStopProblem(), testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(m.History); i++ {
		if m.History[i].Best > m.History[i-1].Best {
			t.Fatalf("best fitness regressed at generation %d: %v -> %v",
				m.History[i].Generation, m.History[i-1].Best, m.History[i].Best)
		}
	}
}

func TestSolveHaltsOnStagnation(t *testing.T) {
	p := tenStopProblem()
	cfg := testConfig()
	cfg.MaxGenerations = 5000
	cfg.StagnationLimit = 10
	_, m, err := Solve(context.Background(), p, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Generations >= cfg.MaxGenerations {
		t.Fatalf("never stagnated within %d generations", cfg.MaxGenerations)
	}
	if m.Generations-m.BestAt < cfg.StagnationLimit {
		t.Fatalf("halted %d generations after last improvement, want >= %d",
			m.Generations-m.BestAt, cfg.StagnationLimit)
	}
}

func TestSolveDegenerateFleetGetsEmptyRoutes(t *testing.T) {
	p := Problem{
		Depot:    Stop{ID: "depot", X: 0, Y: 0},
		Stops:    []Stop{{ID: "a", X: 1, Y: 0}, {ID: "b", X: 0, Y: 1}},
		Vehicles: 5,
	}
	sol, _, err := Solve(context.Background(), p, testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sol.Routes) != 5 {
		t.Fatalf("got %d routes, want 5", len(sol.Routes))
	}
	empty := 0
	assigned := 0
	for _, r := range sol.Routes {
		if len(r.Stops) == 0 {
			empty++
			if r.Distance != 0 {
				t.Fatalf("empty route has distance %v", r.Distance)
			}
		}
		assigned += len(r.Stops)
	}
	if empty != 3 || assigned != 2 {
		t.Fatalf("got %d empty routes and %d assigned stops, want 3 and 2", empty, assigned)
	}
}

func TestSolveNoStopsIsDegenerateInput(t *testing.T) {
	p := Problem{Depot: Stop{}, Vehicles: 2}
	_, _, err := Solve(context.Background(), p, testConfig())
	if !errors.Is(err, ErrDegenerateInput) {
		t.Fatalf("got %v, want ErrDegenerateInput", err)
	}
}

func TestSolveInvalidConfigFailsFast(t *testing.T) {
	cfg := testConfig()
	cfg.PopulationSize = 0
	if _, _, err := Solve(context.Background(), tenStopProblem(), cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("got %v, want ErrInvalidConfig", err)
	}
	p := tenStopProblem()
	p.Vehicles = 0
	if _, _, err := Solve(context.Background(), p, testConfig()); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("got %v, want ErrInvalidConfig", err)
	}
}

func TestSolveCancelledContextReturnsBestSoFar(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sol, m, err := Solve(ctx, tenStopProblem(), testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// only the initial population was evaluated, but its best survives
	if m.Generations != 0 {
		t.Fatalf("ran %d generations after cancellation, want 0", m.Generations)
	}
	if len(sol.Chromosome) != 10 {
		t.Fatalf("no best individual returned: %+v", sol)
	}
}

func TestSolveParallelEvaluationMatchesSerial(t *testing.T) {
	p := tenStopProblem()
	cfg := testConfig()
	serial, _, err := Solve(context.Background(), p, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.Workers = 4
	parallel, _, err := Solve(context.Background(), p, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// the RNG lives on the loop goroutine, so fan-out must not change results
	if serial.Fitness != parallel.Fitness {
		t.Fatalf("parallel fitness %v != serial %v", parallel.Fitness, serial.Fitness)
	}
	for i, g := range serial.Chromosome {
		if parallel.Chromosome[i] != g {
			t.Fatalf("parallel chromosome diverges at %d", i)
		}
	}
}
