package opt

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"darwindispatch/internal/geo"
)

// Stop is one location in the plane. The depot is a Stop too.
type Stop struct {
	ID string
	X  float64
	Y  float64
}

// Problem is the fixed input the engine searches over. Chromosome gene i
// refers to Stops[i]; the distance matrix indexes the depot at 0 and
// Stops[i] at i+1. Matrix is optional; when nil it is derived from the
// coordinates at solve time.
type Problem struct {
	Depot    Stop
	Stops    []Stop
	Vehicles int
	Matrix   *geo.Matrix
}

// Route is one vehicle's decoded segment. Stops holds delivery indices in
// visit order; the depot bounds the route at both ends and is implied.
// Empty routes stay empty (zero distance, no depot round trip).
type Route struct {
	Vehicle  int
	Stops    []int
	Distance float64
}

// Solution is the best individual found by a run, decoded.
type Solution struct {
	Chromosome    []int
	Routes        []Route
	TotalDistance float64
	Imbalance     float64
	Fitness       float64
	FoundAt       int // generation at which this individual first appeared
}

// GenerationStats is one generation's snapshot of the fitness landscape.
type GenerationStats struct {
	Generation int     `json:"generation"`
	Best       float64 `json:"best"`
	Avg        float64 `json:"avg"`
}

// Metrics summarizes a finished run.
type Metrics struct {
	Generations  int
	Improvements int
	BestFitness  float64
	BestAt       int
	Stagnation   int
	Seed         int64
	Elapsed      time.Duration
	History      []GenerationStats
}

// individual pairs a chromosome with its evaluated fitness.
type individual struct {
	chrom  []int
	fit    objectives
	scalar float64
}

// Solve runs the genetic algorithm to completion and returns the best
// solution found together with run metrics. Configuration and problem
// validation happen before the first generation; an invalid setup aborts
// with no partial run. Cancelling ctx stops the loop early and still
// returns the best individual found so far.
func Solve(ctx context.Context, p Problem, cfg Config) (Solution, Metrics, error) {
	if err := cfg.Validate(); err != nil {
		return Solution{}, Metrics{}, err
	}
	ev, err := newEvaluator(p, cfg)
	if err != nil {
		return Solution{}, Metrics{}, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	n := len(p.Stops)
	start := time.Now()

	// initial population of random permutations
	pop := make([]individual, cfg.PopulationSize)
	for i := range pop {
		pop[i] = individual{chrom: randomPermutation(n, rng)}
	}
	evaluateAll(ev, pop, cfg.Workers)

	var best individual
	bestAt := 0
	stagnation := 0
	m := Metrics{Seed: seed}

	record := func(gen int) {
		improved := false
		sum := 0.0
		for i := range pop {
			sum += pop[i].scalar
			if best.chrom == nil || pop[i].scalar < best.scalar {
				best = individual{
					chrom:  append([]int(nil), pop[i].chrom...),
					fit:    pop[i].fit,
					scalar: pop[i].scalar,
				}
				improved = true
			}
		}
		if improved {
			bestAt = gen
			stagnation = 0
			if gen > 0 {
				m.Improvements++
			}
		} else {
			stagnation++
		}
		stats := GenerationStats{Generation: gen, Best: best.scalar, Avg: sum / float64(len(pop))}
		m.History = append(m.History, stats)
		if cfg.Progress != nil {
			cfg.Progress(stats)
		}
	}
	record(0)

	gen := 0
loop:
	for gen < cfg.MaxGenerations && stagnation < cfg.StagnationLimit {
		select {
		case <-ctx.Done():
			// caller-imposed budget; keep the best found so far
			break loop
		default:
		}
		gen++
		pop = nextGeneration(pop, best, cfg, rng)
		evaluateAll(ev, pop, cfg.Workers)
		record(gen)
	}

	m.Generations = gen
	m.BestFitness = best.scalar
	m.BestAt = bestAt
	m.Stagnation = stagnation
	m.Elapsed = time.Since(start)
	return decode(ev, best, bestAt), m, nil
}

func newEvaluator(p Problem, cfg Config) (evaluator, error) {
	if p.Vehicles < 1 {
		return evaluator{}, fmt.Errorf("%w: vehicle count must be >= 1 (got %d)", ErrInvalidConfig, p.Vehicles)
	}
	if len(p.Stops) == 0 {
		return evaluator{}, fmt.Errorf("%w: no delivery stops", ErrDegenerateInput)
	}
	m := p.Matrix
	if m == nil {
		pts := make([]geo.Point, 0, len(p.Stops)+1)
		pts = append(pts, geo.Point{X: p.Depot.X, Y: p.Depot.Y})
		for _, s := range p.Stops {
			pts = append(pts, geo.Point{X: s.X, Y: s.Y})
		}
		m = geo.NewEuclidean(pts)
	} else if m.Len() != len(p.Stops)+1 {
		return evaluator{}, fmt.Errorf("%w: matrix covers %d locations, want %d", ErrInvalidConfig, m.Len(), len(p.Stops)+1)
	}
	return evaluator{m: m, vehicles: p.Vehicles, lambda: cfg.ImbalanceWeight}, nil
}

// evaluateAll scores every individual, optionally fanning out across a
// worker pool. The pool drains fully before returning, so selection never
// sees a partially evaluated generation.
func evaluateAll(ev evaluator, pop []individual, workers int) {
	score := func(i int) {
		pop[i].fit = ev.evaluate(pop[i].chrom)
		pop[i].scalar = ev.scalar(pop[i].fit)
	}
	if workers <= 1 {
		for i := range pop {
			score(i)
		}
		return
	}
	idx := make(chan int)
	done := make(chan struct{})
	for w := 0; w < workers; w++ {
		go func() {
			for i := range idx {
				score(i)
			}
			done <- struct{}{}
		}()
	}
	for i := range pop {
		idx <- i
	}
	close(idx)
	for w := 0; w < workers; w++ {
		<-done
	}
}

// nextGeneration builds a fresh population from the current one: tournament
// parents, PMX with the configured probability, shuffle mutation, and the
// best-so-far individual carried forward unchanged when elitism is on. The
// current generation is never mutated in place.
func nextGeneration(pop []individual, best individual, cfg Config, rng *rand.Rand) []individual {
	next := make([]individual, 0, len(pop))
	if cfg.Elitism && best.chrom != nil {
		next = append(next, individual{chrom: append([]int(nil), best.chrom...)})
	}
	for len(next) < cap(next) {
		pa := pop[tournamentSelect(pop, cfg.TournamentSize, rng)].chrom
		pb := pop[tournamentSelect(pop, cfg.TournamentSize, rng)].chrom
		var child []int
		if rng.Float64() < cfg.CrossoverProb {
			child = pmxCrossover(pa, pb, rng)
		} else {
			child = append([]int(nil), pa...)
		}
		if rng.Float64() < cfg.MutationProb {
			shuffleMutate(child, rng)
		}
		next = append(next, individual{chrom: child})
	}
	return next
}

func decode(ev evaluator, best individual, foundAt int) Solution {
	segs := SplitRoutes(best.chrom, ev.vehicles)
	routes := make([]Route, len(segs))
	for v, seg := range segs {
		routes[v] = Route{
			Vehicle:  v,
			Stops:    append([]int(nil), seg...),
			Distance: ev.routeLength(seg),
		}
	}
	return Solution{
		Chromosome:    append([]int(nil), best.chrom...),
		Routes:        routes,
		TotalDistance: best.fit.total,
		Imbalance:     best.fit.imbalance,
		Fitness:       best.scalar,
		FoundAt:       foundAt,
	}
}
