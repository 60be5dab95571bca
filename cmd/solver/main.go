// Command solver runs the optimization engine once from the command line
// and prints the solution as JSON for downstream tooling (plotting,
// diffing, spreadsheets).
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"darwindispatch/internal/api"
	"darwindispatch/internal/config"
	"darwindispatch/internal/dataset"
	"darwindispatch/internal/model"
	"darwindispatch/internal/opt"
)

func main() {
	var (
		file     = flag.String("file", "", "CSV problem file (id,x,y rows, optional 'depot' row)")
		n        = flag.Int("n", 50, "random locations to generate when no -file is given")
		vehicles = flag.Int("vehicles", 3, "fleet size")
		seed     = flag.Int64("seed", 42, "random seed (0 for time-based)")
		pop      = flag.Int("pop", 0, "population size override")
		gens     = flag.Int("gens", 0, "max generations override")
		timeout  = flag.Duration("timeout", 0, "wall-clock budget (0 for none)")
		configP  = flag.String("config", os.Getenv("CONFIG_PATH"), "YAML config path")
	)
	flag.Parse()

	cfg, err := config.Load(*configP)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	solverCfg := cfg.SolverDefaults()
	solverCfg.Seed = *seed
	if *pop > 0 {
		solverCfg.PopulationSize = *pop
	}
	if *gens > 0 {
		solverCfg.MaxGenerations = *gens
	}

	problem, err := loadProblem(*file, *n, *vehicles, *seed)
	if err != nil {
		log.Fatalf("problem: %v", err)
	}

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := api.SolveOnce(ctx, problem, solverCfg)
	if err != nil {
		if errors.Is(err, opt.ErrInvalidConfig) || errors.Is(err, opt.ErrDegenerateInput) {
			fmt.Fprintf(os.Stderr, "invalid input: %v\n", err)
			os.Exit(2)
		}
		log.Fatalf("solve: %v", err)
	}
	log.Printf("solved %d stops with %d vehicles in %v: distance=%.2f imbalance=%.2f (generation %d)",
		len(problem.Locations), problem.Vehicles, time.Since(start).Round(time.Millisecond),
		resp.TotalDistance, resp.Imbalance, resp.FoundAt)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		log.Fatal(err)
	}
}

// loadProblem reads the CSV file, or generates locations uniformly on a
// 100x100 grid around a central depot.
func loadProblem(file string, n, vehicles int, seed int64) (model.ProblemIn, error) {
	if file != "" {
		return dataset.LoadProblem(file, vehicles)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	locs := make([]model.LocationIn, n)
	for i := range locs {
		locs[i] = model.LocationIn{
			ID: fmt.Sprintf("loc-%d", i),
			X:  float64(rng.Intn(101)),
			Y:  float64(rng.Intn(101)),
		}
	}
	return model.ProblemIn{
		Name:      "random",
		Depot:     model.LocationIn{ID: "depot", X: 50, Y: 50},
		Locations: locs,
		Vehicles:  vehicles,
	}, nil
}
