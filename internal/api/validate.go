package api

import (
	"fmt"
	"math"

	"darwindispatch/internal/model"
)

func validateProblem(p *model.ProblemIn) error {
	if p.Vehicles < 1 {
		return fmt.Errorf("vehicles must be >= 1 (got %d)", p.Vehicles)
	}
	if len(p.Locations) == 0 {
		return fmt.Errorf("at least one delivery location is required")
	}
	if !finite(p.Depot.X) || !finite(p.Depot.Y) {
		return fmt.Errorf("depot coordinates must be finite")
	}
	for i, l := range p.Locations {
		if !finite(l.X) || !finite(l.Y) {
			return fmt.Errorf("location %d coordinates must be finite", i)
		}
	}
	return nil
}

func validateSolveRequest(req *model.SolveRequest) error {
	if (req.ProblemID == "") == (req.Problem == nil) {
		return fmt.Errorf("exactly one of problemId or problem is required")
	}
	if req.Problem != nil {
		if err := validateProblem(req.Problem); err != nil {
			return err
		}
	}
	if p := req.Params; p != nil {
		if p.PopulationSize < 0 || p.MaxGenerations < 0 || p.StagnationLimit < 0 ||
			p.TournamentSize < 0 || p.Workers < 0 {
			return fmt.Errorf("solver params must be >= 0")
		}
		if p.CrossoverProb < 0 || p.CrossoverProb > 1 {
			return fmt.Errorf("crossoverProb must be in [0,1]")
		}
		if p.MutationProb < 0 || p.MutationProb > 1 {
			return fmt.Errorf("mutationProb must be in [0,1]")
		}
		if p.ImbalanceWeight < 0 {
			return fmt.Errorf("imbalanceWeight must be >= 0")
		}
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
