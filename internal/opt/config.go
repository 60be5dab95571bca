package opt

import "fmt"

// Config holds the GA hyperparameters. Zero values are filled in by
// DefaultConfig; Validate runs before the evolution loop starts.
type Config struct {
	PopulationSize  int
	MaxGenerations  int
	StagnationLimit int
	CrossoverProb   float64
	MutationProb    float64
	TournamentSize  int
	ImbalanceWeight float64 // weight of the workload-imbalance objective
	Elitism         bool
	Workers         int // fitness evaluation fan-out; <=1 evaluates serially
	Seed            int64

	// Progress, when set, is called after every generation with that
	// generation's stats. Used by the API to stream solve progress.
	Progress func(GenerationStats) `json:"-" yaml:"-"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		PopulationSize:  200,
		MaxGenerations:  300,
		StagnationLimit: 20,
		CrossoverProb:   0.7,
		MutationProb:    0.05,
		TournamentSize:  3,
		ImbalanceWeight: 1.0,
		Elitism:         true,
	}
}

// Validate reports the first invalid hyperparameter, wrapped in
// ErrInvalidConfig.
func (c Config) Validate() error {
	if c.PopulationSize < 2 {
		return fmt.Errorf("%w: population size must be >= 2 (got %d)", ErrInvalidConfig, c.PopulationSize)
	}
	if c.MaxGenerations < 1 {
		return fmt.Errorf("%w: max generations must be >= 1 (got %d)", ErrInvalidConfig, c.MaxGenerations)
	}
	if c.StagnationLimit < 1 {
		return fmt.Errorf("%w: stagnation limit must be >= 1 (got %d)", ErrInvalidConfig, c.StagnationLimit)
	}
	if c.CrossoverProb < 0 || c.CrossoverProb > 1 {
		return fmt.Errorf("%w: crossover probability must be in [0,1] (got %v)", ErrInvalidConfig, c.CrossoverProb)
	}
	if c.MutationProb < 0 || c.MutationProb > 1 {
		return fmt.Errorf("%w: mutation probability must be in [0,1] (got %v)", ErrInvalidConfig, c.MutationProb)
	}
	if c.TournamentSize < 2 {
		return fmt.Errorf("%w: tournament size must be >= 2 (got %d)", ErrInvalidConfig, c.TournamentSize)
	}
	if c.TournamentSize > c.PopulationSize {
		return fmt.Errorf("%w: tournament size %d exceeds population size %d", ErrInvalidConfig, c.TournamentSize, c.PopulationSize)
	}
	if c.ImbalanceWeight < 0 {
		return fmt.Errorf("%w: imbalance weight must be >= 0 (got %v)", ErrInvalidConfig, c.ImbalanceWeight)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0 (got %d)", ErrInvalidConfig, c.Workers)
	}
	return nil
}
