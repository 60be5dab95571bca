package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"darwindispatch/internal/opt"
)

// Config is the process configuration: the listen address, rate limiting
// for the API, and the solver hyperparameter defaults. It comes from an
// optional YAML file with env overrides on top (PORT wins over the file,
// matching container conventions).
type Config struct {
	Server ServerConfig `yaml:"server"`
	Solver SolverConfig `yaml:"solver"`
}

type ServerConfig struct {
	Addr           string  `yaml:"addr"`
	RateLimitRPS   float64 `yaml:"rateLimitRps"`
	RateLimitBurst int     `yaml:"rateLimitBurst"`
}

// SolverConfig mirrors opt.Config with yaml tags; zero fields keep the
// engine defaults.
type SolverConfig struct {
	PopulationSize  int     `yaml:"populationSize"`
	MaxGenerations  int     `yaml:"maxGenerations"`
	StagnationLimit int     `yaml:"stagnationLimit"`
	CrossoverProb   float64 `yaml:"crossoverProb"`
	MutationProb    float64 `yaml:"mutationProb"`
	TournamentSize  int     `yaml:"tournamentSize"`
	ImbalanceWeight float64 `yaml:"imbalanceWeight"`
	Workers         int     `yaml:"workers"`
}

// Load reads the YAML file at path when it exists, then applies env
// overrides. An empty path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Config{
		Server: ServerConfig{Addr: ":8080", RateLimitRPS: 50, RateLimitBurst: 100},
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
	return cfg, nil
}

// SolverDefaults folds the configured solver overrides into the engine
// defaults.
func (c Config) SolverDefaults() opt.Config {
	out := opt.DefaultConfig()
	s := c.Solver
	if s.PopulationSize > 0 {
		out.PopulationSize = s.PopulationSize
	}
	if s.MaxGenerations > 0 {
		out.MaxGenerations = s.MaxGenerations
	}
	if s.StagnationLimit > 0 {
		out.StagnationLimit = s.StagnationLimit
	}
	if s.CrossoverProb > 0 {
		out.CrossoverProb = s.CrossoverProb
	}
	if s.MutationProb > 0 {
		out.MutationProb = s.MutationProb
	}
	if s.TournamentSize > 0 {
		out.TournamentSize = s.TournamentSize
	}
	if s.ImbalanceWeight > 0 {
		out.ImbalanceWeight = s.ImbalanceWeight
	}
	if s.Workers > 0 {
		out.Workers = s.Workers
	}
	return out
}
