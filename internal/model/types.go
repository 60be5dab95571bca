package model

// API data transfer types.

// LocationIn is one point in a problem dataset.
type LocationIn struct {
	ID string  `json:"id,omitempty"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// ProblemIn creates a problem dataset: a depot, delivery locations and a
// fleet size.
type ProblemIn struct {
	Name      string       `json:"name,omitempty"`
	Depot     LocationIn   `json:"depot"`
	Locations []LocationIn `json:"locations"`
	Vehicles  int          `json:"vehicles"`
}

// ProblemOut is a stored problem dataset.
type ProblemOut struct {
	ID        string       `json:"id"`
	Name      string       `json:"name,omitempty"`
	Depot     LocationIn   `json:"depot"`
	Locations []LocationIn `json:"locations"`
	Vehicles  int          `json:"vehicles"`
	CreatedAt string       `json:"createdAt,omitempty"`
}

// SolverParams are the GA hyperparameter overrides a caller may supply.
// Zero values fall back to the server defaults.
type SolverParams struct {
	PopulationSize  int     `json:"populationSize,omitempty"`
	MaxGenerations  int     `json:"maxGenerations,omitempty"`
	StagnationLimit int     `json:"stagnationLimit,omitempty"`
	CrossoverProb   float64 `json:"crossoverProb,omitempty"`
	MutationProb    float64 `json:"mutationProb,omitempty"`
	TournamentSize  int     `json:"tournamentSize,omitempty"`
	ImbalanceWeight float64 `json:"imbalanceWeight,omitempty"`
	Workers         int     `json:"workers,omitempty"`
	Seed            int64   `json:"seed,omitempty"`
}

// SolveRequest runs the engine over a stored problem (by id) or an inline
// one. Stream=true returns immediately and publishes progress events on
// the run's channel instead.
type SolveRequest struct {
	ProblemID string        `json:"problemId,omitempty"`
	Problem   *ProblemIn    `json:"problem,omitempty"`
	Params    *SolverParams `json:"params,omitempty"`
	Stream    bool          `json:"stream,omitempty"`
}

// RouteStop is a delivery stop resolved to its coordinates.
type RouteStop struct {
	Index int     `json:"index"`
	ID    string  `json:"id,omitempty"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// RouteOut is one vehicle's decoded route. Stops excludes the depot; the
// Depot field bounds the route at both ends.
type RouteOut struct {
	Vehicle  int         `json:"vehicle"`
	Depot    LocationIn  `json:"depot"`
	Stops    []RouteStop `json:"stops"`
	Distance float64     `json:"distance"`
}

// SolveResponse is a finished run.
type SolveResponse struct {
	RunID         string     `json:"runId"`
	Chromosome    []int      `json:"chromosome"`
	Routes        []RouteOut `json:"routes"`
	TotalDistance float64    `json:"totalDistance"`
	Imbalance     float64    `json:"imbalance"`
	Fitness       float64    `json:"fitness"`
	FoundAt       int        `json:"foundAtGeneration"`
	Generations   int        `json:"generations"`
	ElapsedMs     int64      `json:"elapsedMs"`
	Seed          int64      `json:"seed"`
}

// SolveAccepted acknowledges a streaming run.
type SolveAccepted struct {
	RunID  string `json:"runId"`
	Status string `json:"status"`
}
