package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"darwindispatch/internal/buildinfo"
	"darwindispatch/internal/metrics"
	"darwindispatch/internal/model"
	"darwindispatch/internal/opt"
	"darwindispatch/internal/store"
)

// ProblemsHandler handles POST/GET /v1/problems.
func (s *Server) ProblemsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var in model.ProblemIn
		if !decodeJSON(w, r, &in) {
			return
		}
		if err := validateProblem(&in); err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid problem", err.Error(), r.URL.Path)
			return
		}
		out, err := s.Store.CreateProblem(r.Context(), in)
		if err != nil {
			writeProblem(w, http.StatusInternalServerError, "Create failed", err.Error(), r.URL.Path)
			return
		}
		writeJSON(w, http.StatusCreated, out)
	case http.MethodGet:
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		items, err := s.Store.ListProblems(r.Context(), limit)
		if err != nil {
			writeProblem(w, http.StatusInternalServerError, "List failed", err.Error(), r.URL.Path)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// ProblemByIDHandler handles /v1/problems/{id} and /v1/problems/{id}/params.
func (s *Server) ProblemByIDHandler(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/problems/")
	if rest == r.URL.Path || rest == "" {
		writeProblem(w, http.StatusNotFound, "Not Found", "missing id", r.URL.Path)
		return
	}
	parts := strings.Split(rest, "/")
	id := parts[0]

	if len(parts) == 2 && parts[1] == "params" {
		s.solverParams(w, r, id)
		return
	}
	if len(parts) != 1 {
		writeProblem(w, http.StatusNotFound, "Not Found", "", r.URL.Path)
		return
	}
	switch r.Method {
	case http.MethodGet:
		p, err := s.Store.GetProblem(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "unknown problem", r.URL.Path)
			return
		}
		if err != nil {
			writeProblem(w, http.StatusInternalServerError, "Get failed", err.Error(), r.URL.Path)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodDelete:
		err := s.Store.DeleteProblem(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "unknown problem", r.URL.Path)
			return
		}
		if err != nil {
			writeProblem(w, http.StatusInternalServerError, "Delete failed", err.Error(), r.URL.Path)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) solverParams(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		p, err := s.Store.GetSolverParams(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "unknown problem", r.URL.Path)
			return
		}
		if err != nil {
			writeProblem(w, http.StatusInternalServerError, "Get failed", err.Error(), r.URL.Path)
			return
		}
		if p == nil {
			p = &model.SolverParams{}
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodPut:
		var p model.SolverParams
		if !decodeJSON(w, r, &p) {
			return
		}
		if err := validateSolveRequest(&model.SolveRequest{ProblemID: id, Params: &p}); err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid params", err.Error(), r.URL.Path)
			return
		}
		err := s.Store.SaveSolverParams(r.Context(), id, p)
		if errors.Is(err, store.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "unknown problem", r.URL.Path)
			return
		}
		if err != nil {
			writeProblem(w, http.StatusInternalServerError, "Save failed", err.Error(), r.URL.Path)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// SolveHandler handles POST /v1/solve.
func (s *Server) SolveHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req model.SolveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateSolveRequest(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid solve request", err.Error(), r.URL.Path)
		return
	}

	var problem model.ProblemIn
	if req.ProblemID != "" {
		stored, err := s.Store.GetProblem(r.Context(), req.ProblemID)
		if errors.Is(err, store.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "unknown problem", r.URL.Path)
			return
		}
		if err != nil {
			writeProblem(w, http.StatusInternalServerError, "Get failed", err.Error(), r.URL.Path)
			return
		}
		problem = model.ProblemIn{Name: stored.Name, Depot: stored.Depot, Locations: stored.Locations, Vehicles: stored.Vehicles}
	} else {
		problem = *req.Problem
	}

	cfg := s.Defaults
	if req.ProblemID != "" {
		if stored, err := s.Store.GetSolverParams(r.Context(), req.ProblemID); err == nil && stored != nil {
			applyParams(&cfg, stored)
		}
	}
	applyParams(&cfg, req.Params)
	if err := cfg.Validate(); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid solver config", err.Error(), r.URL.Path)
		return
	}

	runID := uuid.NewString()
	if req.Stream {
		go s.runSolve(context.Background(), runID, problem, cfg)
		writeJSON(w, http.StatusAccepted, model.SolveAccepted{RunID: runID, Status: "running"})
		return
	}
	resp, err := s.runSolve(r.Context(), runID, problem, cfg)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, opt.ErrInvalidConfig) || errors.Is(err, opt.ErrDegenerateInput) {
			status = http.StatusBadRequest
		}
		writeProblem(w, status, "Solve failed", err.Error(), r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// applyParams overlays non-zero overrides onto cfg.
func applyParams(cfg *opt.Config, p *model.SolverParams) {
	if p == nil {
		return
	}
	if p.PopulationSize > 0 {
		cfg.PopulationSize = p.PopulationSize
	}
	if p.MaxGenerations > 0 {
		cfg.MaxGenerations = p.MaxGenerations
	}
	if p.StagnationLimit > 0 {
		cfg.StagnationLimit = p.StagnationLimit
	}
	if p.CrossoverProb > 0 {
		cfg.CrossoverProb = p.CrossoverProb
	}
	if p.MutationProb > 0 {
		cfg.MutationProb = p.MutationProb
	}
	if p.TournamentSize > 0 {
		cfg.TournamentSize = p.TournamentSize
	}
	if p.ImbalanceWeight > 0 {
		cfg.ImbalanceWeight = p.ImbalanceWeight
	}
	if p.Workers > 0 {
		cfg.Workers = p.Workers
	}
	if p.Seed != 0 {
		cfg.Seed = p.Seed
	}
}

// runSolve executes the engine, streams per-generation progress on the
// run's channel and records run metrics.
func (s *Server) runSolve(ctx context.Context, runID string, in model.ProblemIn, cfg opt.Config) (model.SolveResponse, error) {
	problem := toOptProblem(in)
	cfg.Progress = func(g opt.GenerationStats) {
		s.Broker.Publish(runID, Event{Type: "solve.progress", Data: map[string]any{
			"runId":      runID,
			"generation": g.Generation,
			"best":       g.Best,
			"avg":        g.Avg,
		}})
	}
	sol, m, err := opt.Solve(ctx, problem, cfg)
	if err != nil {
		metrics.SolveRuns.WithLabelValues("error").Inc()
		s.Broker.Publish(runID, Event{Type: "solve.failed", Data: map[string]any{"runId": runID, "error": err.Error()}})
		return model.SolveResponse{}, err
	}
	opt.RecordMetrics(runID, m)
	metrics.SolveRuns.WithLabelValues("ok").Inc()
	metrics.SolveGenerations.Add(float64(m.Generations))
	metrics.SolveDuration.Observe(m.Elapsed.Seconds())
	metrics.SolveBestFitness.Set(m.BestFitness)

	resp := toSolveResponse(runID, in, sol, m)
	s.Broker.Publish(runID, Event{Type: "solve.completed", Data: map[string]any{
		"runId":         runID,
		"fitness":       sol.Fitness,
		"totalDistance": sol.TotalDistance,
		"imbalance":     sol.Imbalance,
		"generations":   m.Generations,
		"foundAt":       sol.FoundAt,
	}})
	return resp, nil
}

// SolveOnce runs the engine synchronously with no broker or store
// involved. The CLI entry point uses it.
func SolveOnce(ctx context.Context, in model.ProblemIn, cfg opt.Config) (model.SolveResponse, error) {
	if err := validateProblem(&in); err != nil {
		return model.SolveResponse{}, fmt.Errorf("%w: %s", opt.ErrInvalidConfig, err)
	}
	sol, m, err := opt.Solve(ctx, toOptProblem(in), cfg)
	if err != nil {
		return model.SolveResponse{}, err
	}
	return toSolveResponse(uuid.NewString(), in, sol, m), nil
}

func toOptProblem(in model.ProblemIn) opt.Problem {
	stops := make([]opt.Stop, len(in.Locations))
	for i, l := range in.Locations {
		stops[i] = opt.Stop{ID: l.ID, X: l.X, Y: l.Y}
	}
	return opt.Problem{
		Depot:    opt.Stop{ID: in.Depot.ID, X: in.Depot.X, Y: in.Depot.Y},
		Stops:    stops,
		Vehicles: in.Vehicles,
	}
}

func toSolveResponse(runID string, in model.ProblemIn, sol opt.Solution, m opt.Metrics) model.SolveResponse {
	routes := make([]model.RouteOut, len(sol.Routes))
	for i, rt := range sol.Routes {
		stops := make([]model.RouteStop, len(rt.Stops))
		for j, idx := range rt.Stops {
			l := in.Locations[idx]
			stops[j] = model.RouteStop{Index: idx, ID: l.ID, X: l.X, Y: l.Y}
		}
		routes[i] = model.RouteOut{Vehicle: rt.Vehicle, Depot: in.Depot, Stops: stops, Distance: rt.Distance}
	}
	return model.SolveResponse{
		RunID:         runID,
		Chromosome:    sol.Chromosome,
		Routes:        routes,
		TotalDistance: sol.TotalDistance,
		Imbalance:     sol.Imbalance,
		Fitness:       sol.Fitness,
		FoundAt:       sol.FoundAt,
		Generations:   m.Generations,
		ElapsedMs:     m.Elapsed.Milliseconds(),
		Seed:          m.Seed,
	}
}

// SolverConfigHandler returns the effective default hyperparameters.
func (s *Server) SolverConfigHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	d := s.Defaults
	writeJSON(w, http.StatusOK, map[string]any{"defaults": map[string]any{
		"populationSize":  d.PopulationSize,
		"maxGenerations":  d.MaxGenerations,
		"stagnationLimit": d.StagnationLimit,
		"crossoverProb":   d.CrossoverProb,
		"mutationProb":    d.MutationProb,
		"tournamentSize":  d.TournamentSize,
		"imbalanceWeight": d.ImbalanceWeight,
		"workers":         d.Workers,
	}})
}

// RunMetricsHandler serves GET /v1/admin/run-metrics[?runId=].
func (s *Server) RunMetricsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if runID := r.URL.Query().Get("runId"); runID != "" {
		m, ok := opt.GetMetrics(runID)
		if !ok {
			writeProblem(w, http.StatusNotFound, "Not Found", "unknown run", r.URL.Path)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"runId": runID, "metrics": m})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": opt.ListMetrics()})
}

// HealthHandler reports liveness and build info.
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "build": buildinfo.Info()})
}

// ReadyHandler reports readiness.
func (s *Server) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
