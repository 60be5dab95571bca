package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"darwindispatch/internal/api"
	"darwindispatch/internal/config"
	"darwindispatch/internal/metrics"
	"darwindispatch/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	srv, err := api.NewServer(cfg)
	if err != nil {
		log.Fatalf("failed to init server: %v", err)
	}
	if pg, ok := srv.Store.(*store.Postgres); ok && os.Getenv("DB_MIGRATE") != "false" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := pg.Migrate(ctx); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
		cancel()
	}
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	// Problems
	mux.HandleFunc("/v1/problems", srv.ProblemsHandler)
	mux.HandleFunc("/v1/problems/", srv.ProblemByIDHandler)

	// Solver
	mux.HandleFunc("/v1/solve", srv.SolveHandler)
	mux.HandleFunc("/v1/solver/config", srv.SolverConfigHandler)

	// Run progress streams (SSE + WebSocket)
	mux.HandleFunc("/v1/runs/", srv.RunByIDHandler)

	// Health
	mux.HandleFunc("/healthz", srv.HealthHandler)
	mux.HandleFunc("/readyz", srv.ReadyHandler)

	// Admin & observability
	mux.HandleFunc("/v1/admin/run-metrics", srv.RunMetricsHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	handler := api.RateLimit(api.Instrument(mux), cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("API listening on %s", cfg.Server.Addr)
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
