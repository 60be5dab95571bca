package api

import (
	"os"
	"strings"

	"darwindispatch/internal/config"
	"darwindispatch/internal/opt"
	"darwindispatch/internal/store"
)

type Server struct {
	Store    store.Store
	Broker   EventBroker
	Defaults opt.Config
}

// NewServer wires the store and event broker from the environment: a
// Postgres store when DATABASE_URL is set (in-memory otherwise), a Redis
// broker when REDIS_URL is set.
func NewServer(cfg config.Config) (*Server, error) {
	var st store.Store
	if dsn := strings.TrimSpace(os.Getenv("DATABASE_URL")); dsn == "" {
		st = store.NewMemory()
	} else {
		pg, err := store.NewPostgres(dsn)
		if err != nil {
			return nil, err
		}
		st = pg
	}

	var broker EventBroker
	if os.Getenv("REDIS_URL") != "" {
		if rb, err := NewRedisBroker(os.Getenv("REDIS_URL")); err == nil {
			broker = rb
		} else {
			broker = NewBroker()
		}
	} else {
		broker = NewBroker()
	}

	return &Server{Store: st, Broker: broker, Defaults: cfg.SolverDefaults()}, nil
}
