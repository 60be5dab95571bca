package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"darwindispatch/internal/model"
)

// Postgres stores problem datasets in a single table, locations as JSONB.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &Postgres{db: db}, nil
}

// Migrate creates the schema if missing. Dev helper, mirrors what a real
// deployment would run out of band.
func (p *Postgres) Migrate(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS problems (
    id         UUID PRIMARY KEY,
    name       TEXT NOT NULL DEFAULT '',
    depot      JSONB NOT NULL,
    locations  JSONB NOT NULL,
    vehicles   INT NOT NULL,
    solver_params JSONB,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`)
	return err
}

func (p *Postgres) CreateProblem(ctx context.Context, in model.ProblemIn) (model.ProblemOut, error) {
	id := uuid.New()
	depot, err := json.Marshal(in.Depot)
	if err != nil {
		return model.ProblemOut{}, err
	}
	locs, err := json.Marshal(in.Locations)
	if err != nil {
		return model.ProblemOut{}, err
	}
	var created time.Time
	err = p.db.QueryRowContext(ctx,
		`INSERT INTO problems (id, name, depot, locations, vehicles) VALUES ($1,$2,$3,$4,$5) RETURNING created_at`,
		id, in.Name, depot, locs, in.Vehicles).Scan(&created)
	if err != nil {
		return model.ProblemOut{}, fmt.Errorf("create problem: %w", err)
	}
	return model.ProblemOut{
		ID:        id.String(),
		Name:      in.Name,
		Depot:     in.Depot,
		Locations: in.Locations,
		Vehicles:  in.Vehicles,
		CreatedAt: created.UTC().Format(time.RFC3339),
	}, nil
}

func (p *Postgres) GetProblem(ctx context.Context, id string) (model.ProblemOut, error) {
	row := p.db.QueryRowContext(ctx,
		`SELECT id::text, name, depot, locations, vehicles, created_at FROM problems WHERE id=$1`, id)
	return scanProblem(row)
}

func (p *Postgres) ListProblems(ctx context.Context, limit int) ([]model.ProblemOut, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := p.db.QueryContext(ctx,
		`SELECT id::text, name, depot, locations, vehicles, created_at FROM problems ORDER BY created_at LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.ProblemOut
	for rows.Next() {
		pr, err := scanProblem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	return out, rows.Err()
}

func (p *Postgres) DeleteProblem(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM problems WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) SaveSolverParams(ctx context.Context, problemID string, sp model.SolverParams) error {
	raw, err := json.Marshal(sp)
	if err != nil {
		return err
	}
	res, err := p.db.ExecContext(ctx, `UPDATE problems SET solver_params=$2 WHERE id=$1`, problemID, raw)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) GetSolverParams(ctx context.Context, problemID string) (*model.SolverParams, error) {
	var raw []byte
	err := p.db.QueryRowContext(ctx, `SELECT solver_params FROM problems WHERE id=$1`, problemID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var sp model.SolverParams
	if err := json.Unmarshal(raw, &sp); err != nil {
		return nil, err
	}
	return &sp, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProblem(r rowScanner) (model.ProblemOut, error) {
	var (
		out     model.ProblemOut
		depot   []byte
		locs    []byte
		created time.Time
	)
	err := r.Scan(&out.ID, &out.Name, &depot, &locs, &out.Vehicles, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ProblemOut{}, ErrNotFound
	}
	if err != nil {
		return model.ProblemOut{}, err
	}
	if err := json.Unmarshal(depot, &out.Depot); err != nil {
		return model.ProblemOut{}, err
	}
	if err := json.Unmarshal(locs, &out.Locations); err != nil {
		return model.ProblemOut{}, err
	}
	out.CreatedAt = created.UTC().Format(time.RFC3339)
	return out, nil
}
