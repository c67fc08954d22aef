package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"launchpilot/domain"
)

const createProjectionsTable = `
CREATE TABLE IF NOT EXISTS projections (
	id          UUID PRIMARY KEY,
	input_hash  TEXT NOT NULL,
	inputs      JSONB NOT NULL,
	result      JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS projections_input_hash_idx ON projections (input_hash);
`

// ProjectionRepositoryPostgres persists projections as JSONB documents.
type ProjectionRepositoryPostgres struct {
	pool *pgxpool.Pool
}

// NewPostgresPool parses databaseURL and opens a connection pool.
func NewPostgresPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	return pool, nil
}

func NewProjectionRepositoryPostgres(pool *pgxpool.Pool) *ProjectionRepositoryPostgres {
	return &ProjectionRepositoryPostgres{pool: pool}
}

// EnsureSchema creates the projections table when it does not exist.
func (r *ProjectionRepositoryPostgres) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createProjectionsTable); err != nil {
		return fmt.Errorf("failed to create projections table: %w", err)
	}
	return nil
}

func (r *ProjectionRepositoryPostgres) Save(ctx context.Context, projection domain.Projection) error {
	inputs, err := json.Marshal(projection.Inputs)
	if err != nil {
		return fmt.Errorf("failed to marshal inputs: %w", err)
	}
	result, err := json.Marshal(projection)
	if err != nil {
		return fmt.Errorf("failed to marshal projection: %w", err)
	}

	query := `
		INSERT INTO projections (id, input_hash, inputs, result, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET
			input_hash = EXCLUDED.input_hash,
			inputs = EXCLUDED.inputs,
			result = EXCLUDED.result,
			created_at = EXCLUDED.created_at;
	`
	hash, err := HashInputs(projection.Inputs)
	if err != nil {
		return err
	}
	if _, err := r.pool.Exec(ctx, query, projection.ID, hash, inputs, result, projection.GeneratedAt); err != nil {
		return fmt.Errorf("failed to save projection %s: %w", projection.ID, err)
	}
	return nil
}

func (r *ProjectionRepositoryPostgres) FindByID(ctx context.Context, id string) (domain.Projection, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT result FROM projections WHERE id = $1`, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Projection{}, ErrNotFound
		}
		return domain.Projection{}, fmt.Errorf("failed to load projection %s: %w", id, err)
	}

	var projection domain.Projection
	if err := json.Unmarshal(raw, &projection); err != nil {
		return domain.Projection{}, fmt.Errorf("failed to unmarshal projection %s: %w", id, err)
	}
	return projection, nil
}
