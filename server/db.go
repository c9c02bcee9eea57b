package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns = 5
	cfg.MinConns = 1
	cfg.MaxConnLifetime = time.Hour
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}
	return pool, nil
}

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS code_tables (
  id TEXT PRIMARY KEY,
  codes JSONB NOT NULL,
  stats JSONB NOT NULL,
  created_at TIMESTAMPTZ NOT NULL
)`)
	return err
}

type tableRepoPostgres struct {
	pool *pgxpool.Pool
}

func NewTableRepoPostgres(pool *pgxpool.Pool) TableRepo {
	return &tableRepoPostgres{pool: pool}
}

func (r *tableRepoPostgres) Save(ctx context.Context, t *Table) error {
	codes, err := json.Marshal(t.Codes)
	if err != nil {
		return err
	}
	stats, err := json.Marshal(t.Stats)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO code_tables (id, codes, stats, created_at) VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET codes = EXCLUDED.codes, stats = EXCLUDED.stats`,
		t.ID, codes, stats, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("save table %s: %w", t.ID, err)
	}
	return nil
}

func (r *tableRepoPostgres) FindByID(ctx context.Context, id string) (*Table, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, codes, stats, created_at FROM code_tables WHERE id = $1`, id)
	t, err := scanTable(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

func (r *tableRepoPostgres) List(ctx context.Context) ([]*Table, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, codes, stats, created_at FROM code_tables ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*Table, 0)
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTable(row pgx.Row) (*Table, error) {
	var (
		t            Table
		codes, stats []byte
	)
	if err := row.Scan(&t.ID, &codes, &stats, &t.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(codes, &t.Codes); err != nil {
		return nil, fmt.Errorf("decode codes of %s: %w", t.ID, err)
	}
	if err := json.Unmarshal(stats, &t.Stats); err != nil {
		return nil, fmt.Errorf("decode stats of %s: %w", t.ID, err)
	}
	return &t, nil
}
