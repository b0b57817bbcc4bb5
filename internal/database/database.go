package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"favornet/server/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// Store is the Postgres implementation of repository.Store
type Store struct {
	pool *pgxpool.Pool
}

var _ repository.Store = (*Store)(nil)

// Connect opens a connection pool, checks it and applies the schema
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	slog.Info("database: connected", "max_conns", pool.Config().MaxConns)
	return New(pool), nil
}

// New wraps an existing pool
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Migrate creates tables and indexes when missing
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i, err)
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id               TEXT PRIMARY KEY,
		seq              BIGSERIAL,
		name             TEXT NOT NULL,
		number           TEXT NOT NULL UNIQUE,
		connections      TEXT[] NOT NULL DEFAULT '{}',
		community_groups TEXT[] NOT NULL DEFAULT '{}'
	)`,
	`CREATE TABLE IF NOT EXISTS groups (
		id      TEXT PRIMARY KEY,
		seq     BIGSERIAL,
		user_id TEXT NOT NULL,
		name    TEXT NOT NULL,
		members TEXT[] NOT NULL DEFAULT '{}'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_groups_user_id ON groups (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_groups_members ON groups USING GIN (members)`,
	`CREATE TABLE IF NOT EXISTS community_groups (
		id   TEXT PRIMARY KEY,
		seq  BIGSERIAL,
		name TEXT NOT NULL,
		lat  DOUBLE PRECISION NOT NULL,
		lng  DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS requests (
		id                       TEXT PRIMARY KEY,
		seq                      BIGSERIAL,
		user_id                  TEXT NOT NULL,
		date                     TIMESTAMPTZ NOT NULL,
		description              TEXT NOT NULL,
		duration                 TEXT NOT NULL,
		location                 TEXT NOT NULL,
		creation_date            TIMESTAMPTZ NOT NULL,
		network_connections      TEXT[] NOT NULL DEFAULT '{}',
		network_groups           TEXT[] NOT NULL DEFAULT '{}',
		network_community_groups TEXT[] NOT NULL DEFAULT '{}',
		accepted_id              TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_requests_user_id ON requests (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_requests_network_connections ON requests USING GIN (network_connections)`,
	`CREATE INDEX IF NOT EXISTS idx_requests_network_groups ON requests USING GIN (network_groups)`,
}

// notFound maps pgx.ErrNoRows onto the repository sentinel
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// ids keeps array columns NOT NULL
func ids(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// affected turns an update touching no row into ErrNotFound
func affected(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
