// Package db wraps the Postgres datastore the worker reads tasks from and
// writes matches, caches, and health metrics to.
package db

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the pgx-backed connection pool shared by every subsystem that
// touches Postgres: tasks, matches, caches, settings, health metrics.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens the connection pool and verifies connectivity with a ping.
// Ping failure here is the one scheduler-fatal condition (spec §7): the
// caller is expected to log.Fatalf and exit non-zero.
func Connect(ctx context.Context, connStr string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping failed: %w", err)
	}
	log.Println("[DB] connected to Postgres")
	return &Store{pool: pool}, nil
}

// Close releases the pool. Safe to call on a nil Store.
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// Pool exposes the raw pool for callers that need a feature this package
// doesn't wrap directly (e.g. a one-off migration script).
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// InitSchema applies internal/db/schema.sql. The path is relative to the
// process working directory, matching how the worker is expected to be run
// (from the module root), and can be overridden with SCHEMA_PATH.
func (s *Store) InitSchema(ctx context.Context) error {
	path := os.Getenv("SCHEMA_PATH")
	if path == "" {
		path = "internal/db/schema.sql"
	}
	schemaBytes, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}
	if _, err := s.pool.Exec(ctx, string(schemaBytes)); err != nil {
		return fmt.Errorf("failed to execute schema migrations: %w", err)
	}
	log.Println("[DB] schema initialized")
	return nil
}
