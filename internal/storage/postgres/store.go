package postgres

import (
	"context"
	"fmt"

	"github.com/fintrack-ai/fintrack-be/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure Store satisfies the storage interfaces at compile time.
var (
	_ storage.UserStore       = (*Store)(nil)
	_ storage.RecordStore     = (*Store)(nil)
	_ storage.ReadOnlyQuerier = (*Store)(nil)
)

// Store provides Postgres-backed persistence for users and financial
// records. The underlying pool is safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

// New connects the pool, verifies the database is reachable, and runs
// migrations. Fails fast if the database cannot be reached.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Ping checks that the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			credit_score INTEGER NOT NULL DEFAULT 750,
			epf_balance NUMERIC(18,2) NOT NULL DEFAULT 0,
			perm_assets BOOLEAN NOT NULL DEFAULT TRUE,
			perm_liabilities BOOLEAN NOT NULL DEFAULT TRUE,
			perm_transactions BOOLEAN NOT NULL DEFAULT TRUE,
			perm_investments BOOLEAN NOT NULL DEFAULT TRUE,
			perm_credit_score BOOLEAN NOT NULL DEFAULT TRUE,
			perm_epf_balance BOOLEAN NOT NULL DEFAULT TRUE
		);`,
		`CREATE TABLE IF NOT EXISTS assets (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			type TEXT,
			value NUMERIC(18,2) NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS liabilities (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			type TEXT,
			outstanding_balance NUMERIC(18,2) NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS investments (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			ticker TEXT,
			type TEXT,
			quantity NUMERIC(18,4),
			current_value NUMERIC(18,2) NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
			date DATE NOT NULL,
			description TEXT,
			category TEXT NOT NULL,
			amount NUMERIC(18,2) NOT NULL,
			type TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS transactions_user_date_idx ON transactions (user_id, date DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}
