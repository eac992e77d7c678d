package index

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConfig mirrors the pool knobs we expose through the environment.
type PostgresConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	HealthTimeout   time.Duration
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS product_index (
	id          BIGSERIAL PRIMARY KEY,
	alias       TEXT NOT NULL UNIQUE,
	document_id TEXT NOT NULL
);`

// PostgresStore keeps the index in Postgres behind a pgx pool. Snapshot
// order is insertion order.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func OpenPostgres(ctx context.Context, cfg PostgresConfig, logger *slog.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		pc.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		pc.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	timeout := cfg.HealthTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	logger.Info("postgres index store ready")
	return &PostgresStore{pool: pool, logger: logger}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Snapshot(ctx context.Context) ([]Entry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT alias, document_id FROM product_index ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.DocumentID); err != nil {
			return nil, fmt.Errorf("scan index row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) Put(ctx context.Context, key, documentID string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO product_index (alias, document_id) VALUES ($1, $2)
		 ON CONFLICT (alias) DO UPDATE SET document_id = EXCLUDED.document_id`,
		key, documentID)
	if err != nil {
		return fmt.Errorf("put index entry: %w", err)
	}
	return nil
}
