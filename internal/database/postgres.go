package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stwalsh4118/apartments/internal/config"
)

const createApartmentsTablePostgres = `
	CREATE TABLE IF NOT EXISTS appartments (
		id              BIGSERIAL PRIMARY KEY,
		appartment_type VARCHAR(32) NOT NULL,
		num_rooms       INTEGER NOT NULL,
		floor_area      DOUBLE PRECISION NOT NULL,
		floor           INTEGER NOT NULL,
		improvement     TEXT NOT NULL,
		address         TEXT NOT NULL
	)
`

// PostgresDSN builds the connection string for cfg.
func PostgresDSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Name,
	)
}

// NewPostgresPool creates a new PostgreSQL connection pool using pgx.
// It configures the pool based on the provided database configuration,
// tests the connection, and returns a Database instance.
func NewPostgresPool(ctx context.Context, cfg config.DatabaseConfig) (*Database, error) {
	poolConfig, err := pgxpool.ParseConfig(PostgresDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MinConns = int32(cfg.PoolMin)
	poolConfig.MaxConns = int32(cfg.PoolMax)

	poolConfig.ConnConfig.ConnectTimeout = 5 * time.Second
	poolConfig.MaxConnIdleTime = 30 * time.Second
	poolConfig.MaxConnLifetime = 1 * time.Hour
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{Driver: config.DriverPostgres, Pool: pool}, nil
}

// Acquire checks a connection out of the pool for the duration of one
// request. Callers must Release it on every exit path.
func (db *Database) Acquire(ctx context.Context) (*pgxpool.Conn, error) {
	if db.isClosed() || db.Pool == nil {
		return nil, ErrClosed
	}
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	return conn, nil
}

func ensurePostgresSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, createApartmentsTablePostgres); err != nil {
		return fmt.Errorf("failed to create appartments table: %w", err)
	}
	return nil
}
