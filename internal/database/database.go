package database

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stwalsh4118/apartments/internal/config"
	"github.com/stwalsh4118/apartments/internal/logger"
	"gorm.io/gorm"
)

// ErrClosed is returned by operations on a closed Database.
var ErrClosed = errors.New("database is closed")

// Database owns the process-wide connection pool for the configured driver.
// Exactly one of Pool (postgres) or Gorm (sqlite) is set.
type Database struct {
	Driver string
	Pool   *pgxpool.Pool
	Gorm   *gorm.DB

	closeOnce sync.Once
	closed    bool
	mu        sync.RWMutex
}

// Open connects to the database selected by cfg.Driver and verifies the connection.
// Connection failures are returned to the caller, which treats them as fatal.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (*Database, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return NewSQLite(ctx, cfg, log)
	case config.DriverPostgres:
		return NewPostgresPool(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Ping checks if the database connection is alive.
func (db *Database) Ping(ctx context.Context) error {
	if db.isClosed() {
		return ErrClosed
	}

	switch {
	case db.Pool != nil:
		return db.Pool.Ping(ctx)
	case db.Gorm != nil:
		sqlDB, err := db.Gorm.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		return sqlDB.PingContext(ctx)
	default:
		return ErrClosed
	}
}

// EnsureSchema creates the apartments table if it does not exist.
// It is idempotent and meant to run once at startup, not per request.
func (db *Database) EnsureSchema(ctx context.Context) error {
	if db.isClosed() {
		return ErrClosed
	}

	switch {
	case db.Pool != nil:
		return ensurePostgresSchema(ctx, db.Pool)
	case db.Gorm != nil:
		return ensureSQLiteSchema(ctx, db.Gorm)
	default:
		return ErrClosed
	}
}

// PoolStats is a driver-neutral snapshot of connection pool usage.
type PoolStats struct {
	MaxConns      int `json:"max_conns"`
	TotalConns    int `json:"total_conns"`
	AcquiredConns int `json:"acquired_conns"`
	IdleConns     int `json:"idle_conns"`
}

// Stats returns the current pool usage. A closed Database reports zeroes.
func (db *Database) Stats() PoolStats {
	if db.isClosed() {
		return PoolStats{}
	}

	switch {
	case db.Pool != nil:
		stat := db.Pool.Stat()
		return PoolStats{
			MaxConns:      int(stat.MaxConns()),
			TotalConns:    int(stat.TotalConns()),
			AcquiredConns: int(stat.AcquiredConns()),
			IdleConns:     int(stat.IdleConns()),
		}
	case db.Gorm != nil:
		sqlDB, err := db.Gorm.DB()
		if err != nil {
			return PoolStats{}
		}
		stat := sqlDB.Stats()
		return PoolStats{
			MaxConns:      stat.MaxOpenConnections,
			TotalConns:    stat.OpenConnections,
			AcquiredConns: stat.InUse,
			IdleConns:     stat.Idle,
		}
	default:
		return PoolStats{}
	}
}

// Close releases every pooled connection. Calling Close more than once is safe.
func (db *Database) Close() {
	db.closeOnce.Do(func() {
		db.mu.Lock()
		db.closed = true
		db.mu.Unlock()

		if db.Pool != nil {
			db.Pool.Close()
		}
		if db.Gorm != nil {
			if sqlDB, err := db.Gorm.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
	})
}

func (db *Database) isClosed() bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.closed
}
