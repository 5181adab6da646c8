package database

import (
	"context"
	"fmt"
	"time"

	"github.com/stwalsh4118/apartments/internal/config"
	"github.com/stwalsh4118/apartments/internal/logger"
	"github.com/stwalsh4118/apartments/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MemoryPath opens a private in-memory SQLite database.
const MemoryPath = ":memory:"

// sqliteBusyTimeout is how long a writer waits for SQLite's lock before failing.
const sqliteBusyTimeout = 5 * time.Second

// SQLiteDSN builds the go-sqlite3 connection string for path.
func SQLiteDSN(path string) string {
	if path == MemoryPath {
		return path
	}
	return fmt.Sprintf("%s?_busy_timeout=%d&_foreign_keys=on", path, sqliteBusyTimeout.Milliseconds())
}

// NewSQLite opens the single-file SQLite database at cfg.Path through GORM.
// The file is created on first use if it does not exist.
func NewSQLite(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (*Database, error) {
	gormConfig := &gorm.Config{}
	if log != nil {
		gormConfig.Logger = logger.NewGormLogger(log)
	}

	gdb, err := gorm.Open(sqlite.Open(SQLiteDSN(cfg.Path)), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %q: %w", cfg.Path, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Each connection to ":memory:" is its own database.
	maxConns := cfg.PoolMax
	if cfg.Path == MemoryPath || maxConns < 1 {
		maxConns = 1
	}
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetMaxIdleConns(maxConns)
	if cfg.Path != MemoryPath {
		sqlDB.SetConnMaxLifetime(1 * time.Hour)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	return &Database{Driver: config.DriverSQLite, Gorm: gdb}, nil
}

// Session returns a GORM session bound to ctx, so a cancelled request
// cancels its statements. The session holds no connection between calls.
func (db *Database) Session(ctx context.Context) (*gorm.DB, error) {
	if db.isClosed() || db.Gorm == nil {
		return nil, ErrClosed
	}
	return db.Gorm.WithContext(ctx), nil
}

func ensureSQLiteSchema(ctx context.Context, gdb *gorm.DB) error {
	if err := gdb.WithContext(ctx).AutoMigrate(&models.Apartment{}); err != nil {
		return fmt.Errorf("failed to create appartments table: %w", err)
	}
	return nil
}
