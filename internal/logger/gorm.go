package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultSlowQueryThreshold is the duration above which GORM queries are logged as slow.
const DefaultSlowQueryThreshold = 200 * time.Millisecond

// GormLogger adapts Logger to gorm's logger.Interface so SQL traces end up
// in the same structured stream as the rest of the application.
type GormLogger struct {
	log           *Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger creates a GORM logger backed by log.
// SQL statements are traced only when log emits debug output.
func NewGormLogger(log *Logger) *GormLogger {
	level := gormlogger.Warn
	if log.Level() <= zerolog.DebugLevel {
		level = gormlogger.Info
	}
	return &GormLogger{
		log:           log,
		level:         level,
		slowThreshold: DefaultSlowQueryThreshold,
	}
}

// LogMode returns a copy of the logger with the given level.
func (g *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *g
	clone.level = level
	return &clone
}

// Info logs GORM informational messages.
func (g *GormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Info {
		g.log.Info(fmt.Sprintf(msg, args...), map[string]interface{}{"component": "gorm"})
	}
}

// Warn logs GORM warnings.
func (g *GormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Warn {
		g.log.Warn(fmt.Sprintf(msg, args...), map[string]interface{}{"component": "gorm"})
	}
}

// Error logs GORM errors.
func (g *GormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Error {
		g.log.Error("GORM error", fmt.Errorf(msg, args...), map[string]interface{}{"component": "gorm"})
	}
}

// Trace logs an executed SQL statement. Record-not-found is not an error here;
// the repository decides what a missing row means.
func (g *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := map[string]interface{}{
		"component":   "gorm",
		"sql":         sql,
		"rows":        rows,
		"duration_ms": elapsed.Milliseconds(),
	}

	switch {
	case err != nil && g.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		g.log.Error("SQL query failed", err, fields)
	case g.slowThreshold > 0 && elapsed > g.slowThreshold && g.level >= gormlogger.Warn:
		fields["threshold_ms"] = g.slowThreshold.Milliseconds()
		g.log.Warn("Slow SQL query", fields)
	case g.level >= gormlogger.Info:
		g.log.Debug("SQL query", fields)
	}
}
