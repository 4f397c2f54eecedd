package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/teamboard/core/internal/adapters/repository"
	"github.com/teamboard/core/internal/infrastructure/config"
	"github.com/teamboard/core/internal/ports"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// OpenSQLite opens the sqlite file behind cfg.Path. A single connection serialises
// writers, which is what the read-merge-write update relies on.
func OpenSQLite(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := cfg.Path + "?_busy_timeout=5000&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// OpenPostgres opens and pings a pooled postgres connection
func OpenPostgres(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// NewRecordStore opens the configured backend and returns the record store on top of it.
// The sqlite schema is created on open; postgres expects `migrate up` to have run.
func NewRecordStore(cfg config.DatabaseConfig) (ports.RecordStore, error) {
	clock := repository.NewClock()

	switch cfg.Driver {
	case DriverSQLite:
		db, err := OpenSQLite(cfg)
		if err != nil {
			return nil, err
		}
		return repository.NewSQLiteStore(db, clock)
	case DriverPostgres:
		db, err := OpenPostgres(cfg)
		if err != nil {
			return nil, err
		}
		return repository.NewPostgresStore(db, clock), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// HealthCheck checks store health
func HealthCheck(ctx context.Context, store ports.RecordStore) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	return nil
}
