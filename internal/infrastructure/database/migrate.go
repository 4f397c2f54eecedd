package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/teamboard/core/internal/infrastructure/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Direction of a schema migration
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

func newMigrator(cfg config.DatabaseConfig) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.GetMigrateURL())
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return m, nil
}

// Migrate applies or rolls back the records schema. For sqlite the schema is owned by
// gorm: up creates it, down drops it.
func Migrate(cfg config.DatabaseConfig, dir Direction) error {
	if cfg.Driver == DriverSQLite {
		return migrateSQLite(cfg, dir)
	}

	m, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	switch dir {
	case Up:
		err = m.Up()
	case Down:
		err = m.Down()
	default:
		return fmt.Errorf("unknown migration direction %q", dir)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s: %w", dir, err)
	}
	return nil
}

// Version reports the applied migration version and whether it is dirty.
func Version(cfg config.DatabaseConfig) (uint, bool, error) {
	if cfg.Driver == DriverSQLite {
		return 0, false, fmt.Errorf("sqlite schema is managed automatically")
	}

	m, err := newMigrator(cfg)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migration version: %w", err)
	}
	return v, dirty, nil
}

func migrateSQLite(cfg config.DatabaseConfig, dir Direction) error {
	switch dir {
	case Up:
		store, err := NewRecordStore(cfg)
		if err != nil {
			return err
		}
		return store.Close()
	case Down:
		db, err := OpenSQLite(cfg)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		if err := db.Migrator().DropTable("records"); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown migration direction %q", dir)
	}
}
