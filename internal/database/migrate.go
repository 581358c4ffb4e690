package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/at-ishikawa/retention/internal/config"
	"github.com/at-ishikawa/retention/schemas"
)

// Migrate applies the pending embedded migrations of the configured driver and
// returns the schema version. It runs on its own connection, which it closes.
func Migrate(storage config.StorageConfig, cfg config.DatabaseConfig) (uint, error) {
	db, err := Open(storage, cfg)
	if err != nil {
		return 0, fmt.Errorf("Open(%s) > %w", storage.Driver, err)
	}
	return migrateFS(db.DB, storage.Driver, schemas.Migrations)
}

// migrateFS runs migrations/<driver> from migrations on db and closes db.
func migrateFS(db *sql.DB, driver string, migrations fs.FS) (uint, error) {
	instance, err := withInstance(db, driver)
	if err != nil {
		_ = db.Close()
		return 0, err
	}

	source, err := iofs.New(migrations, path.Join("migrations", driver))
	if err != nil {
		_ = instance.Close()
		return 0, fmt.Errorf("iofs.New(%s) > %w", driver, err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driver, instance)
	if err != nil {
		_ = source.Close()
		_ = instance.Close()
		return 0, fmt.Errorf("migrate.NewWithInstance(%s) > %w", driver, err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			slog.Default().Warn("Failed to close migration source", "error", srcErr)
		}
		if dbErr != nil {
			slog.Default().Warn("Failed to close migration database", "error", dbErr)
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("m.Up(%s) > %w", driver, err)
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("m.Version() > %w", err)
	}
	slog.Default().Debug("Applied schema migrations", "driver", driver, "version", version, "dirty", dirty)
	return version, nil
}

func withInstance(db *sql.DB, driver string) (migratedb.Driver, error) {
	var (
		instance migratedb.Driver
		err      error
	)
	switch driver {
	case config.DriverMySQL:
		instance, err = migratemysql.WithInstance(db, &migratemysql.Config{})
	case config.DriverPostgres:
		instance, err = migratepgx.WithInstance(db, &migratepgx.Config{})
	case config.DriverSQLite:
		instance, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	default:
		return nil, fmt.Errorf("no migrations for storage driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("%s.WithInstance() > %w", driver, err)
	}
	return instance, nil
}
