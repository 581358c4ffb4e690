// Package database provides database connection management.
package database

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // register the pgx PostgreSQL driver as "pgx"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // register the pure-Go SQLite driver as "sqlite"

	"github.com/at-ishikawa/retention/internal/config"
)

// Open opens a connection for the configured storage driver.
// The memory driver has no database and is rejected.
func Open(storage config.StorageConfig, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	switch storage.Driver {
	case config.DriverMySQL:
		return OpenMySQL(cfg)
	case config.DriverPostgres:
		return OpenPostgres(cfg)
	case config.DriverSQLite:
		return OpenSQLite(storage.SQLitePath)
	default:
		return nil, fmt.Errorf("storage driver %q has no database connection", storage.Driver)
	}
}

// OpenMySQL opens a MySQL connection using the provided config.
func OpenMySQL(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	mysqlCfg := mysql.NewConfig()
	mysqlCfg.User = cfg.Username
	mysqlCfg.Passwd = cfg.Password
	mysqlCfg.Net = "tcp"
	mysqlCfg.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	mysqlCfg.DBName = cfg.Database
	mysqlCfg.ParseTime = true
	mysqlCfg.Loc = time.UTC
	mysqlCfg.MultiStatements = true
	if cfg.TLS {
		mysqlCfg.TLSConfig = "true"
	}
	if len(cfg.Params) > 0 {
		mysqlCfg.Params = cfg.Params
	}

	db, err := sqlx.Open("mysql", mysqlCfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open(mysql) > %w", err)
	}
	applyPoolSettings(db, cfg)
	return db, nil
}

// OpenPostgres opens a PostgreSQL connection through the pgx stdlib driver.
func OpenPostgres(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("pgx", PostgresDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open(pgx) > %w", err)
	}
	applyPoolSettings(db, cfg)
	return db, nil
}

// PostgresDSN builds a postgres:// connection URI.
func PostgresDSN(cfg config.DatabaseConfig) string {
	query := url.Values{}
	for k, v := range cfg.Params {
		query.Set(k, v)
	}
	if query.Get("sslmode") == "" {
		if cfg.TLS {
			query.Set("sslmode", "require")
		} else {
			query.Set("sslmode", "disable")
		}
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.Username, cfg.Password),
		Host:     cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Path:     "/" + cfg.Database,
		RawQuery: query.Encode(),
	}
	return u.String()
}

// OpenSQLite opens a SQLite database file.
func OpenSQLite(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open(sqlite) > %w", err)
	}
	// Writers serialize on the file lock anyway
	db.SetMaxOpenConns(1)
	return db, nil
}

func applyPoolSettings(db *sqlx.DB, cfg config.DatabaseConfig) {
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}
}
