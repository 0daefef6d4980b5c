package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type Config struct {
	Driver string
	// Path is the sqlite file; DSN the Postgres connection string.
	Path string
	DSN  string
}

func DefaultConfig() Config {
	// hosted deployment: Postgres via DSN
	if dsn := os.Getenv("FUTUREAGENT_DATABASE_DSN"); dsn != "" {
		return Config{Driver: DriverPostgres, DSN: dsn}
	}

	if p := os.Getenv("FUTUREAGENT_DB_PATH"); p != "" {
		return Config{Driver: DriverSQLite, Path: p}
	}

	// local default: ~/.futureagent/data.db
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return Config{
		Driver: DriverSQLite,
		Path:   filepath.Join(home, ".futureagent", "data.db"),
	}
}

// Builder returns a squirrel statement builder with the placeholder style
// the configured driver expects ($1 for Postgres, ? for sqlite).
func (c Config) Builder() sq.StatementBuilderType {
	if c.Driver == DriverPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

func EnsureDataDir(cfg Config) error {
	if cfg.Driver != DriverSQLite {
		return nil
	}
	return os.MkdirAll(filepath.Dir(cfg.Path), 0o755)
}

func Open(cfg Config) (*sql.DB, error) {
	if err := EnsureDataDir(cfg); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	if cfg.Driver == DriverPostgres {
		db, err := sql.Open(DriverPostgres, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		return db, nil
	}

	db, err := sql.Open(DriverSQLite, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma foreign_keys: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma journal_mode: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

func MustOpen(cfg Config) *sql.DB {
	db, err := Open(cfg)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	return db
}
