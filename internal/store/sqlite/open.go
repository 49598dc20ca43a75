package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"visastay/internal/config"

	_ "modernc.org/sqlite"
)

// Scheme prefixes a stored flight log location: sqlite://path/to/flightlog.db
const Scheme = "sqlite://"

// DefaultPath is used when Config.Path is empty
const DefaultPath = "./data/flightlog.db"

type Config struct {
	Path string
}

// FlightLogStore keeps imported flight legs in a local SQLite database
type FlightLogStore struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database at cfg.Path and applies migrations
func Open(ctx context.Context, cfg Config) (*FlightLogStore, error) {
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)",
		cfg.Path,
	)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	// single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pingCtx, cancel := context.WithTimeout(ctx, config.SQLitePingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &FlightLogStore{db: db, path: cfg.Path}, nil
}

// Close releases the database handle
func (s *FlightLogStore) Close() error {
	return s.db.Close()
}
