package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/glebarez/sqlite" // pure Go, registers the "sqlite" driver

	"truthlens/internal/config"
	"truthlens/pkg/logger"
)

// SQLiteDB is the single-file feedback store for deployments without PostgreSQL
type SQLiteDB struct {
	db     *sql.DB
	path   string
	logger *logger.Logger
}

// NewSQLite opens (creating if needed) the database file at cfg.SQLitePath
func NewSQLite(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (*SQLiteDB, error) {
	log = log.WithComponent("sqlite")
	log.Info().Str("path", cfg.SQLitePath).Msg("opening SQLite database")

	db, err := sql.Open("sqlite", cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// one writer at a time
	db.SetMaxOpenConns(1)
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	return &SQLiteDB{db: db, path: cfg.SQLitePath, logger: log}, nil
}

// DB returns the underlying handle
func (s *SQLiteDB) DB() *sql.DB {
	return s.db
}

// Migrate creates the feedback tables if they do not exist
func (s *SQLiteDB) Migrate(ctx context.Context) error {
	for _, stmt := range sqliteSchema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// Ping checks the database handle
func (s *SQLiteDB) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database
func (s *SQLiteDB) Close() error {
	s.logger.Info().Str("path", s.path).Msg("closing SQLite database")
	return s.db.Close()
}
