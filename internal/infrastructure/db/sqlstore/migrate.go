package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pressly/goose/v3"

	"github.com/cinemind/studio-api/internal/infrastructure/db/sqlstore/migrations"
)

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// Initialize makes sure the target database exists and applies every pending
// migration. It is idempotent and safe to run on every start.
func (g *Gateway) Initialize(ctx context.Context) error {
	switch g.driver {
	case DriverPostgres:
		if g.cfg.Host != "" {
			if err := ensurePostgresDatabase(ctx, g.cfg); err != nil {
				return err
			}
		}
	case DriverSQLite:
		if err := ensureSQLiteDir(g.cfg.Path); err != nil {
			return err
		}
	}
	return g.Migrate(ctx)
}

// Migrate applies the embedded migrations for the configured driver.
func (g *Gateway) Migrate(ctx context.Context) error {
	dialect, dir := "pgx", "postgres"
	if g.driver == DriverSQLite {
		dialect, dir = "sqlite3", "sqlite"
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, g.db, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// ensurePostgresDatabase connects to the maintenance database and creates the
// configured one when it is missing.
func ensurePostgresDatabase(ctx context.Context, cfg Config) error {
	admin, err := sql.Open("pgx", cfg.postgresDSN("postgres"))
	if err != nil {
		return fmt.Errorf("open maintenance db: %w", err)
	}
	defer admin.Close()

	var exists bool
	err = admin.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`, cfg.Database,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check database %q: %w", cfg.Database, err)
	}
	if exists {
		return nil
	}

	stmt := "CREATE DATABASE " + pgx.Identifier{cfg.Database}.Sanitize()
	if _, err := admin.ExecContext(ctx, stmt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "42P04" {
			return nil // created concurrently
		}
		return fmt.Errorf("create database %q: %w", cfg.Database, err)
	}
	return nil
}

func ensureSQLiteDir(path string) error {
	if path == "" || path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create sqlite dir: %w", err)
	}
	return nil
}
