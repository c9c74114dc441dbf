// Package sqlstore is the relational persistence gateway. It owns the shared
// connection pool for accounts and script analyses, creates the schema on
// startup, and implements the account and analysis repositories on top of
// either PostgreSQL (pgx) or an embedded SQLite file (modernc).
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver
)

// Supported values for Config.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	defaultMaxConns    = 10
	defaultPingTimeout = 5 * time.Second
)

// Config captures the settings needed to reach the relational store.
type Config struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	// Path is the SQLite file. ":memory:" keeps the database in memory.
	Path     string
	MaxConns int
}

// DBTX is the subset of *sql.DB used by the repositories.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Gateway wraps the connection pool. Queries are written with `?` placeholders
// and rebound to the driver's native form before execution.
type Gateway struct {
	db     *sql.DB
	driver string
	cfg    Config
}

// Open creates the connection pool without touching the network. Call
// Initialize to create the database and schema.
func Open(cfg Config) (*Gateway, error) {
	if cfg.MaxConns <= 0 {
		cfg.MaxConns = defaultMaxConns
	}

	var (
		db  *sql.DB
		err error
	)
	switch cfg.Driver {
	case DriverPostgres:
		db, err = sql.Open("pgx", cfg.postgresDSN(cfg.Database))
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		db.SetMaxOpenConns(cfg.MaxConns)
	case DriverSQLite:
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite: empty database path")
		}
		db, err = sql.Open("sqlite", sqliteDSN(cfg.Path))
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// A single writer avoids SQLITE_BUSY and keeps ":memory:" on one connection.
		db.SetMaxOpenConns(1)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	return &Gateway{db: db, driver: cfg.Driver, cfg: cfg}, nil
}

// NewGateway wraps an existing pool, e.g. one created by sqlmock.
func NewGateway(db *sql.DB, driver string) *Gateway {
	return &Gateway{db: db, driver: driver, cfg: Config{Driver: driver}}
}

// Driver returns the configured driver name.
func (g *Gateway) Driver() string { return g.driver }

// DB exposes the underlying pool.
func (g *Gateway) DB() *sql.DB { return g.db }

// Ping verifies the pool can reach the database.
func (g *Gateway) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()
	return g.db.PingContext(ctx)
}

// Close releases every pooled connection.
func (g *Gateway) Close() error {
	return g.db.Close()
}

func (g *Gateway) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return g.db.ExecContext(ctx, g.Rebind(query), args...)
}

func (g *Gateway) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return g.db.QueryContext(ctx, g.Rebind(query), args...)
}

func (g *Gateway) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return g.db.QueryRowContext(ctx, g.Rebind(query), args...)
}

// Rebind rewrites `?` placeholders as `$1, $2, ...` for PostgreSQL. SQLite
// accepts `?` natively and gets the query unchanged. Queries in this package
// never contain a literal question mark.
func (g *Gateway) Rebind(query string) string {
	if g.driver != DriverPostgres || !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			b.WriteByte(query[i])
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

func (c Config) postgresDSN(database string) string {
	port := c.Port
	if port == 0 {
		port = 5432
	}
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(port)),
		Path:     "/" + database,
		RawQuery: url.Values{"sslmode": {sslmode}}.Encode(),
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else if c.User != "" {
		u.User = url.User(c.User)
	}
	return u.String()
}

func sqliteDSN(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
