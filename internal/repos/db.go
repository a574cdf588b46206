package repos

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	applog "apparelstock/internal/log"
)

var (
	// ErrStoreUnavailable means the store could not be opened or reached.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrUnsupportedStore is returned for a STORE_URL scheme with no driver.
	ErrUnsupportedStore = errors.New("unsupported store url")
)

const (
	driverPostgres = "pgx"
	driverSQLite   = "sqlite"
)

// ResolveStore maps a store URL and access key to a database/sql driver name
// and DSN. Postgres URLs get the key as their password; SQLite URLs ignore it.
func ResolveStore(storeURL, key string) (driver, dsn string, err error) {
	switch {
	case strings.HasPrefix(storeURL, "postgres://"), strings.HasPrefix(storeURL, "postgresql://"):
		u, perr := url.Parse(storeURL)
		if perr != nil {
			return "", "", fmt.Errorf("%w: %v", ErrUnsupportedStore, perr)
		}
		user := "postgres"
		if u.User != nil && u.User.Username() != "" {
			user = u.User.Username()
		}
		u.User = url.UserPassword(user, key)
		return driverPostgres, u.String(), nil
	case strings.HasPrefix(storeURL, "sqlite://"):
		return driverSQLite, strings.TrimPrefix(storeURL, "sqlite://"), nil
	case strings.HasPrefix(storeURL, "file:"), storeURL == ":memory:":
		return driverSQLite, storeURL, nil
	}
	return "", "", fmt.Errorf("%w: %q", ErrUnsupportedStore, scheme(storeURL))
}

func scheme(s string) string {
	if i := strings.Index(s, "://"); i > 0 {
		return s[:i]
	}
	return s
}

// OpenDB connects to the store, checks it answers, and makes sure the
// tables exist. Any failure is wrapped in ErrStoreUnavailable.
func OpenDB(ctx context.Context, storeURL, key string) (*sqlx.DB, error) {
	driver, dsn, err := ResolveStore(storeURL, key)
	if err != nil {
		return nil, err
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if strings.Contains(dsn, ":memory:") {
		// every new connection to :memory: is a fresh, empty database
		db.SetMaxOpenConns(1)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: schema: %v", ErrStoreUnavailable, err)
	}
	applog.Info(nil, "store.open", map[string]any{"driver": driver})
	return db, nil
}

func isPostgres(db *sqlx.DB) bool { return db.DriverName() == driverPostgres }

func ensureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := sqliteSchema
	if isPostgres(db) {
		schema = postgresSchema
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const sqliteSchema = `
-- Materials (apparel stock)
CREATE TABLE IF NOT EXISTS materials(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  color TEXT NOT NULL,
  size TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 0,
  pack_size INTEGER NOT NULL DEFAULT 1 CHECK (pack_size >= 1),
  tags TEXT NOT NULL DEFAULT '[]',
  image_url TEXT,
  min_quantity INTEGER,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);

-- Products (variant catalog)
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  stock INTEGER NOT NULL DEFAULT 0,
  image TEXT,
  categories TEXT NOT NULL DEFAULT '[]',
  sizes TEXT NOT NULL DEFAULT '[]',
  colors TEXT NOT NULL DEFAULT '[]',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_from TEXT NOT NULL,
  contact_info TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  quantity INTEGER NOT NULL,
  scheduled_delivery TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'CREATED'
    CHECK (status IN ('CREATED','RECEIVED','PROCESSING','SHIPPED','DELIVERED','CANCELLED','FAILED')),
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS materials(
  id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
  name TEXT NOT NULL,
  color TEXT NOT NULL,
  size TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 0,
  pack_size INTEGER NOT NULL DEFAULT 1 CHECK (pack_size >= 1),
  tags TEXT NOT NULL DEFAULT '[]',
  image_url TEXT,
  min_quantity INTEGER,
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS products(
  id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  stock INTEGER NOT NULL DEFAULT 0,
  image TEXT,
  categories TEXT NOT NULL DEFAULT '[]',
  sizes TEXT NOT NULL DEFAULT '[]',
  colors TEXT NOT NULL DEFAULT '[]',
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS orders(
  id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
  order_from TEXT NOT NULL,
  contact_info TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  quantity INTEGER NOT NULL,
  scheduled_delivery TIMESTAMPTZ NOT NULL,
  status TEXT NOT NULL DEFAULT 'CREATED'
    CHECK (status IN ('CREATED','RECEIVED','PROCESSING','SHIPPED','DELIVERED','CANCELLED','FAILED')),
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
`

// assignments builds the SET list of a partial UPDATE.
type assignments struct {
	cols []string
	args []any
}

func (a *assignments) add(col string, v any) {
	a.cols = append(a.cols, col+" = ?")
	a.args = append(a.args, v)
}

func (a *assignments) sql() string { return strings.Join(a.cols, ", ") }
