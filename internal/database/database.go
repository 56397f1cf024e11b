package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"atelier/internal/config"

	_ "github.com/lib/pq"           // postgres driver
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/rs/zerolog"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Store implements the storage port over database/sql. The same query set
// serves both backings: dates are TEXT ISO-8601, so range predicates and
// month grouping are plain string operations in either dialect. Driver
// differences are confined to placeholder rebinding, DDL and insert-id
// retrieval.
type Store struct {
	db     *sql.DB
	driver string
	path   string // sqlite file path, empty for postgres
	logger *zerolog.Logger
}

func Open(cfg config.DatabaseConfig, logger *zerolog.Logger) (*Store, error) {
	var (
		db   *sql.DB
		err  error
		path string
	)

	switch cfg.Driver {
	case DriverSQLite:
		dir := filepath.Dir(cfg.Path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		db, err = sql.Open("sqlite3", cfg.Path+"?_foreign_keys=on")
		path = cfg.Path
	case DriverPostgres:
		db, err = sql.Open("postgres", cfg.Postgres.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &Store{db: db, driver: cfg.Driver, path: path, logger: logger}
	if err := store.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.Info().Str("driver", cfg.Driver).Msg("database initialized")
	return store, nil
}

// OpenSQLiteMemory opens an isolated in-memory store for tests.
func OpenSQLiteMemory(logger *zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps the in-memory database alive and visible.
	db.SetMaxOpenConns(1)

	store := &Store{db: db, driver: DriverSQLite, logger: logger}
	if err := store.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return store, nil
}

func (s *Store) createTables() error {
	id := "INTEGER PRIMARY KEY AUTOINCREMENT"
	money := "REAL"
	if s.driver == DriverPostgres {
		id = "BIGSERIAL PRIMARY KEY"
		money = "DOUBLE PRECISION"
	}

	queries := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS dresses (
            id %s,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            size TEXT NOT NULL DEFAULT '',
            color TEXT NOT NULL DEFAULT '',
            rental_price %s NOT NULL,
            image_path TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL DEFAULT 'available',
            created_at TEXT NOT NULL
        )`, id, money),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS customers (
            id %s,
            name TEXT NOT NULL,
            phone TEXT NOT NULL DEFAULT '',
            email TEXT NOT NULL DEFAULT '',
            address TEXT NOT NULL DEFAULT '',
            notes TEXT NOT NULL DEFAULT '',
            created_at TEXT NOT NULL
        )`, id),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS rentals (
            id %s,
            dress_id INTEGER NOT NULL REFERENCES dresses(id),
            customer_id INTEGER NOT NULL REFERENCES customers(id),
            start_date TEXT NOT NULL,
            end_date TEXT NOT NULL,
            total_price %s NOT NULL,
            deposit %s NOT NULL DEFAULT 0,
            status TEXT NOT NULL DEFAULT 'active',
            notes TEXT NOT NULL DEFAULT '',
            created_at TEXT NOT NULL
        )`, id, money, money),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS payments (
            id %s,
            rental_id INTEGER NOT NULL REFERENCES rentals(id),
            amount %s NOT NULL,
            payment_date TEXT NOT NULL,
            method TEXT NOT NULL DEFAULT '',
            notes TEXT NOT NULL DEFAULT '',
            created_at TEXT NOT NULL
        )`, id, money),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS appointments (
            id %s,
            customer_id INTEGER REFERENCES customers(id),
            dress_id INTEGER REFERENCES dresses(id),
            type TEXT NOT NULL,
            date TEXT NOT NULL,
            time TEXT NOT NULL DEFAULT '',
            notes TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL DEFAULT 'scheduled',
            reminder_sent INTEGER NOT NULL DEFAULT 0,
            created_at TEXT NOT NULL
        )`, id),

		`CREATE TABLE IF NOT EXISTS settings (
            key TEXT PRIMARY KEY,
            value TEXT NOT NULL DEFAULT '',
            updated_at TEXT NOT NULL
        )`,

		`CREATE INDEX IF NOT EXISTS idx_rentals_dress_id ON rentals(dress_id)`,
		`CREATE INDEX IF NOT EXISTS idx_rentals_status ON rentals(status)`,
		`CREATE INDEX IF NOT EXISTS idx_rentals_start_date ON rentals(start_date)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_rental_id ON payments(rental_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_payment_date ON payments(payment_date)`,
		`CREATE INDEX IF NOT EXISTS idx_appointments_date ON appointments(date)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}
	return nil
}

// rebind converts ?-style placeholders to $N for the postgres backing.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.rebind(query), args...)
}

func (s *Store) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.rebind(query), args...)
}

func (s *Store) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, s.rebind(query), args...)
}

// insert runs an INSERT and returns the new row id. SQLite reports it via
// LastInsertId; postgres needs RETURNING.
func (s *Store) insert(ctx context.Context, query string, args ...any) (int64, error) {
	if s.driver == DriverPostgres {
		var newID int64
		err := s.db.QueryRowContext(ctx, s.rebind(query)+" RETURNING id", args...).Scan(&newID)
		return newID, err
	}
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// txInsert is insert within an open transaction.
func (s *Store) txInsert(ctx context.Context, tx *sql.Tx, query string, args ...any) (int64, error) {
	if s.driver == DriverPostgres {
		var newID int64
		err := tx.QueryRowContext(ctx, s.rebind(query)+" RETURNING id", args...).Scan(&newID)
		return newID, err
	}
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// now renders the storage timestamp format shared by both backings.
func now() string {
	return time.Now().UTC().Format("2006-01-02 15:04:05")
}

// Driver returns the configured backing driver name.
func (s *Store) Driver() string {
	return s.driver
}

// Path returns the sqlite file path, empty for postgres.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	return s.db.Close()
}
