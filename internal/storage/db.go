// Package storage provides the database layer for alarmbook.
//
// Alarm rows live in a single SQLite table. The DB type holds only the file
// path: every operation opens its own connection scope and closes it before
// returning, so no handle outlives a call.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/manav03panchal/alarmbook/internal/logging"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const (
	// AppName is the application name used for data directories.
	AppName = "alarmbook"
	// DatabaseFile is the default SQLite file name.
	DatabaseFile = "alarms.db"

	driverName = "sqlite"
)

// schema creates the alarms table. Safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS alarms (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	time TEXT NOT NULL,
	days TEXT,
	description TEXT,
	is_active BOOLEAN NOT NULL DEFAULT 1
)`

// DB is a handle on a file-backed SQLite database.
type DB struct {
	path string
}

// Options configures the database location.
type Options struct {
	// Path is the SQLite file path. Empty string uses DefaultPath.
	Path string
}

// ExecResult reports the outcome of a mutation.
type ExecResult struct {
	LastInsertID int64
	RowsAffected int64
}

// DefaultPath returns the default database path under the XDG data home.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, AppName, DatabaseFile)
}

// Open prepares a database at the given path, creating its directory.
// No connection is held after Open returns.
func Open(opts Options) (*DB, error) {
	path := opts.Path
	if path == "" {
		path = DefaultPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	return &DB{path: path}, nil
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

// Close exists for symmetry with the other stores; there is nothing to
// release between operations.
func (d *DB) Close() error {
	return nil
}

func (d *DB) dsn() string {
	return d.path + "?_pragma=busy_timeout(5000)"
}

// scope opens a single-connection handle, runs fn and closes the handle.
func (d *DB) scope(ctx context.Context, fn func(conn *sql.Conn) error) error {
	db, err := sql.Open(driverName, d.dsn())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}

// EnsureSchema creates the alarms table if it is absent.
func (d *DB) EnsureSchema(ctx context.Context) error {
	_, err := d.Exec(ctx, schema)
	return err
}

// Exec runs a parameterized statement that returns no rows. Each call is its
// own auto-committed unit.
func (d *DB) Exec(ctx context.Context, stmt string, args ...any) (ExecResult, error) {
	var res ExecResult
	start := time.Now()

	err := d.scope(ctx, func(conn *sql.Conn) error {
		r, err := conn.ExecContext(ctx, stmt, args...)
		if err != nil {
			return err
		}
		if res.RowsAffected, err = r.RowsAffected(); err != nil {
			return err
		}
		res.LastInsertID, err = r.LastInsertId()
		return err
	})

	logging.LoggerFromContext(ctx).Debug("exec",
		logging.KeyStatement, compact(stmt),
		logging.KeyDuration, time.Since(start).Milliseconds(),
		logging.KeyCount, res.RowsAffected,
		logging.KeyError, err,
	)
	return res, err
}

// Query runs a parameterized statement and hands every result row to scan.
func (d *DB) Query(ctx context.Context, stmt string, args []any, scan func(rows *sql.Rows) error) error {
	start := time.Now()
	count := 0

	err := d.scope(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, stmt, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			if err := scan(rows); err != nil {
				return err
			}
			count++
		}
		return rows.Err()
	})

	logging.LoggerFromContext(ctx).Debug("query",
		logging.KeyStatement, compact(stmt),
		logging.KeyDuration, time.Since(start).Milliseconds(),
		logging.KeyCount, count,
		logging.KeyError, err,
	)
	return err
}
