// Package taskstore persists the dashboard's locally managed tasks in a
// DuckDB database. State lives in named slots, each holding one serialized
// collection that is rewritten whole on every change.
package taskstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/sirupsen/logrus"

	"github.com/syncflow/dashboard/internal/logging"
	"github.com/syncflow/dashboard/internal/taskstore/migrate"
)

// Store is a slot store on top of DuckDB.
type Store struct {
	db     *sql.DB
	dbPath string
	log    *logrus.Entry
}

// NewStore opens or creates the database at dbPath. An empty path opens an
// in-memory database.
func NewStore(ctx context.Context, dbPath string) (*Store, error) {
	dsn := ""
	if dbPath != "" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("taskstore: create data dir: %w", err)
		}
		dsn = dbPath
	}

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("taskstore: open: %w", err)
	}
	version, err := migrate.Ensure(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	log := logging.NewLogger("taskstore")
	log.WithFields(logrus.Fields{"path": dbPath, "schema": version}).Debug("task store ready")
	return &Store{
		db:     db,
		dbPath: dbPath,
		log:    log,
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file, or "" for an in-memory store.
func (s *Store) Path() string { return s.dbPath }

// Load returns the raw value of slot name. ok is false when the slot has
// never been written.
func (s *Store) Load(ctx context.Context, name string) (value []byte, ok bool, err error) {
	var v string
	err = s.db.QueryRowContext(ctx, "SELECT value FROM slots WHERE name = ?", name).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("taskstore: load %s: %w", name, err)
	}
	return []byte(v), true, nil
}

// Save replaces the value of slot name.
func (s *Store) Save(ctx context.Context, name string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO slots (name, value, updated_at) VALUES (?, ?, current_timestamp)
		ON CONFLICT (name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		name, string(value))
	if err != nil {
		return fmt.Errorf("taskstore: save %s: %w", name, err)
	}
	s.log.WithFields(logrus.Fields{"slot": name, "bytes": len(value)}).Debug("slot saved")
	return nil
}
