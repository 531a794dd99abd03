// Package migrate brings a task store database up to the schema version this
// build understands.
package migrate

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/syncflow/dashboard/internal/logging"
)

//go:embed migrations/001_slots.sql
var slotsSQL string

type step struct {
	version int
	name    string
	sql     string
}

// steps must stay ordered by version; append only.
var steps = []step{
	{version: 1, name: "slots", sql: slotsSQL},
}

// ErrNewerSchema is returned for databases written by a newer build.
var ErrNewerSchema = errors.New("migrate: database schema is newer than this build")

// Latest is the schema version a migrated database ends up at.
func Latest() int { return steps[len(steps)-1].version }

// Ensure applies every step above the database's recorded version in one
// transaction and returns the resulting version.
func Ensure(ctx context.Context, db *sql.DB) (int, error) {
	return ensure(ctx, db, steps, logging.NewLogger("migrate"))
}

func ensure(ctx context.Context, db *sql.DB, all []step, log *logrus.Entry) (int, error) {
	if _, err := db.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)"); err != nil {
		return 0, fmt.Errorf("migrate: create schema_version: %w", err)
	}

	current, err := version(ctx, db)
	if err != nil {
		return 0, err
	}
	latest := all[len(all)-1].version
	if current > latest {
		return current, fmt.Errorf("%w: have %d, support %d", ErrNewerSchema, current, latest)
	}
	if current == latest {
		return current, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return current, fmt.Errorf("migrate: begin: %w", err)
	}
	defer tx.Rollback()

	for _, s := range all {
		if s.version <= current {
			continue
		}
		if _, err := tx.ExecContext(ctx, s.sql); err != nil {
			return current, fmt.Errorf("migrate: step %d (%s): %w", s.version, s.name, err)
		}
		log.WithFields(logrus.Fields{"version": s.version, "step": s.name}).Info("schema step applied")
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM schema_version"); err != nil {
		return current, fmt.Errorf("migrate: reset version: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", latest); err != nil {
		return current, fmt.Errorf("migrate: record version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return current, fmt.Errorf("migrate: commit: %w", err)
	}
	return latest, nil
}

func version(ctx context.Context, db *sql.DB) (int, error) {
	var v sql.NullInt64
	if err := db.QueryRowContext(ctx, "SELECT MAX(version) FROM schema_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("migrate: read version: %w", err)
	}
	return int(v.Int64), nil
}
