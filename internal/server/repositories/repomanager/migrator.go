package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"path"
	"time"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/pressly/goose/v3"
)

// UnitStatus describes one migration unit as currently recorded in the database.
type UnitStatus struct {
	Version   int64
	Name      string
	Applied   bool
	AppliedAt time.Time
}

// Migrator applies and reverts versioned schema units. Each unit runs in its
// own transaction; ordering is by numeric version, never by file listing.
type Migrator struct {
	provider *goose.Provider
}

// ParseDialect maps a configured dialect name to a goose dialect.
func ParseDialect(name string) (goose.Dialect, error) {
	switch name {
	case "postgres", "pgx", "":
		return goose.DialectPostgres, nil
	case "sqlite3", "sqlite":
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("unsupported migrations dialect %q: %w", name, common.ErrValidation)
	}
}

// DriverName returns the database/sql driver name used for dialect.
func DriverName(dialect goose.Dialect) string {
	if dialect == goose.DialectSQLite3 {
		return "sqlite"
	}
	return "pgx"
}

// NewMigrator builds a Migrator over the units found at the root of fsys.
// The caller keeps ownership of db.
func NewMigrator(db *sql.DB, dialect goose.Dialect, fsys fs.FS) (*Migrator, error) {
	p, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("init migrations: %w", err)
	}
	return &Migrator{provider: p}, nil
}

// ApplyPending applies every pending unit in ascending version order and
// returns the versions applied. On failure it stops at the failing unit and
// returns the versions applied before it together with the error.
func (m *Migrator) ApplyPending(ctx context.Context) ([]int64, error) {
	results, err := m.provider.Up(ctx)
	if err != nil {
		var partial *goose.PartialError
		if errors.As(err, &partial) {
			applied := versions(partial.Applied)
			if partial.Failed != nil && partial.Failed.Source != nil {
				return applied, fmt.Errorf("apply migration %d: %w", partial.Failed.Source.Version, partial.Err)
			}
			return applied, fmt.Errorf("apply migrations: %w", partial.Err)
		}
		if errors.Is(err, goose.ErrNoNextVersion) {
			return []int64{}, nil
		}
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	return versions(results), nil
}

// RevertLast reverts the n most recently applied units, newest first, and
// returns the reverted versions. Asking for more units than are applied
// reverts all of them.
func (m *Migrator) RevertLast(ctx context.Context, n int) ([]int64, error) {
	if n < 1 {
		return nil, fmt.Errorf("revert count must be at least 1, got %d: %w", n, common.ErrValidation)
	}

	applied, err := m.appliedCount(ctx)
	if err != nil {
		return nil, err
	}

	reverted := make([]int64, 0, min(n, applied))
	for range min(n, applied) {
		res, err := m.provider.Down(ctx)
		if err != nil {
			if errors.Is(err, goose.ErrNoNextVersion) {
				break
			}
			return reverted, fmt.Errorf("revert migration: %w", err)
		}
		if res != nil && res.Source != nil {
			reverted = append(reverted, res.Source.Version)
		}
	}
	return reverted, nil
}

// Status yields the state of every known unit in ascending version order.
// Each range over the returned sequence queries the database afresh.
func (m *Migrator) Status(ctx context.Context) iter.Seq2[UnitStatus, error] {
	return func(yield func(UnitStatus, error) bool) {
		statuses, err := m.provider.Status(ctx)
		if err != nil {
			yield(UnitStatus{}, fmt.Errorf("migration status: %w", err))
			return
		}
		for _, s := range statuses {
			if s == nil || s.Source == nil {
				continue
			}
			us := UnitStatus{
				Version:   s.Source.Version,
				Name:      path.Base(s.Source.Path),
				Applied:   s.State == goose.StateApplied,
				AppliedAt: s.AppliedAt,
			}
			if !yield(us, nil) {
				return
			}
		}
	}
}

func (m *Migrator) appliedCount(ctx context.Context) (int, error) {
	var n int
	for s, err := range m.Status(ctx) {
		if err != nil {
			return 0, err
		}
		if s.Applied {
			n++
		}
	}
	return n, nil
}

func versions(results []*goose.MigrationResult) []int64 {
	out := make([]int64, 0, len(results))
	for _, r := range results {
		if r != nil && r.Source != nil {
			out = append(out, r.Source.Version)
		}
	}
	return out
}
