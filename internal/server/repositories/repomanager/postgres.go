// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/inkwell/internal/dbx"
	"github.com/dmitrijs2005/inkwell/internal/server/migrations"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/posts"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct {
	dialect goose.Dialect
}

// Accounts returns an accounts.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewPostgresRepository(db)
}

// Posts returns a posts.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Posts(db dbx.DBTX) posts.Repository {
	return posts.NewPostgresRepository(db)
}

// applyPending is a seam for testing the migrator.
var applyPending = func(ctx context.Context, m *Migrator) ([]int64, error) {
	return m.ApplyPending(ctx)
}

// RunMigrations applies every pending embedded migration unit against db.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	migrator, err := NewMigrator(db, m.dialect, migrations.Migrations)
	if err != nil {
		return err
	}
	if _, err := applyPending(ctx, migrator); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager(db *sql.DB) (RepositoryManager, error) {
	return &PostgresRepositoryManager{dialect: goose.DialectPostgres}, nil
}

// NewRepositoryManager is like NewPostgresRepositoryManager but runs the
// schema migrations under the given dialect.
func NewRepositoryManager(dialect goose.Dialect) RepositoryManager {
	return &PostgresRepositoryManager{dialect: dialect}
}
