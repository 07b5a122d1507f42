package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/cpower013/quickjobs-site-1/internal/dbx"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded schema for the given dialect.
func RunMigrations(ctx context.Context, db *sql.DB, d dbx.Dialect) error {
	var gooseDialect, dir string
	switch d {
	case dbx.DialectSQLite:
		gooseDialect, dir = "sqlite3", "migrations/sqlite"
	case dbx.DialectPostgres:
		gooseDialect, dir = "postgres", "migrations/postgres"
	default:
		return fmt.Errorf("unsupported dialect %q", d)
	}

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := gooseUpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migrate %s: %w", d, err)
	}
	return nil
}
