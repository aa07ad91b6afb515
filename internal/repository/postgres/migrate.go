package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"

	"hireflow-backend/internal/logger"
	"hireflow-backend/internal/repository/postgres/migrations"
)

// Migrate applies the embedded schema files in name order. Every statement is
// idempotent, so running it against an existing database is a no-op.
func Migrate(ctx context.Context, db *sql.DB) error {
	names, err := fs.Glob(migrations.FS, "*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		body, err := fs.ReadFile(migrations.FS, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		logger.DatabaseCall("MIGRATE", name)
		_, err = db.ExecContext(ctx, string(body))
		logger.DatabaseResult("MIGRATE", 0, err, "file", name)
		if err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}
